package cli

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"accounts-generator/internal/schema"
)

const (
	kindLeaf      = "leaf"
	kindComposite = "composite"
)

// scaffoldField is one field collected by the new command.
type scaffoldField struct {
	Name      string
	Kind      string
	Type      string
	Mut       bool
	Signer    bool
	Optional  bool
	Composite string
}

// scaffold is the answer set of the new command.
type scaffold struct {
	Name     string
	Lifetime bool
	Fields   []scaffoldField
}

// NewNewCommand creates the new command
func NewNewCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "new <file>",
		Short: "Interactively create a schema file",
		Long: `Ask for a schema name and its fields and write a schema document.
Composite fields referring to schemas outside the file are declared external.

Examples:
  accounts-generator new schemas/deposit.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("file %s already exists (use --force to overwrite)", path)
			}

			answers, err := askScaffold()
			if err != nil {
				return err
			}

			doc, err := answers.document()
			if err != nil {
				return err
			}

			if err := schema.WriteFile(doc, path); err != nil {
				return err
			}

			color.New(color.FgGreen, color.Bold).Fprintf(cmd.OutOrStdout(), "✓ Created %s\n", path)

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

func identValidator(ans interface{}) error {
	s, _ := ans.(string)
	if !schema.IsIdent(strings.TrimSpace(s)) {
		return fmt.Errorf("%q is not a valid identifier", s)
	}

	return nil
}

func askScaffold() (*scaffold, error) {
	sc := &scaffold{}

	if err := survey.AskOne(&survey.Input{Message: "Schema name (CamelCase):"}, &sc.Name,
		survey.WithValidator(survey.Required), survey.WithValidator(identValidator)); err != nil {
		return nil, err
	}

	if err := survey.AskOne(&survey.Confirm{Message: "Declare an 'info lifetime?", Default: true}, &sc.Lifetime); err != nil {
		return nil, err
	}

	for {
		var name string

		prompt := &survey.Input{Message: fmt.Sprintf("Field %d name (empty to finish):", len(sc.Fields)+1)}
		if err := survey.AskOne(prompt, &name); err != nil {
			return nil, err
		}

		name = strings.TrimSpace(name)
		if name == "" {
			break
		}

		f, err := askField(name)
		if err != nil {
			return nil, err
		}

		sc.Fields = append(sc.Fields, f)
	}

	return sc, nil
}

func askField(name string) (scaffoldField, error) {
	f := scaffoldField{Name: name}

	if err := survey.AskOne(&survey.Select{
		Message: "Kind:",
		Options: []string{kindLeaf, kindComposite},
		Default: kindLeaf,
	}, &f.Kind); err != nil {
		return f, err
	}

	if f.Kind == kindComposite {
		err := survey.AskOne(&survey.Input{Message: "Nested schema name:"}, &f.Composite,
			survey.WithValidator(survey.Required))

		return f, err
	}

	qs := []*survey.Question{
		{Name: "type", Prompt: &survey.Input{Message: "Resource type (empty for a raw handle):"}},
		{Name: "mut", Prompt: &survey.Confirm{Message: "Writable?"}},
		{Name: "signer", Prompt: &survey.Confirm{Message: "Signer?"}},
		{Name: "optional", Prompt: &survey.Confirm{Message: "Optional?"}},
	}

	var ans struct {
		Type     string `survey:"type"`
		Mut      bool   `survey:"mut"`
		Signer   bool   `survey:"signer"`
		Optional bool   `survey:"optional"`
	}

	if err := survey.Ask(qs, &ans); err != nil {
		return f, err
	}

	f.Type = strings.TrimSpace(ans.Type)
	f.Mut = ans.Mut
	f.Signer = ans.Signer
	f.Optional = ans.Optional

	return f, nil
}

// document converts the answers into a validated schema document. Nested
// schemas not defined by the answers are declared external.
func (sc *scaffold) document() (*schema.Document, error) {
	if len(sc.Fields) == 0 {
		return nil, errors.New("a schema needs at least one field")
	}

	sd := schema.SchemaDoc{Name: sc.Name}
	if sc.Lifetime {
		sd.Generics = []string{"'info"}
	}

	doc := &schema.Document{Version: schema.DocumentVersion}

	for _, f := range sc.Fields {
		fd := schema.FieldDoc{Name: f.Name}

		if f.Kind == kindComposite {
			fd.Composite = f.Composite
			if f.Composite != sc.Name && !slices.Contains(doc.External, f.Composite) {
				doc.External = append(doc.External, f.Composite)
			}
		} else {
			fd.Type = f.Type
			fd.Mut = f.Mut
			fd.Signer = f.Signer
			fd.Optional = f.Optional
		}

		sd.Fields = append(sd.Fields, fd)
	}

	doc.Schemas = []schema.SchemaDoc{sd}

	if _, err := doc.Catalog(); err != nil {
		return nil, err
	}

	return doc, nil
}
