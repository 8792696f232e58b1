package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"accounts-generator/internal/plan"
	"accounts-generator/internal/render"
	"accounts-generator/internal/schema"
)

// planReport is what the plan command prints for one schema.
type planReport struct {
	Schema     string             `json:"schema"`
	Generics   *plan.GenericsPlan `json:"generics"`
	Count      string             `json:"count"`
	Slots      *int               `json:"slots,omitempty"`
	Unresolved string             `json:"unresolved,omitempty"`
}

// NewPlanCommand creates the plan command
func NewPlanCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "plan <schema-file> <schema>",
		Short: "Show the generics plan and count formula of a schema",
		Long: `Resolve the generics of a schema and build its slot-count formula without
generating any code. When every composite resolves inside the file the total
number of slots is reported as well.

Examples:
  accounts-generator plan schemas/escrow.yaml Initialize
  accounts-generator plan --format json schemas/escrow.yaml Initialize`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := buildPlanReport(args[0], args[1])
			if err != nil {
				return err
			}

			return writePlanReport(cmd.OutOrStdout(), report, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text or json")

	return cmd
}

func buildPlanReport(path, name string) (*planReport, error) {
	cat, err := schema.LoadFile(path)
	if err != nil {
		return nil, err
	}

	s, ok := cat.Get(name)
	if !ok {
		return nil, fmt.Errorf("schema %s not found in %s (have %v)", name, path, cat.Names())
	}

	p, err := plan.Resolve(s)
	if err != nil {
		return nil, err
	}

	expr, err := plan.BuildCountExpression(s)
	if err != nil {
		return nil, err
	}

	rendered, err := render.Expr(expr)
	if err != nil {
		return nil, err
	}

	report := &planReport{Schema: s.Ident, Generics: p, Count: rendered}

	slots, err := plan.ExpandLeaves(cat, s)

	switch {
	case err == nil:
		report.Slots = &slots
	case errors.Is(err, plan.ErrUnresolvedComposite):
		report.Unresolved = err.Error()
	default:
		return nil, err
	}

	return report, nil
}

func writePlanReport(w io.Writer, report *planReport, format string) error {
	switch format {
	case "text":
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}
		cfg.Fdump(w, report)

		return nil
	case "json":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding plan: %w", err)
		}

		_, err = fmt.Fprintln(w, string(data))

		return err
	default:
		return fmt.Errorf("unknown format %q (want text or json)", format)
	}
}
