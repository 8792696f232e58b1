package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"accounts-generator/internal/gen"
	"accounts-generator/internal/schema"
)

type genOptions struct {
	out      string
	noClient bool
	noCpi    bool
	stdout   bool
}

// NewGenCommand creates the gen command
func NewGenCommand(root *rootOptions) *cobra.Command {
	opts := &genOptions{}

	cmd := &cobra.Command{
		Use:   "gen <schema-file>...",
		Short: "Generate code for schema files",
		Long: `Load each schema file, generate one file per schema and write them to
the output directory.

Examples:
  accounts-generator gen schemas/escrow.yaml
  accounts-generator gen --no-cpi --out src/generated schemas/*.yaml
  accounts-generator gen --stdout schemas/escrow.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(cmd, root, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output directory (overrides output_dir)")
	cmd.Flags().BoolVar(&opts.noClient, "no-client", false, "skip the client mirror modules")
	cmd.Flags().BoolVar(&opts.noCpi, "no-cpi", false, "skip the CPI mirror modules")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "print generated code instead of writing files")

	return cmd
}

func runGen(cmd *cobra.Command, root *rootOptions, opts *genOptions, paths []string) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	logger := cfg.NewLogger(root.verbose)
	defer func() { _ = logger.Sync() }()

	outDir := cfg.OutputDir
	if opts.out != "" {
		outDir = opts.out
	}

	p := gen.NewPipeline(outDir, logger)

	p.Flags = cfg.Flags()
	if opts.noClient {
		p.Flags.GenerateClientHelpers = false
	}

	if opts.noCpi {
		p.Flags.GenerateCpiHelpers = false
	}

	logger.Debug("starting generation",
		zap.Strings("inputs", paths),
		zap.String("dir", outDir),
		zap.Bool("client_helpers", p.Flags.GenerateClientHelpers),
		zap.Bool("cpi_helpers", p.Flags.GenerateCpiHelpers),
	)

	if opts.stdout {
		files, err := p.Generate(cmd.Context(), paths...)
		if err != nil {
			return explain(cmd, err)
		}

		w := cmd.OutOrStdout()

		for i, f := range files {
			if i > 0 {
				fmt.Fprintln(w)
			}

			if _, err := w.Write(f.Content); err != nil {
				return err
			}
		}

		return nil
	}

	written, err := p.Run(cmd.Context(), paths...)
	if err != nil {
		return explain(cmd, err)
	}

	successColor := color.New(color.FgGreen, color.Bold)
	w := cmd.OutOrStdout()

	if len(written) == 0 {
		color.New(color.FgCyan).Fprintf(w, "Everything up to date in %s\n", outDir)
		return nil
	}

	for _, name := range written {
		successColor.Fprintf(w, "✓ Wrote %s\n", name)
	}

	return nil
}

// explain prints each schema diagnostic on its own line before returning err.
func explain(cmd *cobra.Command, err error) error {
	var verr *schema.ValidationError
	if !errors.As(err, &verr) {
		return err
	}

	w := cmd.ErrOrStderr()

	for _, d := range verr.Diagnostics.Errors {
		color.New(color.FgRed).Fprintln(w, "  "+d.String())
	}

	for _, d := range verr.Diagnostics.Warnings {
		color.New(color.FgYellow).Fprintln(w, "  "+d.String())
	}

	return fmt.Errorf("%w: %d problem(s)", schema.ErrRejectedSchema, len(verr.Diagnostics.Errors))
}
