// Package cli implements the accounts-generator command line.
package cli

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"accounts-generator/internal/config"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

// loadConfig reads the explicit config file when one was given, otherwise
// the optional accounts-generator.yaml in the working directory.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		return config.LoadFile(o.configPath)
	}

	return config.Load(".")
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "accounts-generator",
		Short: "Generate account capability impls from account schemas",
		Long: color.CyanString(`accounts-generator - account schema code generator

Reads account schemas (YAML or JSON) and emits, per schema, the slot-count,
construction, metadata, flattening and exit impls plus feature-guarded
client and CPI mirror modules.`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ./accounts-generator.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewGenCommand(opts))
	rootCmd.AddCommand(NewPlanCommand())
	rootCmd.AddCommand(NewNewCommand())

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			titleColor := color.New(color.FgCyan, color.Bold)
			w := cmd.OutOrStdout()

			titleColor.Fprint(w, "accounts-generator version: ")
			fmt.Fprintln(w, Version)

			titleColor.Fprint(w, "Git commit: ")
			fmt.Fprintln(w, GitCommit)

			titleColor.Fprint(w, "Build date: ")
			fmt.Fprintln(w, BuildDate)

			titleColor.Fprint(w, "Go version: ")
			fmt.Fprintln(w, goVer)
		},
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)

		return err
	}

	return nil
}
