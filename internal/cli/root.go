// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package cli provides the command-line interface for webapi2swagger.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile     string
	assembly    string
	output      string
	title       string
	apiVersion  string
	format      string
	validateDoc bool
	merge       bool
	verbose     bool
	quiet       bool
)

// stdout and stderr receive user-facing output; they follow the running
// command's writers.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webapi2swagger",
		Short: "Swagger 2.0 generator for compiled web API modules",
		Long: `webapi2swagger loads a compiled web API module in an isolated worker
process, runs its route registration and writes a Swagger 2.0 document.

Properties and parameters are marked required when their type cannot
hold null: value types are required, pointers to value types, Nullable
and sql.Null wrappers are optional.

Example:
  webapi2swagger -a bin/orders.so -o swagger.json     # Generate a document
  webapi2swagger -a bin/orders.so -o api.yaml -t Shop # YAML with a title
  webapi2swagger init                                 # Write a config file
  webapi2swagger check --ci                           # Fail when out of date
  webapi2swagger watch -a bin/orders.so               # Regenerate on rebuild`,
		Args:              cobra.NoArgs,
		RunE:              runGenerate,
		PersistentPreRun:  bindOutput,
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default: webapi2swagger.yaml)")
	flags.StringVarP(&assembly, "assembly", "a", "", "compiled module to inspect")
	flags.StringVarP(&output, "output", "o", "", "output file path (required)")
	flags.StringVarP(&title, "title", "t", "", "API title (default: derived from the module name)")
	flags.StringVarP(&apiVersion, "version", "v", "", "API version (default: v1)")
	flags.StringVarP(&format, "format", "f", "", "output format: json, yaml (default: from the output extension)")
	flags.BoolVar(&validateDoc, "validate", false, "validate the document against the Swagger 2.0 schema")
	flags.BoolVar(&merge, "merge", false, "merge with the existing output file")
	flags.BoolVar(&verbose, "verbose", false, "enable verbose output")
	flags.BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	cmd.AddCommand(
		newVersionCmd(),
		newInitCmd(),
		newExtractCmd(),
		newCheckCmd(),
		newDiffCmd(),
		newValidateCmd(),
		newWatchCmd(),
		newPrintCmd(),
	)
	return cmd
}

// Execute runs the root command with ctx.
// This is called by main.main().
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func bindOutput(cmd *cobra.Command, _ []string) {
	stdout = cmd.OutOrStdout()
	stderr = cmd.ErrOrStderr()
}

// printInfo prints a message if not in quiet mode.
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(stdout, format+"\n", args...)
	}
}

// printVerbose prints a diagnostic to stderr if verbose mode is enabled,
// keeping stdout clean for documents.
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(stderr, format+"\n", args...)
	}
}

// printError prints an error message.
func printError(format string, args ...any) {
	fmt.Fprintf(stderr, "Error: "+format+"\n", args...)
}
