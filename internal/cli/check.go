// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/api2spec/webapi2swagger/internal/swagger"
)

// Exit codes for check command
const (
	ExitCodeMatch      = 0 // Document matches the module
	ExitCodeDifference = 1 // Document differs from the module
	ExitCodeCheckError = 2 // Error during extraction or comparison
)

// ExitError asks main to exit with Code. Err, when set, is reported first.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

var (
	checkStrict bool
	checkIgnore []string
	checkCI     bool
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check if the output file matches the module",
		Long: `Check regenerates the Swagger document in memory and compares it with
the existing output file. It's useful for CI pipelines to ensure the
document is always in sync with the compiled module.

Exit codes (with --ci):
  0  Document matches the module
  1  Document differs from the module
  2  Error during extraction or comparison

Example:
  webapi2swagger check -a bin/orders.so -o swagger.json
  webapi2swagger check --ci                    # CI mode with exit codes
  webapi2swagger check --ignore "/internal/**" # Ignore matching paths
  webapi2swagger check --ignore "Legacy*"      # Ignore matching definitions`,
		Args: cobra.NoArgs,
		RunE: runCheck,
	}

	cmd.Flags().BoolVar(&checkStrict, "strict", true, "fail on any difference")
	cmd.Flags().StringSliceVar(&checkIgnore, "ignore", nil, "glob patterns for paths or definitions to ignore")
	cmd.Flags().BoolVar(&checkCI, "ci", false, "CI mode: use exit codes for status")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	err := check(cmd)
	if !checkCI {
		return err
	}

	var exitErr *ExitError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &exitErr):
		return err
	default:
		return &ExitError{Code: ExitCodeCheckError, Err: err}
	}
}

func check(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := requireArgs(cmd, cfg, true); err != nil {
		return err
	}

	printVerbose("Check configuration:")
	printVerbose("  Strict mode: %t", checkStrict)
	printVerbose("  CI mode: %t", checkCI)
	if len(checkIgnore) > 0 {
		printVerbose("  Ignored patterns: %s", strings.Join(checkIgnore, ", "))
	}

	existing, err := swagger.ReadFile(cfg.Output)
	if errors.Is(err, fs.ErrNotExist) {
		printError("Document not found: %s", cfg.Output)
		printInfo("Run 'webapi2swagger' first to create the document")
		return &ExitError{Code: ExitCodeDifference, Err: fmt.Errorf("document not found: %s", cfg.Output)}
	}
	if err != nil {
		return fmt.Errorf("failed to read existing document: %w", err)
	}

	generated, err := generateDocument(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	if cfg.Generation.Merge {
		generated = swagger.MergeDefault(existing, generated)
	}

	result := swagger.Diff(existing, generated)
	if len(checkIgnore) > 0 {
		result = result.Without(func(s string) bool {
			return matchesAnyPattern(s, checkIgnore)
		})
	}

	if result.IsEmpty() {
		printInfo("Document is in sync with %s", cfg.Assembly)
		return nil
	}

	printInfo("Document differs from module:\n")
	printInfo("%s", swagger.FormatDiff(result))

	if result.HasBreakingChanges {
		printError("Breaking changes detected!")
	}
	printInfo("Run 'webapi2swagger' to update the document")

	if checkStrict || checkCI {
		return &ExitError{Code: ExitCodeDifference, Err: errors.New("document differs from module")}
	}
	return nil
}

// matchesAnyPattern reports whether s matches any of the glob patterns.
func matchesAnyPattern(s string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, s); ok {
			return true
		}
	}
	return false
}
