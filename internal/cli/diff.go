// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/api2spec/webapi2swagger/internal/swagger"
)

var diffFailOnBreaking bool

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Compare two Swagger documents",
		Long: `Compare two Swagger 2.0 documents and show added, removed and modified
operations and definitions. Removals are reported as breaking changes.

Example:
  webapi2swagger diff old.json new.json
  webapi2swagger diff swagger.json swagger.yaml
  webapi2swagger diff --fail-on-breaking old.json new.json`,
		Args: cobra.ExactArgs(2),
		RunE: runDiff,
	}

	cmd.Flags().BoolVar(&diffFailOnBreaking, "fail-on-breaking", false, "return an error when breaking changes are found")
	return cmd
}

func runDiff(cmd *cobra.Command, args []string) error {
	printVerbose("Comparing %s against %s", args[0], args[1])

	oldDoc, err := swagger.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	newDoc, err := swagger.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[1], err)
	}

	result := swagger.Diff(oldDoc, newDoc)
	fmt.Fprintln(cmd.OutOrStdout(), swagger.FormatDiff(result))

	if diffFailOnBreaking && result.HasBreakingChanges {
		return &ExitError{Code: ExitCodeDifference, Err: fmt.Errorf("breaking changes between %s and %s", args[0], args[1])}
	}
	return nil
}
