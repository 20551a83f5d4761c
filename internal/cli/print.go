// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"github.com/spf13/cobra"
)

func newPrintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print",
		Short: "Generate the Swagger document and print it to stdout",
		Long: `Generate the Swagger document and print it to standard output instead
of writing the output file.

This is useful for piping the output to other tools or for quick inspection.

Example:
  webapi2swagger print -a bin/orders.so                # Print JSON
  webapi2swagger print -a bin/orders.so -f yaml        # Print YAML
  webapi2swagger print -a bin/orders.so | jq '.paths'  # Pipe to jq`,
		Args: cobra.NoArgs,
		RunE: runPrint,
	}
}

func runPrint(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := requireArgs(cmd, cfg, false); err != nil {
		return err
	}

	doc, err := generateDocument(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	data, err := renderDocument(cfg, doc)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}
