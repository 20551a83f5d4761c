// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/api2spec/webapi2swagger/internal/swagger"
	"github.com/api2spec/webapi2swagger/internal/validate"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a Swagger 2.0 document",
		Long: `Validate a JSON or YAML document against the Swagger 2.0 JSON schema and
list every violation found.

Example:
  webapi2swagger validate swagger.json
  webapi2swagger validate api.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if swagger.FormatFromPath(path) == swagger.FormatYAML {
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		data, err = json.Marshal(raw)
		if err != nil {
			return fmt.Errorf("failed to convert %s: %w", path, err)
		}
	}

	if err := validate.Validate(data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	printInfo("%s is valid Swagger 2.0", path)
	return nil
}
