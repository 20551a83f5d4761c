// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/api2spec/webapi2swagger/internal/config"
	"github.com/api2spec/webapi2swagger/internal/isolate"
	"github.com/api2spec/webapi2swagger/internal/swagger"
	"github.com/api2spec/webapi2swagger/internal/validate"
	"github.com/api2spec/webapi2swagger/pkg/types"
)

// newExtractor returns the extractor matching the configured isolation.
var newExtractor = func(cfg *config.Config, logger *slog.Logger) isolate.Extractor {
	if cfg.Generation.Isolation == config.IsolationNone {
		return &isolate.Worker{
			Dependencies: cfg.Generation.Dependencies,
			Logger:       logger,
		}
	}
	return &isolate.ProcessExtractor{
		Dependencies: cfg.Generation.Dependencies,
		Verbose:      verbose,
		Stderr:       stderr,
		Logger:       logger,
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := requireArgs(cmd, cfg, true); err != nil {
		return err
	}

	doc, err := writeDocument(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	printInfo("Wrote %s (%d paths, %d definitions)", cfg.Output, len(doc.Paths), len(doc.Definitions))
	return nil
}

// writeDocument generates the document, merges and validates it as
// configured, and writes it to the output file.
func writeDocument(ctx context.Context, cfg *config.Config) (*types.Swagger, error) {
	doc, err := generateDocument(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Generation.Merge {
		doc, err = mergeExisting(cfg.Output, doc)
		if err != nil {
			return nil, err
		}
	}

	data, err := renderDocument(cfg, doc)
	if err != nil {
		return nil, err
	}

	if err := writeOutput(cfg.Output, data); err != nil {
		return nil, err
	}
	return doc, nil
}

// loadConfig loads the config file and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if assembly != "" {
		cfg.Assembly = assembly
	}
	if output != "" {
		cfg.Output = output
	}
	if format != "" {
		cfg.Format = format
	} else if output != "" {
		cfg.Format = swagger.FormatFromPath(output)
	}
	if title != "" {
		cfg.Swagger.Info.Title = title
	}
	if apiVersion != "" {
		cfg.Swagger.Info.Version = apiVersion
	}
	if validateDoc {
		cfg.Generation.Validate = true
	}
	if merge {
		cfg.Generation.Merge = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	printVerbose("Configuration:")
	printVerbose("  Assembly: %s", cfg.Assembly)
	printVerbose("  Output: %s", cfg.Output)
	printVerbose("  Format: %s", cfg.Format)
	printVerbose("  Isolation: %s", cfg.Generation.Isolation)
	printVerbose("  Dependencies: %s", strings.Join(cfg.Generation.Dependencies, ", "))

	return cfg, nil
}

// requireArgs prints usage and fails when the assembly, or the output
// when needOutput is set, is missing.
func requireArgs(cmd *cobra.Command, cfg *config.Config, needOutput bool) error {
	var missing []string
	if cfg.Assembly == "" {
		missing = append(missing, "--assembly")
	}
	if needOutput && cfg.Output == "" {
		missing = append(missing, "--output")
	}
	if len(missing) == 0 {
		return nil
	}

	cmd.SetOut(stderr)
	_ = cmd.Usage()
	return fmt.Errorf("missing required argument(s): %s", strings.Join(missing, ", "))
}

// generateDocument extracts the configured module and builds its document.
func generateDocument(ctx context.Context, cfg *config.Config) (*types.Swagger, error) {
	logger := isolate.NewLogger(stderr, verbose, "")

	meta, err := newExtractor(cfg, logger).Extract(ctx, cfg.Assembly)
	if err != nil {
		return nil, fmt.Errorf("failed to extract %s: %w", cfg.Assembly, err)
	}
	printVerbose("Extracted %d routes and %d types from %s", len(meta.Routes), len(meta.Types), meta.Module)

	doc, err := swagger.NewBuilder(cfg, swagger.WithLogger(logger)).Build(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to build Swagger document: %w", err)
	}
	return doc, nil
}

// mergeExisting folds hand-written content from the file at path into
// doc. A missing file leaves doc unchanged.
func mergeExisting(path string, doc *types.Swagger) (*types.Swagger, error) {
	existing, err := swagger.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		printVerbose("No existing document at %s, nothing to merge", path)
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read existing document: %w", err)
	}
	printVerbose("Merging with %s", path)
	return swagger.MergeDefault(existing, doc), nil
}

// renderDocument serializes doc in the configured format, validating it
// first when requested.
func renderDocument(cfg *config.Config, doc *types.Swagger) ([]byte, error) {
	writer := swagger.NewWriter()

	jsonData, err := writer.Marshal(doc, swagger.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}

	if cfg.Generation.Validate {
		if err := validate.Validate(jsonData); err != nil {
			return nil, err
		}
		printVerbose("Document is valid Swagger 2.0")
	}

	if cfg.Format == "" || cfg.Format == swagger.FormatJSON {
		return jsonData, nil
	}
	data, err := writer.Marshal(doc, cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}
	return data, nil
}

// writeOutput writes data to path in a single call.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
