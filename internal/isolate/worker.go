// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package isolate

import (
	"context"
	"io"
	"log/slog"

	"github.com/api2spec/webapi2swagger/internal/extract"
	"github.com/api2spec/webapi2swagger/pkg/types"
)

// Extractor produces metadata for the module at path.
type Extractor interface {
	Extract(ctx context.Context, path string) (*types.Metadata, error)
}

// Worker loads and extracts a module in the current process.
type Worker struct {
	// Dependencies are glob patterns selecting sibling modules to preload
	Dependencies []string

	// Open opens module files (defaults to extract.OpenPlugin)
	Open extract.Opener

	// Logger receives diagnostics (defaults to slog.Default)
	Logger *slog.Logger
}

// Extract loads the module at path and harvests its metadata.
func (w *Worker) Extract(ctx context.Context, path string) (*types.Metadata, error) {
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}

	loader := &extract.Loader{
		Open:         w.Open,
		Dependencies: w.Dependencies,
		Logger:       logger,
	}
	module, err := loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	extractor := &extract.Extractor{Logger: logger.With("module", module.Name())}
	return extractor.Extract(ctx, module)
}

// Serve extracts the module at path and writes the result envelope to out.
// Extraction failures travel inside the envelope; only write failures are
// returned.
func (w *Worker) Serve(ctx context.Context, out io.Writer, path string) error {
	meta, err := w.Extract(ctx, path)
	if err != nil && w.Logger != nil {
		w.Logger.DebugContext(ctx, "extraction failed", "error", err)
	}
	return WriteEnvelope(out, NewEnvelope(meta, err))
}
