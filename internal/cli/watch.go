// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/api2spec/webapi2swagger/internal/config"
	"github.com/api2spec/webapi2swagger/internal/isolate"
	"github.com/api2spec/webapi2swagger/internal/watch"
)

var watchDebounce int

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the module and regenerate the document on change",
		Long: `Watch the compiled module, and the sibling modules selected by the
dependency patterns, and regenerate the Swagger document whenever one
of them is rebuilt.

Bursts of file events are debounced and regenerations never overlap.
Press Ctrl+C to stop; a running extraction is cancelled.

Example:
  webapi2swagger watch -a bin/orders.so -o swagger.json
  webapi2swagger watch --debounce 1000   # Wait 1s before regenerating`,
		Args: cobra.NoArgs,
		RunE: runWatch,
	}

	cmd.Flags().IntVar(&watchDebounce, "debounce", 0, "debounce duration in milliseconds (default: from config)")
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if watchDebounce > 0 {
		cfg.Watch.Debounce = watchDebounce
	}
	if err := requireArgs(cmd, cfg, true); err != nil {
		return err
	}

	absPath, err := filepath.Abs(cfg.Assembly)
	if err != nil {
		return fmt.Errorf("failed to resolve module path: %w", err)
	}
	dir := filepath.Dir(absPath)
	patterns := append([]string{filepath.Base(absPath)}, cfg.Generation.Dependencies...)

	printVerbose("Watch configuration:")
	printVerbose("  Debounce: %dms", cfg.Watch.Debounce)
	printVerbose("  Patterns: %s", strings.Join(patterns, ", "))

	w, err := watch.New(dir, patterns, time.Duration(cfg.Watch.Debounce)*time.Millisecond, isolate.NewLogger(stderr, verbose, ""))
	if err != nil {
		return err
	}
	defer w.Close()

	ctx := cmd.Context()
	regenerate(ctx, cfg)

	printInfo("Watching %s for changes", dir)
	printInfo("Press Ctrl+C to stop")

	return w.Run(ctx, func(ctx context.Context) {
		regenerate(ctx, cfg)
	})
}

// regenerate runs one generation and reports, rather than returns, its
// failure so that watching continues.
func regenerate(ctx context.Context, cfg *config.Config) {
	start := time.Now()

	if _, err := writeDocument(ctx, cfg); err != nil {
		if ctx.Err() == nil {
			printError("%v", err)
		}
		return
	}
	printInfo("Regenerated %s in %s", cfg.Output, time.Since(start).Round(time.Millisecond))
}
