// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/api2spec/webapi2swagger/internal/isolate"
)

var (
	extractSession      string
	extractDependencies []string
	extractEnvelopeFD   int
)

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   isolate.WorkerCommand,
		Short: "Extract module metadata (worker process)",
		Long: `Load a compiled module, run its registration and write the extracted
metadata as a JSON envelope to standard output, or to --envelope-fd when
given. While the module runs, its own writes to stdout go to stderr.

This command is started by webapi2swagger itself for every extraction and
is not meant to be run by hand.`,
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE:   runExtract,
	}

	cmd.Flags().StringVar(&extractSession, "session", "", "session identifier used in logs")
	cmd.Flags().StringArrayVar(&extractDependencies, "dependency", nil, "glob pattern selecting sibling modules to preload")
	cmd.Flags().IntVar(&extractEnvelopeFD, "envelope-fd", 0, "inherited descriptor to write the envelope to (default stdout)")
	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	if assembly == "" {
		return errors.New("missing required argument: --assembly")
	}

	out := cmd.OutOrStdout()
	if extractEnvelopeFD > 0 {
		f, err := isolate.EnvelopeFile(extractEnvelopeFD)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	restore := redirectStdout(os.Stderr)
	defer restore()

	worker := &isolate.Worker{
		Dependencies: extractDependencies,
		Logger:       isolate.NewLogger(cmd.ErrOrStderr(), verbose, extractSession),
	}
	return worker.Serve(cmd.Context(), out, assembly)
}

// redirectStdout points os.Stdout at w and returns a func restoring it.
func redirectStdout(w *os.File) func() {
	saved := os.Stdout
	os.Stdout = w
	return func() { os.Stdout = saved }
}
