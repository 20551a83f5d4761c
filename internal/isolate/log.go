// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package isolate

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// NewSession returns a fresh session identifier.
func NewSession() string {
	return uuid.NewString()
}

// NewLogger returns a text logger tagged with session. Debug records are
// emitted only when verbose is set.
func NewLogger(w io.Writer, verbose bool, session string) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	if session != "" {
		logger = logger.With("session", session)
	}
	return logger
}
