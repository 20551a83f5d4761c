// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package isolate

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/api2spec/webapi2swagger/internal/extract"
	"github.com/api2spec/webapi2swagger/internal/util"
	"github.com/api2spec/webapi2swagger/pkg/types"
)

// WorkerCommand is the hidden CLI command a worker process runs.
const WorkerCommand = "extract"

// EnvelopeFD is the descriptor a worker writes its envelope to: the first
// entry of the child's extra files. The module's own stdout never shares it.
const EnvelopeFD = 3

// EnvelopeFile returns the worker's end of the envelope pipe.
func EnvelopeFile(fd int) (*os.File, error) {
	f := os.NewFile(uintptr(fd), "envelope")
	if f == nil {
		return nil, fmt.Errorf("invalid envelope descriptor %d", fd)
	}
	return f, nil
}

// ProcessExtractor runs each extraction in a fresh child process so that
// loaded modules never outlive a run.
type ProcessExtractor struct {
	// Executable is the worker binary (defaults to the running executable)
	Executable string

	// Args are placed before the worker command line
	Args []string

	// Env is appended to the parent's environment
	Env []string

	// Dependencies are forwarded to the worker
	Dependencies []string

	// Verbose enables debug logging in the worker
	Verbose bool

	// Stderr receives the worker's logs (defaults to os.Stderr)
	Stderr io.Writer

	// Logger receives the parent's diagnostics (defaults to slog.Default)
	Logger *slog.Logger
}

// Extract runs a worker for the module at path and decodes its envelope.
func (p *ProcessExtractor) Extract(ctx context.Context, path string) (*types.Metadata, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve module path: %w", err)
	}

	exe := p.Executable
	if exe == "" {
		exe, err = os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to locate worker executable: %w", err)
		}
	}

	session := NewSession()
	args := append([]string{}, p.Args...)
	args = append(args, WorkerCommand, "--assembly", absPath, "--session", session,
		"--envelope-fd", strconv.Itoa(EnvelopeFD))
	for _, dep := range p.Dependencies {
		args = append(args, "--dependency", dep)
	}
	if p.Verbose {
		args = append(args, "--verbose")
	}

	stderr := p.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	envR, envW, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create envelope pipe: %w", err)
	}
	defer envR.Close()

	// Anything the module prints goes to the log stream.
	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Stdout = stderr
	cmd.Stderr = stderr
	cmd.ExtraFiles = []*os.File{envW}
	if len(p.Env) > 0 {
		cmd.Env = append(os.Environ(), p.Env...)
	}

	logger.DebugContext(ctx, "starting worker",
		"session", session, "module", util.ModuleName(absPath), "executable", exe)
	runErr := cmd.Start()
	envW.Close()

	var envelope bytes.Buffer
	if runErr == nil {
		_, readErr := envelope.ReadFrom(envR)
		runErr = cmd.Wait()
		if runErr == nil && readErr != nil {
			runErr = readErr
		}
	}
	logger.DebugContext(ctx, "worker exited",
		"session", session, "module", util.ModuleName(absPath), "state", cmd.ProcessState)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if envelope.Len() == 0 {
		if runErr == nil {
			runErr = fmt.Errorf("worker produced no output")
		}
		return nil, &extract.Error{
			Kind:   extract.ErrModuleLoad,
			Module: util.ModuleName(absPath),
			Err:    fmt.Errorf("worker failed: %w", runErr),
		}
	}

	env, err := ReadEnvelope(envelope.Bytes())
	if err != nil {
		return nil, err
	}
	return env.Result()
}
