// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package extract

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"plugin"

	"github.com/api2spec/webapi2swagger/internal/scanner"
	"github.com/api2spec/webapi2swagger/internal/util"
)

// Module is a loaded module whose exported symbols can be looked up.
type Module interface {
	// Name returns the module simple name
	Name() string

	// Lookup returns the exported symbol with the given name
	Lookup(symbol string) (any, error)
}

// pluginModule is a module backed by a Go plugin.
type pluginModule struct {
	name string
	p    *plugin.Plugin
}

func (m *pluginModule) Name() string { return m.name }

func (m *pluginModule) Lookup(symbol string) (any, error) {
	return m.p.Lookup(symbol)
}

// OpenPlugin opens the Go plugin at path.
func OpenPlugin(path string) (Module, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, err
	}
	return &pluginModule{name: util.ModuleName(path), p: p}, nil
}

// StaticModule serves symbols from memory.
type StaticModule struct {
	ModuleName string
	Symbols    map[string]any
}

func (m *StaticModule) Name() string { return m.ModuleName }

func (m *StaticModule) Lookup(symbol string) (any, error) {
	v, ok := m.Symbols[symbol]
	if !ok {
		return nil, fmt.Errorf("symbol %s not found in module %s", symbol, m.ModuleName)
	}
	return v, nil
}

// Opener opens a module file.
type Opener func(path string) (Module, error)

// Loader loads a target module together with its sibling modules.
type Loader struct {
	// Open opens a module file (defaults to OpenPlugin)
	Open Opener

	// Dependencies are glob patterns selecting sibling modules to preload
	Dependencies []string

	// Logger receives diagnostics (defaults to slog.Default)
	Logger *slog.Logger
}

// Load opens the sibling modules matching the dependency patterns, then the
// target. Sibling failures are logged and skipped; a target failure is an
// ErrModuleLoad error.
func (l *Loader) Load(ctx context.Context, path string) (Module, error) {
	open := l.Open
	if open == nil {
		open = OpenPlugin
	}
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, &Error{Kind: ErrModuleLoad, Module: path, Err: err}
	}
	name := util.ModuleName(absPath)

	if len(l.Dependencies) > 0 {
		s := scanner.New(scanner.Config{
			BasePath:        filepath.Dir(absPath),
			IncludePatterns: l.Dependencies,
		})
		siblings, err := s.Siblings(absPath)
		if err != nil {
			logger.DebugContext(ctx, "sibling scan failed", "module", name, "error", err)
		}
		for _, sib := range siblings {
			if _, err := open(sib.Path); err != nil {
				logger.DebugContext(ctx, "skipping sibling module", "module", sib.Name, "error", err)
				continue
			}
			logger.DebugContext(ctx, "loaded sibling module", "module", sib.Name)
		}
	}

	m, err := open(absPath)
	if err != nil {
		return nil, &Error{Kind: ErrModuleLoad, Module: name, Err: err}
	}
	logger.DebugContext(ctx, "loaded module", "module", name, "path", absPath)
	return m, nil
}

// LoadModule loads path and its siblings with the default plugin opener.
func LoadModule(ctx context.Context, path string, dependencies []string) (Module, error) {
	l := &Loader{Dependencies: dependencies}
	return l.Load(ctx, path)
}
