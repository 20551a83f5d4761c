// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package watch triggers regeneration when compiled modules change on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when a non-positive debounce is given.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reports debounced changes to files in one directory whose base
// names match a set of glob patterns.
type Watcher struct {
	watcher  *fsnotify.Watcher
	dir      string
	patterns []string
	debounce time.Duration
	timer    *time.Timer
	trigger  chan struct{}
	logger   *slog.Logger
}

// New starts watching dir. Only files whose base name matches one of
// patterns are reported.
func New(dir string, patterns []string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return &Watcher{
		watcher:  fsw,
		dir:      dir,
		patterns: patterns,
		debounce: debounce,
		trigger:  make(chan struct{}, 1),
		logger:   logger,
	}, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Run calls onChange after each burst of matching events settles. Calls
// never overlap; events arriving during a call are coalesced into one
// follow-up call. Run returns when ctx is cancelled or the watcher is
// closed, after any in-flight call has returned.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context)) error {
	var wg sync.WaitGroup
	done := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case <-w.trigger:
				onChange(ctx)
			}
		}
	}()
	defer wg.Wait()
	defer close(done)
	defer w.stopTimer()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.WarnContext(ctx, "watch error", "dir", w.dir, "error", err)
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if !w.matches(ev.Name) {
				continue
			}
			w.logger.DebugContext(ctx, "module changed", "file", ev.Name, "op", ev.Op.String())
			w.debounceUpdate()
		}
	}
}

func (w *Watcher) debounceUpdate() {
	w.stopTimer()
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.trigger <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stopTimer() {
	if w.timer != nil {
		w.timer.Stop()
	}
}

func (w *Watcher) matches(path string) bool {
	name := filepath.Base(path)
	for _, pattern := range w.patterns {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
