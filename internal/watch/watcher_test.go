// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, dir string, patterns []string, onChange func(context.Context)) {
	t.Helper()

	w, err := New(dir, patterns, 20*time.Millisecond, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, onChange) }()

	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
		w.Close()
	})
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	startWatcher(t, dir, []string{"orders.so"}, func(context.Context) { calls.Add(1) })

	path := filepath.Join(dir, "orders.so")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte(i)}, 0o644))
	}

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatcher_IgnoresUnmatchedFiles(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	startWatcher(t, dir, []string{"*.so"}, func(context.Context) { calls.Add(1) })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	assert.Never(t, func() bool { return calls.Load() > 0 }, 200*time.Millisecond, 10*time.Millisecond)
}

func TestWatcher_CallsNeverOverlap(t *testing.T) {
	dir := t.TempDir()
	var running, overlapped, calls atomic.Int32
	startWatcher(t, dir, []string{"*.so"}, func(context.Context) {
		if running.Add(1) > 1 {
			overlapped.Store(1)
		}
		time.Sleep(50 * time.Millisecond)
		running.Add(-1)
		calls.Add(1)
	})

	path := filepath.Join(dir, "orders.so")
	for i := 0; i < 4; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte(i)}, 0o644))
		time.Sleep(40 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
	assert.Zero(t, overlapped.Load())
}

func TestWatcher_StopsOnCancel(t *testing.T) {
	w, err := New(t.TempDir(), []string{"*.so"}, 0, nil)
	require.NoError(t, err)
	defer w.Close()
	assert.Equal(t, DefaultDebounce, w.debounce)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, w.Run(ctx, func(context.Context) {}))
}

func TestWatcher_StopsOnClose(t *testing.T) {
	w, err := New(t.TempDir(), []string{"*.so"}, 0, nil)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- w.Run(context.Background(), func(context.Context) {}) }()

	require.NoError(t, w.Close())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Close")
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), nil, 0, nil)
	assert.Error(t, err)
}

func TestWatcher_Matches(t *testing.T) {
	w := &Watcher{patterns: []string{"orders.so", "lib*.so"}}

	assert.True(t, w.matches("/bin/orders.so"))
	assert.True(t, w.matches("/bin/libshared.so"))
	assert.False(t, w.matches("/bin/orders.go"))
}
