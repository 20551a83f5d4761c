// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDir creates a temporary directory with test files.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()

	tmpDir := t.TempDir()

	for path, content := range files {
		fullPath := filepath.Join(tmpDir, path)
		dir := filepath.Dir(fullPath)
		err := os.MkdirAll(dir, 0o755)
		require.NoError(t, err)
		err = os.WriteFile(fullPath, []byte(content), 0o644)
		require.NoError(t, err)
	}

	return tmpDir
}

func names(files []ModuleFile) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Name)
	}
	return out
}

func TestNew_DefaultConfig(t *testing.T) {
	scanner := New(Config{})

	assert.NotNil(t, scanner)
	assert.Equal(t, ".", scanner.config.BasePath)
	assert.Equal(t, []string{"*.so"}, scanner.config.IncludePatterns)
}

func TestNew_CustomConfig(t *testing.T) {
	scanner := New(Config{
		BasePath:        "/custom/path",
		IncludePatterns: []string{"**/*.so"},
		ExcludePatterns: []string{"testdata/**"},
	})

	assert.Equal(t, "/custom/path", scanner.config.BasePath)
	assert.Equal(t, []string{"**/*.so"}, scanner.config.IncludePatterns)
	assert.Equal(t, []string{"testdata/**"}, scanner.config.ExcludePatterns)
}

func TestScanner_Scan_BasicFiles(t *testing.T) {
	tmpDir := setupTestDir(t, map[string]string{
		"Orders.Api.so":    "elf",
		"Orders.Domain.so": "elf",
		"readme.md":        "# README",
		"nested/Other.so":  "elf",
	})

	scanner := New(Config{BasePath: tmpDir})

	files, err := scanner.Scan()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Orders.Api", "Orders.Domain"}, names(files))

	for _, f := range files {
		assert.True(t, filepath.IsAbs(f.Path))
		assert.Equal(t, int64(3), f.Size)
		assert.False(t, f.ModTime.IsZero())
	}
}

func TestScanner_Scan_Recursive(t *testing.T) {
	tmpDir := setupTestDir(t, map[string]string{
		"a.so":             "elf",
		"lib/b.so":         "elf",
		"lib/deep/c.so":    "elf",
		"testdata/skip.so": "elf",
	})

	scanner := New(Config{
		BasePath:        tmpDir,
		IncludePatterns: []string{"**/*.so"},
		ExcludePatterns: []string{"testdata/**"},
	})

	files, err := scanner.Scan()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, names(files))
}

func TestScanner_Scan_ExcludePatterns(t *testing.T) {
	tmpDir := setupTestDir(t, map[string]string{
		"api.so":       "elf",
		"api_debug.so": "elf",
	})

	scanner := New(Config{
		BasePath:        tmpDir,
		ExcludePatterns: []string{"*_debug.so"},
	})

	files, err := scanner.Scan()
	require.NoError(t, err)
	assert.Equal(t, []string{"api"}, names(files))
}

func TestScanner_Scan_EmptyDirectory(t *testing.T) {
	scanner := New(Config{BasePath: t.TempDir()})

	files, err := scanner.Scan()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestScanner_ScanPath_SingleFile(t *testing.T) {
	tmpDir := setupTestDir(t, map[string]string{
		"api.so":  "elf",
		"api.txt": "text",
	})

	scanner := New(Config{BasePath: tmpDir})

	files, err := scanner.ScanPath(filepath.Join(tmpDir, "api.so"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "api", files[0].Name)

	files, err = scanner.ScanPath(filepath.Join(tmpDir, "api.txt"))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestScanner_ScanPath_NonexistentPath(t *testing.T) {
	scanner := New(Config{})

	_, err := scanner.ScanPath("/nonexistent/path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestScanner_Siblings(t *testing.T) {
	tmpDir := setupTestDir(t, map[string]string{
		"api.so":    "elf",
		"domain.so": "elf",
		"infra.so":  "elf",
		"notes.txt": "text",
	})

	scanner := New(Config{BasePath: tmpDir})

	files, err := scanner.Siblings(filepath.Join(tmpDir, "api.so"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"domain", "infra"}, names(files))
}

func TestScanner_Siblings_OutsideBasePath(t *testing.T) {
	tmpDir := setupTestDir(t, map[string]string{
		"bin/api.so":    "elf",
		"bin/domain.so": "elf",
	})

	scanner := New(Config{BasePath: t.TempDir()})

	files, err := scanner.Siblings(filepath.Join(tmpDir, "bin", "api.so"))
	require.NoError(t, err)
	assert.Equal(t, []string{"domain"}, names(files))
}

func TestIsModuleFile(t *testing.T) {
	assert.True(t, IsModuleFile("/x/api.so"))
	assert.True(t, IsModuleFile("API.SO"))
	assert.False(t, IsModuleFile("api.go"))
	assert.False(t, IsModuleFile("so"))
}
