// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Config holds scanner configuration.
type Config struct {
	// BasePath is the base directory for scanning (defaults to current directory)
	BasePath string

	// IncludePatterns are glob patterns for files to include (e.g., "*.so")
	IncludePatterns []string

	// ExcludePatterns are glob patterns for files to exclude (e.g., "testdata/**")
	ExcludePatterns []string
}

// Scanner discovers module files in a directory.
type Scanner struct {
	config Config
}

// New creates a new Scanner with the given configuration.
func New(config Config) *Scanner {
	// Apply defaults
	if config.BasePath == "" {
		config.BasePath = "."
	}
	if len(config.IncludePatterns) == 0 {
		config.IncludePatterns = []string{"*" + ModuleExtension}
	}

	return &Scanner{
		config: config,
	}
}

// Scan discovers all module files matching the configuration.
func (s *Scanner) Scan() ([]ModuleFile, error) {
	return s.ScanPath(s.config.BasePath)
}

// ScanPath scans a specific path for module files.
func (s *Scanner) ScanPath(path string) ([]ModuleFile, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("path does not exist: %s", absPath)
		}
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	// If path is a file, check if it matches and return it
	if !info.IsDir() {
		if s.shouldIncludeFile(absPath, info) {
			return []ModuleFile{newModuleFile(absPath, info.Size(), info.ModTime())}, nil
		}
		return nil, nil
	}

	var files []ModuleFile
	err = filepath.WalkDir(absPath, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip inaccessible paths
			return nil
		}

		if d.IsDir() {
			relPath, _ := filepath.Rel(absPath, filePath)
			if s.shouldExcludeDir(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		if s.shouldIncludeFile(filePath, info) {
			files = append(files, newModuleFile(filePath, info.Size(), info.ModTime()))
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	return files, nil
}

// Siblings returns the module files in the directory of target, excluding
// target itself.
func (s *Scanner) Siblings(target string) ([]ModuleFile, error) {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	files, err := s.ScanPath(filepath.Dir(absTarget))
	if err != nil {
		return nil, err
	}

	siblings := files[:0]
	for _, f := range files {
		if f.Path != absTarget {
			siblings = append(siblings, f)
		}
	}
	return siblings, nil
}

// shouldIncludeFile checks if a file should be included based on patterns.
func (s *Scanner) shouldIncludeFile(filePath string, info fs.FileInfo) bool {
	if info.IsDir() {
		return false
	}

	// Get relative path for pattern matching
	basePath, _ := filepath.Abs(s.config.BasePath)
	relPath, err := filepath.Rel(basePath, filePath)
	if err != nil || strings.HasPrefix(relPath, "..") {
		relPath = filepath.Base(filePath)
	}

	// Normalize path separators for pattern matching
	relPath = filepath.ToSlash(relPath)

	// Check exclude patterns first
	if s.matchesPatterns(relPath, s.config.ExcludePatterns) {
		return false
	}

	return s.matchesPatterns(relPath, s.config.IncludePatterns)
}

// shouldExcludeDir checks if a directory should be excluded.
func (s *Scanner) shouldExcludeDir(relPath string) bool {
	if relPath == "" || relPath == "." {
		return false
	}

	relPath = filepath.ToSlash(relPath)

	for _, pattern := range s.config.ExcludePatterns {
		// "testdata" matches "testdata/**"
		dirPattern := strings.TrimSuffix(pattern, "/**")
		dirPattern = strings.TrimSuffix(dirPattern, "/*")

		if relPath == dirPattern {
			return true
		}

		matched, _ := doublestar.Match(pattern, relPath+"/dummy"+ModuleExtension)
		if matched {
			return true
		}
	}

	return false
}

// matchesPatterns checks if a path matches any of the given patterns.
func (s *Scanner) matchesPatterns(path string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			// Invalid pattern, skip
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
