// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package scanner discovers compiled module files next to a target module.
package scanner

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/api2spec/webapi2swagger/internal/util"
)

// ModuleExtension is the file extension of loadable modules.
const ModuleExtension = ".so"

// ModuleFile represents a discovered module file.
type ModuleFile struct {
	// Path is the absolute path to the file
	Path string

	// Name is the module simple name (base name without extension)
	Name string

	// Size is the file size in bytes
	Size int64

	// ModTime is the last modification time
	ModTime time.Time
}

// IsModuleFile checks if a file path has the module extension.
func IsModuleFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ModuleExtension)
}

func newModuleFile(path string, size int64, modTime time.Time) ModuleFile {
	return ModuleFile{
		Path:    path,
		Name:    util.ModuleName(path),
		Size:    size,
		ModTime: modTime,
	}
}
