// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package extract

import (
	"errors"
	"fmt"
)

// Error kinds, matched with errors.Is.
var (
	// ErrConfigurationMissing means the module has no usable WebApiConfig.Register.
	ErrConfigurationMissing = errors.New("web API configuration not found")

	// ErrModuleLoad means the target module could not be loaded.
	ErrModuleLoad = errors.New("module load failed")

	// ErrRegistration means the module's Register panicked or left invalid routes.
	ErrRegistration = errors.New("route registration failed")
)

var kinds = map[string]error{
	"configuration-missing": ErrConfigurationMissing,
	"module-load":           ErrModuleLoad,
	"registration":          ErrRegistration,
}

// Error is an extraction failure for one module.
type Error struct {
	// Kind is one of the Err* sentinels
	Kind error

	// Module is the module the failure concerns
	Module string

	// Err is the underlying cause, if any
	Err error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Module != "" {
		msg = fmt.Sprintf("%s: %s", e.Module, msg)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches the error's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindName returns the wire name of the error's kind.
func (e *Error) KindName() string {
	for name, kind := range kinds {
		if kind == e.Kind {
			return name
		}
	}
	return ""
}

// KindFromName returns the kind registered under name, or nil.
func KindFromName(name string) error {
	return kinds[name]
}

func newError(kind error, module string, format string, args ...any) *Error {
	var err error
	if format != "" {
		err = fmt.Errorf(format, args...)
	}
	return &Error{Kind: kind, Module: module, Err: err}
}
