// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package util provides shared string helpers.
package util

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ToLowerCamelCase converts PascalCase to camelCase.
func ToLowerCamelCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// GenericBase strips type arguments: "Page[pkg.Item]" returns "Page".
func GenericBase(name string) string {
	if i := strings.IndexByte(name, '['); i >= 0 {
		return name[:i]
	}
	return name
}

// ModuleName returns the simple name of a module file: its base name
// without the extension.
func ModuleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// TitleFromModule derives a document title from a module name by
// stripping separator characters: "Contoso.Orders-api" returns "ContosoOrdersapi".
func TitleFromModule(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '-', '_', ' ':
			return -1
		}
		return r
	}, name)
}

// OperationID builds a "Controller_Action" identifier with the controller
// title-cased.
func OperationID(controller, action string) string {
	titleCaser := cases.Title(language.English, cases.NoLower)
	return titleCaser.String(controller) + "_" + action
}

// OperationIDFromPath derives an identifier from the method and path when
// an action has no controller: ("GET", "/items/{id}") returns "GetItemsById".
func OperationIDFromPath(method, path string) string {
	titleCaser := cases.Title(language.English, cases.NoLower)

	var b strings.Builder
	b.WriteString(titleCaser.String(strings.ToLower(method)))

	words := strings.FieldsFunc(path, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '{'
	})
	for _, w := range words {
		if strings.HasPrefix(w, "{") {
			b.WriteString("By")
			w = strings.TrimLeft(w, "{")
		}
		b.WriteString(titleCaser.String(w))
	}
	return b.String()
}
