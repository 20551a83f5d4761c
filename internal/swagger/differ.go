// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package swagger

import (
	"fmt"
	"slices"
	"strings"

	"github.com/api2spec/webapi2swagger/pkg/types"
)

// DiffType is the kind of change detected.
type DiffType string

const (
	DiffTypeAdded    DiffType = "added"
	DiffTypeRemoved  DiffType = "removed"
	DiffTypeModified DiffType = "modified"
)

// symbol returns the marker used in formatted output.
func (t DiffType) symbol() string {
	switch t {
	case DiffTypeAdded:
		return "+ "
	case DiffTypeRemoved:
		return "- "
	case DiffTypeModified:
		return "~ "
	}
	return "  "
}

// OperationChange is a change to one operation.
type OperationChange struct {
	Type        DiffType
	Path        string
	Method      string
	Description string
}

// DefinitionChange is a change to one definition.
type DefinitionChange struct {
	Type        DiffType
	Name        string
	Description string
}

// DiffResult holds the differences between two documents. Changes are
// ordered by path, method and definition name.
type DiffResult struct {
	Operations  []OperationChange
	Definitions []DefinitionChange

	// HasBreakingChanges is set when an operation or definition was removed
	HasBreakingChanges bool

	// Summary is a one-line description of the changes
	Summary string
}

// IsEmpty reports whether no differences were found.
func (d *DiffResult) IsEmpty() bool {
	return len(d.Operations) == 0 && len(d.Definitions) == 0
}

// Diff compares two documents. Either may be nil.
func Diff(a, b *types.Swagger) *DiffResult {
	result := &DiffResult{}

	diffPaths(paths(a), paths(b), result)
	diffDefinitions(definitions(a), definitions(b), result)
	result.finish()

	return result
}

// Without returns a copy of the result minus the operation changes whose
// path, and the definition changes whose name, satisfy ignore.
func (d *DiffResult) Without(ignore func(string) bool) *DiffResult {
	filtered := &DiffResult{}
	for _, c := range d.Operations {
		if !ignore(c.Path) {
			filtered.Operations = append(filtered.Operations, c)
		}
	}
	for _, c := range d.Definitions {
		if !ignore(c.Name) {
			filtered.Definitions = append(filtered.Definitions, c)
		}
	}
	filtered.finish()
	return filtered
}

func (d *DiffResult) finish() {
	d.HasBreakingChanges = false
	for _, c := range d.Operations {
		if c.Type == DiffTypeRemoved {
			d.HasBreakingChanges = true
		}
	}
	for _, c := range d.Definitions {
		if c.Type == DiffTypeRemoved {
			d.HasBreakingChanges = true
		}
	}
	d.Summary = summarize(d)
}

func paths(doc *types.Swagger) map[string]*types.PathItem {
	if doc == nil {
		return nil
	}
	return doc.Paths
}

func definitions(doc *types.Swagger) map[string]*types.Schema {
	if doc == nil {
		return nil
	}
	return doc.Definitions
}

func diffPaths(a, b map[string]*types.PathItem, result *DiffResult) {
	all := make(map[string]*types.PathItem, len(a)+len(b))
	for k, v := range a {
		all[k] = v
	}
	for k, v := range b {
		all[k] = v
	}

	for _, path := range SortedPaths(all) {
		aItem, bItem := a[path], b[path]
		for _, method := range types.Methods {
			var aOp, bOp *types.Operation
			if aItem != nil {
				aOp = aItem.Operation(method)
			}
			if bItem != nil {
				bOp = bItem.Operation(method)
			}

			var kind DiffType
			switch {
			case aOp == nil && bOp != nil:
				kind = DiffTypeAdded
			case aOp != nil && bOp == nil:
				kind = DiffTypeRemoved
			case aOp != nil && operationModified(aOp, bOp):
				kind = DiffTypeModified
			default:
				continue
			}

			result.Operations = append(result.Operations, OperationChange{
				Type:        kind,
				Path:        path,
				Method:      method,
				Description: fmt.Sprintf("%s %s %s", describeType(kind), method, path),
			})
		}
	}
}

func diffDefinitions(a, b map[string]*types.Schema, result *DiffResult) {
	all := make(map[string]*types.Schema, len(a)+len(b))
	for k, v := range a {
		all[k] = v
	}
	for k, v := range b {
		all[k] = v
	}

	for _, name := range SortedDefinitions(all) {
		aSchema, inA := a[name]
		bSchema, inB := b[name]

		var kind DiffType
		switch {
		case !inA:
			kind = DiffTypeAdded
		case !inB:
			kind = DiffTypeRemoved
		case schemaModified(aSchema, bSchema):
			kind = DiffTypeModified
		default:
			continue
		}

		result.Definitions = append(result.Definitions, DefinitionChange{
			Type:        kind,
			Name:        name,
			Description: fmt.Sprintf("%s definition: %s", describeType(kind), name),
		})
	}
}

func describeType(t DiffType) string {
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

// operationModified compares the parts of an operation that generation
// controls.
func operationModified(a, b *types.Operation) bool {
	if a.Summary != b.Summary ||
		a.Description != b.Description ||
		a.OperationID != b.OperationID ||
		a.Deprecated != b.Deprecated {
		return true
	}
	if !slices.Equal(a.Tags, b.Tags) || len(a.Responses) != len(b.Responses) {
		return true
	}
	return !slices.EqualFunc(a.Parameters, b.Parameters, func(x, y *types.Parameter) bool {
		if x == nil || y == nil {
			return x == y
		}
		return x.Name == y.Name && x.In == y.In && x.Required == y.Required && x.Type == y.Type
	})
}

// schemaModified compares the shape of two definitions: type, property
// names and the required list.
func schemaModified(a, b *types.Schema) bool {
	if a == nil || b == nil {
		return a != b
	}
	if a.Ref != b.Ref ||
		a.Type != b.Type ||
		a.Format != b.Format ||
		a.Title != b.Title ||
		a.Description != b.Description {
		return true
	}
	if !slices.Equal(a.Properties.Keys(), b.Properties.Keys()) {
		return true
	}
	return !slices.Equal(a.Required, b.Required)
}

func summarize(result *DiffResult) string {
	if result.IsEmpty() {
		return "No changes detected"
	}

	counts := make(map[string]int)
	for _, c := range result.Operations {
		counts["operation(s) "+string(c.Type)]++
	}
	for _, c := range result.Definitions {
		counts["definition(s) "+string(c.Type)]++
	}

	var parts []string
	for _, noun := range []string{"operation(s)", "definition(s)"} {
		for _, kind := range []DiffType{DiffTypeAdded, DiffTypeRemoved, DiffTypeModified} {
			key := noun + " " + string(kind)
			if n := counts[key]; n > 0 {
				parts = append(parts, fmt.Sprintf("%d %s", n, key))
			}
		}
	}

	summary := strings.Join(parts, ", ")
	if result.HasBreakingChanges {
		summary += " [BREAKING CHANGES DETECTED]"
	}
	return summary
}

// FormatDiff renders a diff for terminal output.
func FormatDiff(result *DiffResult) string {
	if result.IsEmpty() {
		return "No differences found."
	}

	var sb strings.Builder
	sb.WriteString("=== Swagger Diff ===\n\n")
	sb.WriteString(result.Summary)
	sb.WriteString("\n\n")

	if len(result.Operations) > 0 {
		sb.WriteString("--- Operation Changes ---\n")
		for _, c := range result.Operations {
			fmt.Fprintf(&sb, "%s%s %s\n", c.Type.symbol(), c.Method, c.Path)
		}
		sb.WriteString("\n")
	}

	if len(result.Definitions) > 0 {
		sb.WriteString("--- Definition Changes ---\n")
		for _, c := range result.Definitions {
			fmt.Fprintf(&sb, "%s%s\n", c.Type.symbol(), c.Name)
		}
	}

	return sb.String()
}
