// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

// TypeKind classifies a type by how absence of a value is represented.
type TypeKind string

const (
	// KindValue types always carry a value (ints, bools, structs).
	KindValue TypeKind = "value"

	// KindReference types can be nil (strings, slices, maps, interfaces).
	KindReference TypeKind = "reference"

	// KindNullable types wrap a value type with explicit absence.
	KindNullable TypeKind = "nullable"
)

// Shape describes how a type is rendered in a schema.
type Shape string

const (
	ShapePrimitive Shape = "primitive"
	ShapeObject    Shape = "object"
	ShapeArray     Shape = "array"
	ShapeMap       Shape = "map"
	ShapeAny       Shape = "any"
)

// TypeDescriptor is a serializable description of a reflected type.
type TypeDescriptor struct {
	// ID uniquely identifies the type within one Metadata
	ID string `json:"id" yaml:"id"`

	// Name is the simple type name
	Name string `json:"name" yaml:"name"`

	// FullName is the package-qualified name (pkgpath.Name)
	FullName string `json:"fullName,omitempty" yaml:"fullName,omitempty"`

	// Package is the package path, empty for builtin and unnamed types
	Package string `json:"package,omitempty" yaml:"package,omitempty"`

	// Kind is the nullability kind
	Kind TypeKind `json:"kind" yaml:"kind"`

	// Shape is the schema shape
	Shape Shape `json:"shape" yaml:"shape"`

	// Type is the primitive Swagger type for primitive shapes
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// Format is the primitive Swagger format
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	// Elem is the element type ID for arrays and the value type ID for maps
	Elem string `json:"elem,omitempty" yaml:"elem,omitempty"`

	// Target is the wrapped type ID for pointers and nullable wrappers.
	// Shape, Type, Format and Elem are copied from the target.
	Target string `json:"target,omitempty" yaml:"target,omitempty"`

	// Members are the exported members of object shapes in declaration order
	Members []Member `json:"members,omitempty" yaml:"members,omitempty"`
}

// Member is an exported instance member of an object type.
type Member struct {
	// Name is the Go field name
	Name string `json:"name" yaml:"name"`

	// JSONName is the serialized name
	JSONName string `json:"jsonName" yaml:"jsonName"`

	// Type is the member's type ID
	Type string `json:"type" yaml:"type"`
}

// Member returns the member whose serialized name is exactly name.
func (d *TypeDescriptor) Member(name string) (Member, bool) {
	if d == nil {
		return Member{}, false
	}
	for _, m := range d.Members {
		if m.JSONName == name {
			return m, true
		}
	}
	return Member{}, false
}

// IsWrapper reports whether the type wraps another (pointers, nullable wrappers).
func (d *TypeDescriptor) IsWrapper() bool {
	return d != nil && d.Target != ""
}

// IsObject reports whether the type renders as a named definition.
func (d *TypeDescriptor) IsObject() bool {
	return d != nil && d.Shape == ShapeObject
}
