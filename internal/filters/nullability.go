// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package filters infers Swagger "required" flags from the nullability of
// the reflected Go types behind schemas and operation parameters.
package filters

import (
	"github.com/api2spec/webapi2swagger/pkg/types"
)

// Nullability is the result of classifying a type.
type Nullability int

const (
	// Optional types may be absent: references and nullable wrappers.
	Optional Nullability = iota

	// Required types always carry a value.
	Required
)

// String returns the lowercase name of the classification.
func (n Nullability) String() string {
	if n == Required {
		return "required"
	}
	return "optional"
}

// Classify decides whether a value of the described type must be present.
// A nil descriptor is treated as optional.
func Classify(desc *types.TypeDescriptor) Nullability {
	if desc == nil {
		return Optional
	}
	switch desc.Kind {
	case types.KindValue:
		return Required
	default:
		return Optional
	}
}

// IsRequired reports whether Classify returns Required.
func IsRequired(desc *types.TypeDescriptor) bool {
	return Classify(desc) == Required
}

// TypeResolver resolves a type ID to its descriptor.
type TypeResolver interface {
	Resolve(id string) *types.TypeDescriptor
}

// SchemaFilter post-processes a generated definition.
type SchemaFilter interface {
	Apply(schema *types.Schema, desc *types.TypeDescriptor, resolver TypeResolver)
}

// OperationFilter post-processes a generated operation.
type OperationFilter interface {
	Apply(op *types.Operation, route *types.Route, resolver TypeResolver)
}

func resolve(resolver TypeResolver, id string) *types.TypeDescriptor {
	if resolver == nil {
		return nil
	}
	return resolver.Resolve(id)
}
