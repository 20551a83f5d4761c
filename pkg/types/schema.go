// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

import (
	json "github.com/goccy/go-json"
)

// Schema represents a Swagger 2.0 schema object (a JSON Schema draft 4 subset).
type Schema struct {
	// Ref is a reference to another schema ($ref)
	Ref string `json:"$ref,omitempty" yaml:"$ref,omitempty"`

	// Type is the data type (string, number, integer, boolean, array, object)
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// Format is the data format (int32, int64, date-time, byte, ...)
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	// Title is a short title for the schema
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Description is a detailed description of the schema
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Default is the default value
	Default any `json:"default,omitempty" yaml:"default,omitempty"`

	// Enum is a list of allowed values
	Enum []any `json:"enum,omitempty" yaml:"enum,omitempty"`

	// Required is a list of required property names
	Required []string `json:"required,omitempty" yaml:"required,omitempty"`

	// Items is the schema for array items
	Items *Schema `json:"items,omitempty" yaml:"items,omitempty"`

	// Properties maps property names to their schemas, in declaration order
	Properties *Properties `json:"properties,omitempty" yaml:"properties,omitempty"`

	// AdditionalProperties defines the schema for map values
	AdditionalProperties *Schema `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`

	// ReadOnly indicates the value is read-only
	ReadOnly bool `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`

	// Example is an example value
	Example any `json:"example,omitempty" yaml:"example,omitempty"`

	// Extensions holds x- prefixed vendor extensions (e.g. x-nullable)
	Extensions Extensions `json:"-" yaml:",inline"`
}

type schemaAlias Schema

// MarshalJSON flattens Extensions into the schema object.
func (s Schema) MarshalJSON() ([]byte, error) {
	return marshalWithExtensions(schemaAlias(s), s.Extensions)
}

// UnmarshalJSON collects x- keys into Extensions.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var alias schemaAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*s = Schema(alias)
	return unmarshalExtensions(data, &s.Extensions)
}

// DefinitionRef creates a reference to a schema in definitions.
func DefinitionRef(id string) *Schema {
	return &Schema{
		Ref: "#/definitions/" + id,
	}
}
