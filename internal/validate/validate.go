// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package validate checks documents against the Swagger 2.0 JSON schema.
package validate

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "swagger-2.0.json"

//go:embed swagger-2.0.json
var schemaBytes []byte

var compiled = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to parse Swagger 2.0 schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.DefaultDraft(jsonschema.Draft4)
	if err := compiler.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("failed to load Swagger 2.0 schema: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// Validate checks a JSON-encoded document. The returned error lists every
// violation found.
func Validate(document []byte) error {
	schema, err := compiled()
	if err != nil {
		return err
	}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(document))
	if err != nil {
		return fmt.Errorf("unable to parse document: %w", err)
	}

	if err := schema.Validate(instance); err != nil {
		return fmt.Errorf("document is not valid Swagger 2.0: %w", err)
	}
	return nil
}
