// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDoc = `{
  "swagger": "2.0",
  "info": {"title": "Shop", "version": "v1"},
  "basePath": "/api",
  "paths": {
    "/orders/{id}": {
      "get": {
        "operationId": "Orders_Get",
        "parameters": [
          {"name": "id", "in": "path", "required": true, "type": "integer", "format": "int64"},
          {"name": "expand", "in": "query", "type": "array", "items": {"type": "string"}, "collectionFormat": "multi"}
        ],
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/Order"}}
        }
      },
      "put": {
        "parameters": [
          {"name": "id", "in": "path", "required": true, "type": "integer"},
          {"name": "order", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Order"}}
        ],
        "responses": {"204": {"description": "No Content"}}
      }
    }
  },
  "definitions": {
    "Order": {
      "type": "object",
      "required": ["id"],
      "properties": {
        "id": {"type": "integer", "format": "int64"},
        "note": {"type": "string", "x-nullable": true}
      }
    }
  },
  "x-generator": "webapi2swagger"
}`

func TestValidate_Valid(t *testing.T) {
	require.NoError(t, Validate([]byte(validDoc)))
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"wrong version", `{"swagger": "3.0", "info": {"title": "t", "version": "v1"}, "paths": {}}`},
		{"missing info", `{"swagger": "2.0", "paths": {}}`},
		{"missing title", `{"swagger": "2.0", "info": {"version": "v1"}, "paths": {}}`},
		{"unknown root field", `{"swagger": "2.0", "info": {"title": "t", "version": "v1"}, "paths": {}, "servers": []}`},
		{"path without slash", `{"swagger": "2.0", "info": {"title": "t", "version": "v1"}, "paths": {"orders": {}}}`},
		{"operation without responses", `{"swagger": "2.0", "info": {"title": "t", "version": "v1"}, "paths": {"/o": {"get": {}}}}`},
		{"trace method", `{"swagger": "2.0", "info": {"title": "t", "version": "v1"}, "paths": {"/o": {"trace": {"responses": {"200": {"description": "OK"}}}}}}`},
		{"optional path parameter", `{"swagger": "2.0", "info": {"title": "t", "version": "v1"}, "paths": {"/o/{id}": {"get": {
			"parameters": [{"name": "id", "in": "path", "type": "string"}],
			"responses": {"200": {"description": "OK"}}}}}}`},
		{"empty required list", `{"swagger": "2.0", "info": {"title": "t", "version": "v1"}, "paths": {},
			"definitions": {"A": {"type": "object", "required": []}}}`},
		{"bad scheme", `{"swagger": "2.0", "info": {"title": "t", "version": "v1"}, "paths": {}, "schemes": ["ftp"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "not valid Swagger 2.0")
		})
	}
}

func TestValidate_Malformed(t *testing.T) {
	err := Validate([]byte(`{"swagger": `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to parse document")
}
