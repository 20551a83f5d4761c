// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/webapi2swagger/internal/extract"
	"github.com/api2spec/webapi2swagger/internal/isolate"
	"github.com/api2spec/webapi2swagger/internal/swagger"
	"github.com/api2spec/webapi2swagger/pkg/types"
)

func TestGenerate_MissingArguments(t *testing.T) {
	t.Chdir(t.TempDir())
	ex := &fakeExtractor{meta: ordersMetadata()}
	useExtractor(t, ex)

	output, err := executeCommand()
	require.Error(t, err)

	assert.Contains(t, err.Error(), "--assembly")
	assert.Contains(t, output, "Usage:")
	assert.Empty(t, ex.paths)
	assert.NoFileExists(t, "swagger.json")

	output, err = executeCommand("-a", "orders.so")
	require.Error(t, err)

	assert.Contains(t, err.Error(), "--output")
	assert.NotContains(t, err.Error(), "--assembly")
	assert.Contains(t, output, "Usage:")
	assert.Empty(t, ex.paths)
	assert.NoFileExists(t, "swagger.json")
}

func TestGenerate_RejectsArguments(t *testing.T) {
	_, err := executeCommand("orders.so")
	assert.Error(t, err)
}

func TestGenerate_WritesDocument(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	ex := &fakeExtractor{meta: ordersMetadata()}
	useExtractor(t, ex)

	output, err := executeCommand("-a", "bin/orders.so", "-o", "out/swagger.json", "--validate")
	require.NoError(t, err)
	assert.Contains(t, output, "Wrote out/swagger.json")
	assert.Equal(t, []string{"bin/orders.so"}, ex.paths)

	doc, err := swagger.ReadFile(filepath.Join(dir, "out", "swagger.json"))
	require.NoError(t, err)

	assert.Equal(t, "2.0", doc.Swagger)
	assert.Equal(t, "orders", doc.Info.Title)
	assert.Equal(t, "v1", doc.Info.Version)

	require.Contains(t, doc.Paths, "/orders/{id}")
	get := doc.Paths["/orders/{id}"].Get
	require.NotNil(t, get)
	assert.Equal(t, "Orders_Get", get.OperationID)
	require.Len(t, get.Parameters, 1)
	assert.True(t, get.Parameters[0].Required)

	require.Contains(t, doc.Definitions, "Order")
	order := doc.Definitions["Order"]
	assert.Equal(t, []string{"number"}, order.Required)
	assert.Equal(t, []string{"number", "note", "discount"}, order.Properties.Keys())
}

func TestGenerate_TitleVersionAndYAML(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	useExtractor(t, &fakeExtractor{meta: ordersMetadata()})

	_, err := executeCommand("-a", "orders.so", "-o", "api.yaml", "-t", "Shop", "-v", "2.0", "-q")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "api.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `swagger: "2.0"`)

	doc, err := swagger.ReadFile(filepath.Join(dir, "api.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Shop", doc.Info.Title)
	assert.Equal(t, "2.0", doc.Info.Version)
}

func TestGenerate_FromConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	ex := &fakeExtractor{meta: ordersMetadata()}
	useExtractor(t, ex)

	configContent := `assembly: bin/orders.so
output: docs/orders.json
swagger:
  info:
    title: Orders
  basePath: /api
`
	require.NoError(t, os.WriteFile("webapi2swagger.yaml", []byte(configContent), 0o644))

	_, err := executeCommand()
	require.NoError(t, err)
	assert.Equal(t, []string{"bin/orders.so"}, ex.paths)

	doc, err := swagger.ReadFile(filepath.Join(dir, "docs", "orders.json"))
	require.NoError(t, err)
	assert.Equal(t, "Orders", doc.Info.Title)
	assert.Equal(t, "/api", doc.BasePath)
}

func TestGenerate_ExtractionFailure(t *testing.T) {
	t.Chdir(t.TempDir())
	useExtractor(t, &fakeExtractor{err: &extract.Error{Kind: extract.ErrConfigurationMissing, Module: "orders"}})

	_, err := executeCommand("-a", "orders.so", "-o", "swagger.json")
	require.Error(t, err)

	assert.True(t, errors.Is(err, extract.ErrConfigurationMissing))
	assert.NoFileExists(t, "swagger.json")
}

func TestGenerate_InvalidConfiguration(t *testing.T) {
	t.Chdir(t.TempDir())
	useExtractor(t, &fakeExtractor{meta: ordersMetadata()})

	_, err := executeCommand("-a", "orders.so", "-o", "swagger.json", "-f", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestGenerate_Merge(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	useExtractor(t, &fakeExtractor{meta: ordersMetadata()})

	_, err := executeCommand("-a", "orders.so", "-o", "swagger.json", "-q")
	require.NoError(t, err)

	doc, err := swagger.ReadFile("swagger.json")
	require.NoError(t, err)
	doc.Info.Description = "Hand written"
	doc.Paths["/orders/{id}"].Get.Description = "Looks an order up."
	require.NoError(t, swagger.NewWriter().WriteFile(doc, "swagger.json", ""))

	_, err = executeCommand("-a", "orders.so", "-o", "swagger.json", "--merge", "-q")
	require.NoError(t, err)

	merged, err := swagger.ReadFile("swagger.json")
	require.NoError(t, err)
	assert.Equal(t, "Hand written", merged.Info.Description)
	assert.Equal(t, "Looks an order up.", merged.Paths["/orders/{id}"].Get.Description)
}

func TestPrintCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	useExtractor(t, &fakeExtractor{meta: ordersMetadata()})

	stdout, _, err := executeSplit("print", "-a", "orders.so", "-q")
	require.NoError(t, err)

	doc, err := swagger.Parse([]byte(stdout), ".json")
	require.NoError(t, err)
	assert.Contains(t, doc.Paths, "/orders")
	assert.NoFileExists(t, "swagger.json")
}

func TestPrintCommand_VerboseKeepsStdoutClean(t *testing.T) {
	t.Chdir(t.TempDir())
	useExtractor(t, &fakeExtractor{meta: ordersMetadata()})

	stdout, stderr, err := executeSplit("print", "-a", "orders.so", "--verbose")
	require.NoError(t, err)

	doc, err := swagger.Parse([]byte(stdout), ".json")
	require.NoError(t, err)
	assert.Contains(t, doc.Paths, "/orders")
	assert.NotContains(t, stdout, "Configuration:")
	assert.Contains(t, stderr, "Configuration:")
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	useExtractor(t, &fakeExtractor{meta: ordersMetadata()})

	_, err := executeCommand("check", "-a", "orders.so", "-o", "swagger.json", "--ci")
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, ExitCodeDifference, exitErr.Code)

	_, err = executeCommand("-a", "orders.so", "-o", "swagger.json", "-q")
	require.NoError(t, err)

	output, err := executeCommand("check", "-a", "orders.so", "-o", "swagger.json", "--ci")
	require.NoError(t, err)
	assert.Contains(t, output, "in sync")

	doc, err := swagger.ReadFile("swagger.json")
	require.NoError(t, err)
	doc.Paths["/legacy"] = &types.PathItem{Get: &types.Operation{
		OperationID: "Legacy_Get",
		Responses:   map[string]*types.Response{"200": {Description: "OK"}},
	}}
	require.NoError(t, swagger.NewWriter().WriteFile(doc, "swagger.json", ""))

	output, err = executeCommand("check", "-a", "orders.so", "-o", "swagger.json", "--ci")
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, ExitCodeDifference, exitErr.Code)
	assert.Contains(t, output, "- GET /legacy")
	assert.Contains(t, output, "Breaking changes detected")

	_, err = executeCommand("check", "-a", "orders.so", "-o", "swagger.json", "--ci", "--ignore", "/legacy")
	assert.NoError(t, err)

	_, err = executeCommand("check", "-a", "orders.so", "-o", "swagger.json", "--strict=false")
	assert.NoError(t, err)
}

func TestCheckCommand_ExtractionErrorInCI(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("swagger.json", []byte(`{"swagger": "2.0", "info": {"title": "t", "version": "v1"}, "paths": {}}`), 0o644))
	useExtractor(t, &fakeExtractor{err: errors.New("worker crashed")})

	_, err := executeCommand("check", "-a", "orders.so", "-o", "swagger.json", "--ci")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, ExitCodeCheckError, exitErr.Code)
	assert.Contains(t, exitErr.Error(), "worker crashed")
}

func TestDiffCommand(t *testing.T) {
	dir := t.TempDir()
	writer := swagger.NewWriter()
	ok := map[string]*types.Response{"200": {Description: "OK"}}

	oldDoc := &types.Swagger{
		Swagger: types.SwaggerVersion,
		Info:    types.Info{Title: "API", Version: "v1"},
		Paths:   map[string]*types.PathItem{"/users": {Get: &types.Operation{OperationID: "Users_List", Responses: ok}}},
	}
	newDoc := &types.Swagger{
		Swagger: types.SwaggerVersion,
		Info:    types.Info{Title: "API", Version: "v1"},
		Paths: map[string]*types.PathItem{"/users": {
			Get:  &types.Operation{OperationID: "Users_List", Responses: ok},
			Post: &types.Operation{OperationID: "Users_Create", Responses: ok},
		}},
	}
	oldPath := filepath.Join(dir, "old.json")
	newPath := filepath.Join(dir, "new.yaml")
	require.NoError(t, writer.WriteFile(oldDoc, oldPath, ""))
	require.NoError(t, writer.WriteFile(newDoc, newPath, ""))

	output, err := executeCommand("diff", oldPath, newPath)
	require.NoError(t, err)
	assert.Contains(t, output, "+ POST /users")

	_, err = executeCommand("diff", "--fail-on-breaking", newPath, oldPath)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, ExitCodeDifference, exitErr.Code)

	_, err = executeCommand("diff", oldPath)
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		wantErr bool
	}{
		{
			name:    "valid json",
			file:    "ok.json",
			content: `{"swagger": "2.0", "info": {"title": "t", "version": "v1"}, "paths": {}}`,
		},
		{
			name:    "valid yaml",
			file:    "ok.yaml",
			content: "swagger: \"2.0\"\ninfo:\n  title: t\n  version: v1\npaths: {}\n",
		},
		{
			name:    "invalid yaml",
			file:    "bad.yaml",
			content: "swagger: \"2.0\"\npaths: {}\nservers: []\n",
			wantErr: true,
		},
		{
			name:    "invalid json",
			file:    "bad.json",
			content: `{"swagger": "3.0", "info": {"title": "t", "version": "v1"}, "paths": {}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			output, err := executeCommand("validate", path)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "not valid Swagger 2.0")
				return
			}
			require.NoError(t, err)
			assert.Contains(t, output, "is valid Swagger 2.0")
		})
	}
}

func TestExtractCommand_WritesEnvelope(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.so")

	stdout, _, err := executeSplit(isolate.WorkerCommand, "--assembly", missing, "--session", "test-session")
	require.NoError(t, err)

	envelope, err := isolate.ReadEnvelope([]byte(stdout))
	require.NoError(t, err)

	_, err = envelope.Result()
	require.Error(t, err)
	assert.True(t, errors.Is(err, extract.ErrModuleLoad))
}

func TestExtractCommand_RequiresAssembly(t *testing.T) {
	_, err := executeCommand(isolate.WorkerCommand)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--assembly")
}

func TestMatchesAnyPattern(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		patterns []string
		expected bool
	}{
		{
			name:     "exact match",
			s:        "/api/users",
			patterns: []string{"/api/users"},
			expected: true,
		},
		{
			name:     "single segment wildcard",
			s:        "/api/users",
			patterns: []string{"/api/*"},
			expected: true,
		},
		{
			name:     "wildcard does not cross segments",
			s:        "/api/users/{id}",
			patterns: []string{"/api/*"},
			expected: false,
		},
		{
			name:     "double star crosses segments",
			s:        "/api/users/{id}",
			patterns: []string{"/api/**"},
			expected: true,
		},
		{
			name:     "definition prefix",
			s:        "LegacyOrder",
			patterns: []string{"Legacy*"},
			expected: true,
		},
		{
			name:     "no match",
			s:        "/health",
			patterns: []string{"/api/**", "Legacy*"},
			expected: false,
		},
		{
			name:     "no patterns",
			s:        "/health",
			patterns: nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, matchesAnyPattern(tt.s, tt.patterns))
		})
	}
}
