// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package swagger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/api2spec/webapi2swagger/pkg/types"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Writer serializes Swagger documents.
type Writer struct {
	// Indent is the number of spaces per indentation level (default: 2)
	Indent int
}

// NewWriter creates a Writer with default settings.
func NewWriter() *Writer {
	return &Writer{
		Indent: 2,
	}
}

// Marshal serializes doc in the given format.
func (w *Writer) Marshal(doc *types.Swagger, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatJSON, "":
		data, err := json.MarshalIndent(doc, "", strings.Repeat(" ", w.Indent))
		if err != nil {
			return nil, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML, "yml":
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(w.Indent)
		if err := encoder.Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteJSON writes doc as indented JSON.
func (w *Writer) WriteJSON(doc *types.Swagger, out io.Writer) error {
	return w.write(doc, FormatJSON, out)
}

// WriteYAML writes doc as YAML.
func (w *Writer) WriteYAML(doc *types.Swagger, out io.Writer) error {
	return w.write(doc, FormatYAML, out)
}

func (w *Writer) write(doc *types.Swagger, format string, out io.Writer) error {
	data, err := w.Marshal(doc, format)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

// WriteFile serializes doc completely and then writes it to path in one
// step, so a failed run never leaves a partial file behind. An empty
// format is inferred from the file extension.
func (w *Writer) WriteFile(doc *types.Swagger, path string, format string) error {
	if format == "" {
		format = FormatFromPath(path)
	}

	data, err := w.Marshal(doc, format)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// ToJSON returns the JSON representation of doc.
func (w *Writer) ToJSON(doc *types.Swagger) (string, error) {
	data, err := w.Marshal(doc, FormatJSON)
	return string(data), err
}

// ToYAML returns the YAML representation of doc.
func (w *Writer) ToYAML(doc *types.Swagger) (string, error) {
	data, err := w.Marshal(doc, FormatYAML)
	return string(data), err
}

// FormatFromPath infers the output format from a file extension,
// defaulting to JSON.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ReadFile reads a Swagger document. The format is inferred from the file
// extension; unknown extensions are tried as JSON and then YAML.
func ReadFile(path string) (*types.Swagger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(data, strings.ToLower(filepath.Ext(path)))
}

// Parse decodes a Swagger document. ext selects the decoder (".json",
// ".yaml", ".yml"); any other value tries JSON first, then YAML.
func Parse(data []byte, ext string) (*types.Swagger, error) {
	var doc types.Swagger
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			doc = types.Swagger{}
			if err := yaml.Unmarshal(data, &doc); err != nil {
				return nil, fmt.Errorf("failed to parse file as JSON or YAML")
			}
		}
	}
	return &doc, nil
}
