// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Properties is an insertion-ordered map of property name to schema.
// Both the JSON and YAML encodings keep the insertion order.
type Properties struct {
	keys   []string
	values map[string]*Schema
}

// NewProperties returns an empty property map.
func NewProperties() *Properties {
	return &Properties{values: make(map[string]*Schema)}
}

// Set adds or replaces a property. Replacing keeps the original position.
func (p *Properties) Set(name string, schema *Schema) {
	if p.values == nil {
		p.values = make(map[string]*Schema)
	}
	if _, ok := p.values[name]; !ok {
		p.keys = append(p.keys, name)
	}
	p.values[name] = schema
}

// Get returns the schema stored for name.
func (p *Properties) Get(name string) (*Schema, bool) {
	if p == nil {
		return nil, false
	}
	s, ok := p.values[name]
	return s, ok
}

// Keys returns the property names in insertion order.
func (p *Properties) Keys() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Len returns the number of properties.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// MarshalJSON encodes the properties as an object in insertion order.
func (p Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(p.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object, remembering the key order of the input.
func (p *Properties) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("properties: expected object, got %v", tok)
	}

	*p = Properties{values: make(map[string]*Schema)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("properties: expected key, got %v", tok)
		}
		var schema Schema
		if err := dec.Decode(&schema); err != nil {
			return fmt.Errorf("properties: %s: %w", key, err)
		}
		p.Set(key, &schema)
	}
	_, err = dec.Token()
	return err
}

// MarshalYAML encodes the properties as a mapping node in insertion order.
func (p Properties) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range p.keys {
		var value yaml.Node
		if err := value.Encode(p.values[k]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&value,
		)
	}
	return node, nil
}

// UnmarshalYAML decodes a mapping node, remembering the key order.
func (p *Properties) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("properties: expected mapping at line %d", value.Line)
	}
	*p = Properties{values: make(map[string]*Schema)}
	for i := 0; i+1 < len(value.Content); i += 2 {
		var schema Schema
		if err := value.Content[i+1].Decode(&schema); err != nil {
			return fmt.Errorf("properties: %s: %w", value.Content[i].Value, err)
		}
		p.Set(value.Content[i].Value, &schema)
	}
	return nil
}
