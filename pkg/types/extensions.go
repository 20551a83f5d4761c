// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

import (
	"bytes"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
)

// ExtensionPrefix marks a key as a vendor extension.
const ExtensionPrefix = "x-"

// Extensions holds vendor extension fields. On output every key is written
// with the x- prefix directly into the owning object.
type Extensions map[string]any

// Set stores a value, adding the x- prefix when the key lacks it.
func (e *Extensions) Set(key string, value any) {
	if *e == nil {
		*e = make(Extensions)
	}
	(*e)[ExtensionKey(key)] = value
}

// Get returns the value stored under key (with or without prefix).
func (e Extensions) Get(key string) (any, bool) {
	v, ok := e[ExtensionKey(key)]
	return v, ok
}

// ExtensionKey normalizes key to carry the lower-case x- prefix. An
// upper-case X- prefix is rewritten rather than doubled.
func ExtensionKey(key string) string {
	switch {
	case strings.HasPrefix(key, ExtensionPrefix):
		return key
	case strings.HasPrefix(key, "X-"):
		return ExtensionPrefix + key[len(ExtensionPrefix):]
	}
	return ExtensionPrefix + key
}

// marshalWithExtensions encodes v and splices the extension pairs in before
// the closing brace, keeping the struct field order intact.
func marshalWithExtensions(v any, ext Extensions) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(ext) == 0 {
		return data, nil
	}

	keys := make([]string, 0, len(ext))
	for k := range ext {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(data[:len(data)-1])
	needComma := !bytes.Equal(bytes.TrimSpace(data), []byte("{}"))
	for _, k := range keys {
		if ext[k] == nil {
			continue
		}
		value, err := json.Marshal(ext[k])
		if err != nil {
			return nil, err
		}
		name, err := json.Marshal(ExtensionKey(k))
		if err != nil {
			return nil, err
		}
		if needComma {
			buf.WriteByte(',')
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
		needComma = true
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// unmarshalExtensions picks the x- keys out of a raw JSON object.
func unmarshalExtensions(data []byte, ext *Extensions) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k, v := range raw {
		if !strings.HasPrefix(strings.ToLower(k), ExtensionPrefix) {
			continue
		}
		var value any
		if err := json.Unmarshal(v, &value); err != nil {
			return err
		}
		ext.Set(k, value)
	}
	return nil
}
