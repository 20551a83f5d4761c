// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package webapi

import (
	"bytes"
	"reflect"

	json "github.com/goccy/go-json"
)

// NullableValue is implemented by wrappers that add explicit absence to a
// value type.
type NullableValue interface {
	// NullableType returns the wrapped value type.
	NullableType() reflect.Type
}

// Nullable is a value of type T that may be absent. The zero value is null.
type Nullable[T any] struct {
	Value T
	Valid bool
}

// Some returns a present Nullable holding v.
func Some[T any](v T) Nullable[T] {
	return Nullable[T]{Value: v, Valid: true}
}

// Null returns an absent Nullable.
func Null[T any]() Nullable[T] {
	return Nullable[T]{}
}

// Get returns the value and whether it is present.
func (n Nullable[T]) Get() (T, bool) {
	return n.Value, n.Valid
}

// NullableType implements NullableValue.
func (Nullable[T]) NullableType() reflect.Type {
	return reflect.TypeFor[T]()
}

// MarshalJSON encodes null when the value is absent.
func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// UnmarshalJSON decodes null as absent.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*n = Nullable[T]{}
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}
