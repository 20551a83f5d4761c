// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package typeinfo

import (
	"database/sql"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/webapi2swagger/pkg/types"
	"github.com/api2spec/webapi2swagger/pkg/webapi"
)

const pkg = "github.com/api2spec/webapi2swagger/internal/typeinfo"

type Base struct {
	CreatedAt time.Time `json:"createdAt"`
}

type Item struct {
	Base
	ID       int                      `json:"id"`
	Name     string                   `json:"name,omitempty"`
	Tag      *int                     `json:"tag"`
	Price    webapi.Nullable[float64] `json:"price"`
	Note     sql.NullString           `json:"note"`
	Labels   []string                 `json:"labels"`
	Attrs    map[string]int           `json:"attrs"`
	Secret   string                   `json:"-"`
	Callback func()
	internal int
	Plain    bool
}

type Audit struct {
	ID    string `json:"id"`
	Owner string `json:"owner"`
}

type Stamp struct {
	Owner string `json:"owner"`
}

type Left struct {
	Code string `json:"Code"`
}

type Right struct {
	Code int
}

type Record struct {
	Audit
	*Stamp
	Left
	Right
	ID int `json:"id"`
}

type Node struct {
	Value    int    `json:"value"`
	Next     *Node  `json:"next"`
	Children []Node `json:"children"`
}

func TestDescribe_Primitives(t *testing.T) {
	tests := []struct {
		name      string
		typ       reflect.Type
		id        string
		kind      types.TypeKind
		shape     types.Shape
		primitive string
		format    string
	}{
		{"bool", reflect.TypeFor[bool](), "bool", types.KindValue, types.ShapePrimitive, "boolean", ""},
		{"int32", reflect.TypeFor[int32](), "int32", types.KindValue, types.ShapePrimitive, "integer", "int32"},
		{"int", reflect.TypeFor[int](), "int", types.KindValue, types.ShapePrimitive, "integer", "int64"},
		{"float32", reflect.TypeFor[float32](), "float32", types.KindValue, types.ShapePrimitive, "number", "float"},
		{"float64", reflect.TypeFor[float64](), "float64", types.KindValue, types.ShapePrimitive, "number", "double"},
		{"string", reflect.TypeFor[string](), "string", types.KindReference, types.ShapePrimitive, "string", ""},
		{"bytes", reflect.TypeFor[[]byte](), "[]uint8", types.KindReference, types.ShapePrimitive, "string", "byte"},
		{"time", reflect.TypeFor[time.Time](), "time.Time", types.KindValue, types.ShapePrimitive, "string", "date-time"},
		{"any", reflect.TypeFor[any](), "interface {}", types.KindReference, types.ShapeAny, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDescriber()
			id := d.Describe(tt.typ)
			desc := d.Types()[id]

			require.NotNil(t, desc)
			assert.Equal(t, tt.id, id)
			assert.Equal(t, tt.kind, desc.Kind)
			assert.Equal(t, tt.shape, desc.Shape)
			assert.Equal(t, tt.primitive, desc.Type)
			assert.Equal(t, tt.format, desc.Format)
		})
	}
}

func TestDescribe_Nullability(t *testing.T) {
	tests := []struct {
		name   string
		typ    reflect.Type
		kind   types.TypeKind
		elem   string
		target string
	}{
		{"pointer to int", reflect.TypeFor[*int](), types.KindNullable, "", "int"},
		{"pointer to struct", reflect.TypeFor[*Item](), types.KindNullable, "", pkg + ".Item"},
		{"pointer to string", reflect.TypeFor[*string](), types.KindReference, "", "string"},
		{"pointer to slice", reflect.TypeFor[*[]int](), types.KindReference, "int", "[]int"},
		{"webapi nullable", reflect.TypeFor[webapi.Nullable[int]](), types.KindNullable, "", "int"},
		{"sql generic null", reflect.TypeFor[sql.Null[int64]](), types.KindNullable, "", "int64"},
		{"sql null int", reflect.TypeFor[sql.NullInt32](), types.KindNullable, "", "int32"},
		{"slice", reflect.TypeFor[[]int](), types.KindReference, "int", ""},
		{"map", reflect.TypeFor[map[string]bool](), types.KindReference, "bool", ""},
		{"array", reflect.TypeFor[[2]int](), types.KindValue, "int", ""},
		{"interface", reflect.TypeFor[error](), types.KindReference, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDescriber()
			desc := d.Types()[d.Describe(tt.typ)]

			require.NotNil(t, desc)
			assert.Equal(t, tt.kind, desc.Kind)
			assert.Equal(t, tt.elem, desc.Elem)
			assert.Equal(t, tt.target, desc.Target)
			assert.Equal(t, tt.target != "", desc.IsWrapper())
		})
	}
}

func TestDescribe_NullableRendersLikeElement(t *testing.T) {
	d := NewDescriber()
	desc := d.Types()[d.Describe(reflect.TypeFor[webapi.Nullable[float64]]())]

	assert.Equal(t, types.ShapePrimitive, desc.Shape)
	assert.Equal(t, "number", desc.Type)
	assert.Equal(t, "double", desc.Format)

	ptr := d.Types()[d.Describe(reflect.TypeFor[*Item]())]
	assert.Equal(t, types.ShapeObject, ptr.Shape)
	assert.Equal(t, "Item", ptr.Name)
}

func TestDescribe_Struct(t *testing.T) {
	d := NewDescriber()
	id := d.Describe(reflect.TypeFor[Item]())
	desc := d.Types()[id]

	require.NotNil(t, desc)
	assert.Equal(t, pkg+".Item", id)
	assert.Equal(t, "Item", desc.Name)
	assert.Equal(t, pkg+".Item", desc.FullName)
	assert.Equal(t, pkg, desc.Package)
	assert.Equal(t, types.KindValue, desc.Kind)
	assert.Equal(t, types.ShapeObject, desc.Shape)

	assert.Equal(t, []types.Member{
		{Name: "CreatedAt", JSONName: "createdAt", Type: "time.Time"},
		{Name: "ID", JSONName: "id", Type: "int"},
		{Name: "Name", JSONName: "name", Type: "string"},
		{Name: "Tag", JSONName: "tag", Type: "*int"},
		{Name: "Price", JSONName: "price", Type: "github.com/api2spec/webapi2swagger/pkg/webapi.Nullable[float64]"},
		{Name: "Note", JSONName: "note", Type: "database/sql.NullString"},
		{Name: "Labels", JSONName: "labels", Type: "[]string"},
		{Name: "Attrs", JSONName: "attrs", Type: "map[string]int"},
		{Name: "Plain", JSONName: "Plain", Type: "bool"},
	}, desc.Members)

	for _, m := range desc.Members {
		assert.Contains(t, d.Types(), m.Type, "member %s type recorded", m.Name)
	}
}

func TestDescribe_EmbeddedShadowing(t *testing.T) {
	d := NewDescriber()
	desc := d.Types()[d.Describe(reflect.TypeFor[Record]())]
	require.NotNil(t, desc)

	assert.Equal(t, []types.Member{
		{Name: "Code", JSONName: "Code", Type: "string"},
		{Name: "ID", JSONName: "id", Type: "int"},
	}, desc.Members)

	id, ok := desc.Member("id")
	require.True(t, ok)
	assert.Equal(t, "int", id.Type)

	_, ok = desc.Member("owner")
	assert.False(t, ok, "equal-depth conflict is dropped")
}

func TestDescribe_Recursive(t *testing.T) {
	d := NewDescriber()
	id := d.Describe(reflect.TypeFor[Node]())

	desc := d.Types()[id]
	require.Len(t, desc.Members, 3)

	next := d.Types()[desc.Members[1].Type]
	require.NotNil(t, next)
	assert.Equal(t, types.KindNullable, next.Kind)
	assert.Equal(t, types.ShapeObject, next.Shape)
	assert.Equal(t, id, next.Target)

	children := d.Types()[desc.Members[2].Type]
	assert.Equal(t, types.ShapeArray, children.Shape)
	assert.Equal(t, id, children.Elem)
}

func TestDescribe_Nil(t *testing.T) {
	d := NewDescriber()
	assert.Equal(t, "", d.Describe(nil))
	assert.Empty(t, d.Types())
}

func TestDescribe_Memoized(t *testing.T) {
	d := NewDescriber()
	first := d.Describe(reflect.TypeFor[Item]())
	count := len(d.Types())

	assert.Equal(t, first, d.Describe(reflect.TypeFor[Item]()))
	assert.Len(t, d.Types(), count)
}

func TestTypeID(t *testing.T) {
	assert.Equal(t, "int", TypeID(reflect.TypeFor[int]()))
	assert.Equal(t, "*"+pkg+".Item", TypeID(reflect.TypeFor[*Item]()))
	assert.Equal(t, "[]"+pkg+".Item", TypeID(reflect.TypeFor[[]Item]()))
	assert.Equal(t, "[3]int", TypeID(reflect.TypeFor[[3]int]()))
	assert.Equal(t, "map[string]"+pkg+".Node", TypeID(reflect.TypeFor[map[string]Node]()))
}
