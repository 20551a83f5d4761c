// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package swagger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/webapi2swagger/pkg/types"
)

func object(pkg, name string, members ...types.Member) *types.TypeDescriptor {
	return &types.TypeDescriptor{
		ID:       pkg + "." + name,
		Name:     name,
		FullName: pkg + "." + name,
		Package:  pkg,
		Kind:     types.KindValue,
		Shape:    types.ShapeObject,
		Members:  members,
	}
}

func metadataOf(descs ...*types.TypeDescriptor) *types.Metadata {
	meta := &types.Metadata{Types: make(map[string]*types.TypeDescriptor)}
	for _, d := range descs {
		meta.Types[d.ID] = d
	}
	return meta
}

func TestRegistry_DefinitionNameCollisions(t *testing.T) {
	shop := object("example.com/shop", "Item")
	catalog := object("example.com/catalog", "Item")
	legacy := object("example.com/legacy/catalog", "Item")

	reg := newRegistry(metadataOf(shop, catalog, legacy))

	assert.Equal(t, "#/definitions/Item", reg.schemaFor(shop.ID).Ref)
	assert.Equal(t, "#/definitions/CatalogItem", reg.schemaFor(catalog.ID).Ref)
	assert.Equal(t, "#/definitions/CatalogItem2", reg.schemaFor(legacy.ID).Ref)

	// Repeated lookups reuse the assigned name.
	assert.Equal(t, "#/definitions/CatalogItem", reg.schemaFor(catalog.ID).Ref)
	assert.Len(t, reg.Definitions(), 3)
}

func TestRegistry_PrimitiveShapes(t *testing.T) {
	meta := metadataOf(
		&types.TypeDescriptor{ID: "int", Kind: types.KindValue, Shape: types.ShapePrimitive, Type: "integer", Format: "int64"},
		&types.TypeDescriptor{ID: "*int", Kind: types.KindNullable, Shape: types.ShapePrimitive, Type: "integer", Format: "int64", Target: "int"},
		&types.TypeDescriptor{ID: "map[string]int", Kind: types.KindReference, Shape: types.ShapeMap, Elem: "int"},
		&types.TypeDescriptor{ID: "interface {}", Kind: types.KindReference, Shape: types.ShapeAny},
	)
	reg := newRegistry(meta)

	assert.Equal(t, &types.Schema{Type: "integer", Format: "int64"}, reg.schemaFor("int"))
	assert.Equal(t, &types.Schema{Type: "integer", Format: "int64"}, reg.schemaFor("*int"))
	assert.Equal(t, &types.Schema{
		Type:                 "object",
		AdditionalProperties: &types.Schema{Type: "integer", Format: "int64"},
	}, reg.schemaFor("map[string]int"))
	assert.Equal(t, &types.Schema{}, reg.schemaFor("interface {}"))
	assert.Equal(t, &types.Schema{}, reg.schemaFor("unknown"))
	assert.Nil(t, reg.Definitions())
}

func TestRegistry_AnonymousStructIsInlined(t *testing.T) {
	anon := &types.TypeDescriptor{
		ID:      "struct { Count int }",
		Kind:    types.KindValue,
		Shape:   types.ShapeObject,
		Members: []types.Member{{Name: "Count", JSONName: "count", Type: "int"}},
	}
	meta := metadataOf(anon,
		&types.TypeDescriptor{ID: "int", Kind: types.KindValue, Shape: types.ShapePrimitive, Type: "integer", Format: "int64"},
	)
	reg := newRegistry(meta)

	schema := reg.schemaFor(anon.ID)
	assert.Empty(t, schema.Ref)
	assert.Equal(t, "object", schema.Type)
	assert.Equal(t, []string{"count"}, schema.Properties.Keys())
	assert.Nil(t, reg.Definitions())
}

func TestRegistry_SelfReference(t *testing.T) {
	node := object("example.com/tree", "Node", types.Member{Name: "Next", JSONName: "next", Type: "*example.com/tree.Node"})
	ptr := &types.TypeDescriptor{
		ID:     "*example.com/tree.Node",
		Name:   "Node",
		Kind:   types.KindNullable,
		Shape:  types.ShapeObject,
		Target: node.ID,
	}
	reg := newRegistry(metadataOf(node, ptr))

	assert.Equal(t, "#/definitions/Node", reg.schemaFor(ptr.ID).Ref)

	defs := reg.Definitions()
	require.Contains(t, defs, "Node")
	next, ok := defs["Node"].Properties.Get("next")
	require.True(t, ok)
	assert.Equal(t, "#/definitions/Node", next.Ref)
}

func TestSanitizeDefinitionName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"User", "User"},
		{"Page[example.com/shop.Item]", "PageItem"},
		{"Page[[]example.com/shop.Item]", "PageItemList"},
		{"Page[*example.com/shop.Item]", "PageItem"},
		{"Pair[string,int]", "Pairstringint"},
		{"Page[example.com/shop.Pair[string,example.com/shop.Item]]", "PagePairstringItem"},
		{"Result[int]", "Resultint"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeDefinitionName(tt.input))
		})
	}
}

func TestPackagePrefix(t *testing.T) {
	assert.Equal(t, "Catalog", packagePrefix("example.com/catalog"))
	assert.Equal(t, "My_pkg", packagePrefix("example.com/my-pkg"))
	assert.Equal(t, "Shop", packagePrefix("shop"))
	assert.Equal(t, "", packagePrefix(""))
}
