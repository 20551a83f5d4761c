// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package typeinfo turns reflected Go types into serializable type
// descriptors.
package typeinfo

import (
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/api2spec/webapi2swagger/pkg/types"
	"github.com/api2spec/webapi2swagger/pkg/webapi"
)

var (
	timeType          = reflect.TypeFor[time.Time]()
	nullableValueType = reflect.TypeFor[webapi.NullableValue]()
)

// Describer records descriptors for every type it is asked about and
// every type reachable from those.
type Describer struct {
	descriptors map[string]*types.TypeDescriptor
	ids         map[reflect.Type]string
}

// NewDescriber creates an empty describer.
func NewDescriber() *Describer {
	return &Describer{
		descriptors: make(map[string]*types.TypeDescriptor),
		ids:         make(map[reflect.Type]string),
	}
}

// Types returns the recorded descriptors keyed by ID.
func (d *Describer) Types() map[string]*types.TypeDescriptor {
	return d.descriptors
}

// Describe records t and returns its ID. A nil type yields "".
func (d *Describer) Describe(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if id, ok := d.ids[t]; ok {
		return id
	}

	id := TypeID(t)
	desc := &types.TypeDescriptor{
		ID:      id,
		Name:    t.Name(),
		Package: t.PkgPath(),
	}
	if t.Name() != "" && t.PkgPath() != "" {
		desc.FullName = t.PkgPath() + "." + t.Name()
	}

	// Register before filling so recursive types terminate.
	d.ids[t] = id
	d.descriptors[id] = desc
	d.fill(desc, t)
	return id
}

func (d *Describer) fill(desc *types.TypeDescriptor, t reflect.Type) {
	if inner, ok := nullableElem(t); ok {
		d.wrap(desc, t, d.Describe(inner), types.KindNullable)
		return
	}

	if t == timeType {
		desc.Kind = types.KindValue
		desc.Shape = types.ShapePrimitive
		desc.Type, desc.Format = "string", "date-time"
		return
	}

	switch t.Kind() {
	case reflect.Pointer:
		elem := d.Describe(t.Elem())
		kind := types.KindReference
		if d.descriptors[elem].Kind == types.KindValue {
			kind = types.KindNullable
		}
		d.wrap(desc, t, elem, kind)

	case reflect.Bool:
		desc.Kind, desc.Shape, desc.Type = types.KindValue, types.ShapePrimitive, "boolean"

	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Uint8, reflect.Uint16:
		desc.Kind, desc.Shape = types.KindValue, types.ShapePrimitive
		desc.Type, desc.Format = "integer", "int32"

	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		desc.Kind, desc.Shape = types.KindValue, types.ShapePrimitive
		desc.Type, desc.Format = "integer", "int64"

	case reflect.Float32:
		desc.Kind, desc.Shape = types.KindValue, types.ShapePrimitive
		desc.Type, desc.Format = "number", "float"

	case reflect.Float64:
		desc.Kind, desc.Shape = types.KindValue, types.ShapePrimitive
		desc.Type, desc.Format = "number", "double"

	case reflect.Complex64, reflect.Complex128:
		desc.Kind, desc.Shape, desc.Type = types.KindValue, types.ShapePrimitive, "string"

	case reflect.String:
		desc.Kind, desc.Shape, desc.Type = types.KindReference, types.ShapePrimitive, "string"

	case reflect.Slice:
		desc.Kind = types.KindReference
		if t.Elem().Kind() == reflect.Uint8 {
			desc.Shape, desc.Type, desc.Format = types.ShapePrimitive, "string", "byte"
			return
		}
		desc.Shape = types.ShapeArray
		desc.Elem = d.Describe(t.Elem())

	case reflect.Array:
		desc.Kind, desc.Shape = types.KindValue, types.ShapeArray
		desc.Elem = d.Describe(t.Elem())

	case reflect.Map:
		desc.Kind, desc.Shape = types.KindReference, types.ShapeMap
		desc.Elem = d.Describe(t.Elem())

	case reflect.Struct:
		desc.Kind, desc.Shape = types.KindValue, types.ShapeObject
		desc.Members = d.members(t)

	default:
		// Interfaces, funcs, chans and unsafe pointers.
		desc.Kind, desc.Shape = types.KindReference, types.ShapeAny
	}
}

// wrap makes desc render like the wrapped type with the given kind.
func (d *Describer) wrap(desc *types.TypeDescriptor, t reflect.Type, target string, kind types.TypeKind) {
	inner := d.descriptors[target]
	desc.Kind = kind
	desc.Target = target
	desc.Elem = inner.Elem
	desc.Shape = inner.Shape
	desc.Type = inner.Type
	desc.Format = inner.Format
	if t.Name() == "" {
		desc.Name = inner.Name
	}
}

// field is a candidate member found while walking a struct and the
// structs embedded in it.
type field struct {
	sf     reflect.StructField
	name   string
	depth  int
	tagged bool
}

// members collects exported fields the way encoding/json sees them,
// inlining untagged embedded structs. When several fields share a JSON
// name the shallowest wins; at equal depth a single tagged field wins,
// otherwise the name is dropped.
func (d *Describer) members(t reflect.Type) []types.Member {
	fields := collectFields(t, 0, nil)

	byName := make(map[string][]field, len(fields))
	for _, f := range fields {
		byName[f.name] = append(byName[f.name], f)
	}

	var members []types.Member
	for _, f := range fields {
		winner, ok := dominantField(byName[f.name])
		if !ok || !slices.Equal(winner.sf.Index, f.sf.Index) {
			continue
		}
		members = append(members, types.Member{
			Name:     f.sf.Name,
			JSONName: f.name,
			Type:     d.Describe(f.sf.Type),
		})
	}
	return members
}

func collectFields(t reflect.Type, depth int, seen []reflect.Type) []field {
	for _, s := range seen {
		if s == t {
			return nil
		}
	}
	seen = append(seen, t)

	var fields []field
	for i := range t.NumField() {
		sf := t.Field(i)
		tag := sf.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")

		if sf.Anonymous && name == "" {
			ft := sf.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				for _, inner := range collectFields(ft, depth+1, seen) {
					inner.sf.Index = append([]int{i}, inner.sf.Index...)
					fields = append(fields, inner)
				}
				continue
			}
		}

		if !sf.IsExported() {
			continue
		}
		switch sf.Type.Kind() {
		case reflect.Func, reflect.Chan, reflect.UnsafePointer:
			continue
		}

		tagged := name != ""
		if !tagged {
			name = sf.Name
		}
		fields = append(fields, field{sf: sf, name: name, depth: depth, tagged: tagged})
	}
	return fields
}

// dominantField picks the field encoding/json would serialize among
// fields sharing one name.
func dominantField(fields []field) (field, bool) {
	minDepth := fields[0].depth
	for _, f := range fields[1:] {
		minDepth = min(minDepth, f.depth)
	}

	var shallow []field
	for _, f := range fields {
		if f.depth == minDepth {
			shallow = append(shallow, f)
		}
	}
	if len(shallow) == 1 {
		return shallow[0], true
	}

	var tagged []field
	for _, f := range shallow {
		if f.tagged {
			tagged = append(tagged, f)
		}
	}
	if len(tagged) == 1 {
		return tagged[0], true
	}
	return field{}, false
}

// nullableElem reports the wrapped type of a nullable value wrapper:
// webapi.Nullable[T], sql.Null[T] and the sql.NullXxx family.
func nullableElem(t reflect.Type) (reflect.Type, bool) {
	if t.Kind() != reflect.Struct {
		return nil, false
	}
	if t.Implements(nullableValueType) {
		v := reflect.Zero(t).Interface().(webapi.NullableValue)
		return v.NullableType(), true
	}
	if t.PkgPath() == "database/sql" && strings.HasPrefix(t.Name(), "Null") && t.NumField() == 2 {
		if valid, ok := t.FieldByName("Valid"); ok && valid.Type.Kind() == reflect.Bool {
			return t.Field(0).Type, true
		}
	}
	return nil, false
}

// TypeID returns a stable identifier for t: the package-qualified name for
// named types, composed from element IDs otherwise.
func TypeID(t reflect.Type) string {
	if t.Name() != "" {
		if t.PkgPath() != "" {
			return t.PkgPath() + "." + t.Name()
		}
		return t.Name()
	}
	switch t.Kind() {
	case reflect.Pointer:
		return "*" + TypeID(t.Elem())
	case reflect.Slice:
		return "[]" + TypeID(t.Elem())
	case reflect.Array:
		return "[" + strconv.Itoa(t.Len()) + "]" + TypeID(t.Elem())
	case reflect.Map:
		return "map[" + TypeID(t.Key()) + "]" + TypeID(t.Elem())
	}
	return t.String()
}
