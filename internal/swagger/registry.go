// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package swagger

import (
	"strconv"
	"strings"

	"github.com/api2spec/webapi2swagger/pkg/types"
)

// definition is a generated definition together with the descriptor it
// was built from.
type definition struct {
	name   string
	schema *types.Schema
	desc   *types.TypeDescriptor
}

// registry turns type descriptors into schemas, emitting a definition for
// every named object type it encounters.
type registry struct {
	meta        *types.Metadata
	definitions []definition
	names       map[string]string // type ID -> definition name
	owners      map[string]string // definition name -> type ID
}

func newRegistry(meta *types.Metadata) *registry {
	return &registry{
		meta:   meta,
		names:  make(map[string]string),
		owners: make(map[string]string),
	}
}

// Resolve implements filters.TypeResolver.
func (r *registry) Resolve(id string) *types.TypeDescriptor {
	return r.meta.Resolve(id)
}

// schemaFor returns the schema for a type ID. Unknown IDs yield an empty
// schema that accepts anything.
func (r *registry) schemaFor(id string) *types.Schema {
	desc := r.meta.Resolve(id)
	if desc == nil {
		return &types.Schema{}
	}
	if desc.IsWrapper() {
		return r.schemaFor(desc.Target)
	}

	switch desc.Shape {
	case types.ShapePrimitive:
		return &types.Schema{Type: desc.Type, Format: desc.Format}
	case types.ShapeArray:
		return &types.Schema{Type: "array", Items: r.schemaFor(desc.Elem)}
	case types.ShapeMap:
		return &types.Schema{Type: "object", AdditionalProperties: r.schemaFor(desc.Elem)}
	case types.ShapeObject:
		if desc.Name == "" || desc.Package == "" {
			schema := &types.Schema{Type: "object"}
			r.fillObject(schema, desc)
			return schema
		}
		return types.DefinitionRef(r.define(desc))
	}
	return &types.Schema{}
}

// define registers the definition for a named object type and returns its
// name. The placeholder is stored before properties are filled so
// self-referencing types terminate.
func (r *registry) define(desc *types.TypeDescriptor) string {
	if name, ok := r.names[desc.ID]; ok {
		return name
	}

	name := r.definitionName(desc)
	schema := &types.Schema{Type: "object"}
	r.names[desc.ID] = name
	r.owners[name] = desc.ID
	r.definitions = append(r.definitions, definition{name: name, schema: schema, desc: desc})

	r.fillObject(schema, desc)
	return name
}

func (r *registry) fillObject(schema *types.Schema, desc *types.TypeDescriptor) {
	props := types.NewProperties()
	for _, m := range desc.Members {
		prop := r.schemaFor(m.Type)
		if member := r.meta.Resolve(m.Type); member != nil && member.Kind == types.KindNullable && prop.Ref == "" {
			prop.Extensions.Set("nullable", true)
		}
		props.Set(m.JSONName, prop)
	}
	if props.Len() > 0 {
		schema.Properties = props
	}
}

// definitionName picks a unique definition name: the sanitized simple
// name, then a package-qualified name, then a numeric suffix.
func (r *registry) definitionName(desc *types.TypeDescriptor) string {
	name := sanitizeDefinitionName(desc.Name)
	if r.available(name, desc.ID) {
		return name
	}

	name = packagePrefix(desc.Package) + name
	if r.available(name, desc.ID) {
		return name
	}

	for i := 2; ; i++ {
		candidate := name + strconv.Itoa(i)
		if r.available(candidate, desc.ID) {
			return candidate
		}
	}
}

func (r *registry) available(name, id string) bool {
	owner, ok := r.owners[name]
	return !ok || owner == id
}

// Definitions returns the generated definitions keyed by name.
func (r *registry) Definitions() map[string]*types.Schema {
	if len(r.definitions) == 0 {
		return nil
	}
	defs := make(map[string]*types.Schema, len(r.definitions))
	for _, d := range r.definitions {
		defs[d.name] = d.schema
	}
	return defs
}

// packagePrefix capitalizes the last segment of a package path:
// "example.com/shop/orders" returns "Orders".
func packagePrefix(pkgPath string) string {
	if i := strings.LastIndexByte(pkgPath, '/'); i >= 0 {
		pkgPath = pkgPath[i+1:]
	}
	if pkgPath == "" {
		return ""
	}
	pkgPath = strings.NewReplacer("-", "_", ".", "_").Replace(pkgPath)
	return strings.ToUpper(pkgPath[:1]) + pkgPath[1:]
}

// sanitizeDefinitionName flattens generic instantiations into a plain
// identifier: "Page[example.com/shop.Item]" returns "PageItem" and
// "Page[[]example.com/shop.Item]" returns "PageItemList". Multiple type
// arguments are concatenated in order.
func sanitizeDefinitionName(name string) string {
	open := strings.IndexByte(name, '[')
	if open < 0 || !strings.HasSuffix(name, "]") {
		return name
	}

	var b strings.Builder
	b.WriteString(name[:open])
	for _, arg := range splitTypeArgs(name[open+1 : len(name)-1]) {
		list := strings.HasPrefix(arg, "[]")
		arg = strings.TrimPrefix(arg, "[]")
		arg = sanitizeDefinitionName(strings.TrimLeft(arg, "*"))
		if dot := strings.LastIndexByte(arg, '.'); dot >= 0 {
			arg = arg[dot+1:]
		}
		b.WriteString(arg)
		if list {
			b.WriteString("List")
		}
	}
	return b.String()
}

// splitTypeArgs splits a type argument list on top-level commas.
func splitTypeArgs(s string) []string {
	var (
		args  []string
		depth int
		start int
	)
	for i, c := range s {
		switch c {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	return append(args, strings.TrimSpace(s[start:]))
}
