// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package filters

import (
	"github.com/api2spec/webapi2swagger/pkg/types"
)

// RequiredSchemaFilter rebuilds a schema's required list from the
// nullability of the members of its originating type.
type RequiredSchemaFilter struct{}

// Apply replaces schema.Required. Properties are matched to members by
// exact serialized name; properties without a member are left out.
func (RequiredSchemaFilter) Apply(schema *types.Schema, desc *types.TypeDescriptor, resolver TypeResolver) {
	if schema == nil {
		return
	}

	var required []string
	for _, name := range schema.Properties.Keys() {
		member, ok := desc.Member(name)
		if !ok {
			continue
		}
		if IsRequired(resolve(resolver, member.Type)) {
			required = append(required, name)
		}
	}

	// Swagger 2.0 rejects an empty required array.
	schema.Required = required
}
