// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package filters

import (
	"strings"

	"github.com/api2spec/webapi2swagger/pkg/types"
)

// RequiredOperationFilter marks parameters required when the route
// parameter they come from has a non-nullable type. It never clears an
// existing required flag.
type RequiredOperationFilter struct{}

// Apply updates op.Parameters in place.
func (RequiredOperationFilter) Apply(op *types.Operation, route *types.Route, resolver TypeResolver) {
	if op == nil || route == nil {
		return
	}

	for _, param := range op.Parameters {
		if param == nil {
			continue
		}
		source, ok := findParameter(route.Parameters, param.Name)
		if !ok {
			continue
		}
		if IsRequired(resolve(resolver, source.Type)) {
			param.Required = true
		}
	}
}

// findParameter returns the first parameter whose name matches case-insensitively.
func findParameter(params []types.RouteParameter, name string) (types.RouteParameter, bool) {
	for _, p := range params {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return types.RouteParameter{}, false
}
