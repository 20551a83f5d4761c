// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package webapi

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/vitalvas/kasper/mux"
)

// pathVarRegexp matches route variables in the form {name} or {name:macro}.
var pathVarRegexp = regexp.MustCompile(`\{([^}]+)\}`)

// macroTypes maps route macros to the Go type their values parse as.
var macroTypes = map[string]reflect.Type{
	"int":   reflect.TypeFor[int64](),
	"float": reflect.TypeFor[float64](),
}

// APIDescription describes one action reachable through one HTTP method.
type APIDescription struct {
	// Method is the HTTP method
	Method string

	// RelativePath is the path template with macros removed, e.g. "/items/{id}"
	RelativePath string

	// Route is the underlying route
	Route *mux.Route

	// Action is the registered action
	Action Action

	// Parameters are the bound parameters: input fields in declaration
	// order, then template variables no field binds
	Parameters []ParameterDescription

	// ResponseType is the result type, nil for no content
	ResponseType reflect.Type
}

// APIExplorer enumerates the registered actions.
type APIExplorer struct {
	config *Configuration
}

// Descriptions returns one description per (route, method) in registration
// order. Routes without an action, path or methods are skipped.
func (e *APIExplorer) Descriptions() ([]APIDescription, error) {
	c := e.config
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return nil, ErrNotInitialized
	}

	var descriptions []APIDescription
	err := c.Routes.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		action, ok := c.action(route)
		if !ok {
			return nil
		}
		tpl, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, err := route.GetMethods()
		if err != nil {
			return nil
		}

		path, vars := parsePath(tpl)
		params := bindInput(action.Input)
		params = append(params, unboundVars(vars, params)...)

		var response reflect.Type
		if action.Output != nil {
			response = reflect.TypeOf(action.Output)
		}

		for _, method := range methods {
			descriptions = append(descriptions, APIDescription{
				Method:       method,
				RelativePath: path,
				Route:        route,
				Action:       action,
				Parameters:   params,
				ResponseType: response,
			})
		}
		return nil
	})
	return descriptions, err
}

// pathVar is a template variable and the macro constraining it.
type pathVar struct {
	name  string
	macro string
}

// parsePath strips macros from a route template and lists its variables.
func parsePath(tpl string) (string, []pathVar) {
	var vars []pathVar
	path := pathVarRegexp.ReplaceAllStringFunc(tpl, func(match string) string {
		name, macro, _ := strings.Cut(match[1:len(match)-1], ":")
		vars = append(vars, pathVar{name: name, macro: macro})
		return "{" + name + "}"
	})
	return path, vars
}

// unboundVars turns template variables no input field binds into path parameters.
func unboundVars(vars []pathVar, bound []ParameterDescription) []ParameterDescription {
	var params []ParameterDescription
	for _, v := range vars {
		if isBound(v.name, bound) {
			continue
		}
		t, ok := macroTypes[v.macro]
		if !ok && v.macro != "" {
			t = reflect.TypeFor[string]()
		}
		params = append(params, ParameterDescription{
			Name:   v.name,
			Source: FromPath,
			Type:   t,
		})
	}
	return params
}

func isBound(name string, params []ParameterDescription) bool {
	for _, p := range params {
		if p.Source == FromPath && strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}
