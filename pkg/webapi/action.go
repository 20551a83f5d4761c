// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package webapi

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/api2spec/webapi2swagger/internal/util"
)

// Action describes one controller action.
type Action struct {
	// Controller groups related actions, e.g. "items"
	Controller string

	// Name is the action name within the controller, e.g. "Get"
	Name string

	// Input is a zero value of the action's input type, nil for none
	Input any

	// Output is a zero value of the action's result type, nil for no content
	Output any

	// Handler serves the action; requests get 501 when nil
	Handler http.Handler

	// Summary is a brief description of the action
	Summary string

	// Description is a detailed description of the action
	Description string

	// Deprecated marks the action as deprecated
	Deprecated bool
}

func (a Action) handler() http.Handler {
	if a.Handler != nil {
		return a.Handler
	}
	return notImplemented
}

// BindingSource is where a parameter value is read from.
type BindingSource string

// Binding sources, named after the struct tags that select them.
const (
	FromPath   BindingSource = "path"
	FromQuery  BindingSource = "query"
	FromHeader BindingSource = "header"
	FromForm   BindingSource = "form"
	FromBody   BindingSource = "body"
)

var bindingSources = []BindingSource{FromPath, FromQuery, FromHeader, FromForm, FromBody}

// ParameterDescription is one bound action parameter.
type ParameterDescription struct {
	// Name is the name on the wire
	Name string

	// Source is where the value is bound from
	Source BindingSource

	// Type is the parameter type, nil when unknown
	Type reflect.Type

	// Optional marks parameters the caller may omit
	Optional bool
}

// bindInput lists the parameters bound from an input value.
func bindInput(input any) []ParameterDescription {
	if input == nil {
		return nil
	}

	t := reflect.TypeOf(input)
	st := t
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() != reflect.Struct || !hasBindingTags(st) {
		return []ParameterDescription{{
			Name:   bodyName(st),
			Source: FromBody,
			Type:   t,
		}}
	}

	var params []ParameterDescription
	for i := range st.NumField() {
		field := st.Field(i)
		if !field.IsExported() {
			continue
		}
		source, tag, ok := bindingTag(field)
		if !ok {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = util.ToLowerCamelCase(field.Name)
		}
		params = append(params, ParameterDescription{
			Name:     name,
			Source:   source,
			Type:     field.Type,
			Optional: hasOption(opts, "optional"),
		})
	}
	return params
}

func hasBindingTags(t reflect.Type) bool {
	for i := range t.NumField() {
		if _, _, ok := bindingTag(t.Field(i)); ok {
			return true
		}
	}
	return false
}

func bindingTag(field reflect.StructField) (BindingSource, string, bool) {
	for _, source := range bindingSources {
		if tag, ok := field.Tag.Lookup(string(source)); ok && tag != "-" {
			return source, tag, true
		}
	}
	return "", "", false
}

func hasOption(opts, option string) bool {
	for opts != "" {
		var name string
		name, opts, _ = strings.Cut(opts, ",")
		if strings.TrimSpace(name) == option {
			return true
		}
	}
	return false
}

// bodyName names a whole-input body parameter after its type.
func bodyName(t reflect.Type) string {
	name := t.Name()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		return "body"
	}
	return util.ToLowerCamelCase(name)
}
