// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package types provides core data structures for Swagger document generation.
package types

// Parameter locations.
const (
	InPath     = "path"
	InQuery    = "query"
	InHeader   = "header"
	InFormData = "formData"
	InBody     = "body"
)

// Route represents an HTTP route harvested from a registered module.
type Route struct {
	// Method is the HTTP method (GET, POST, PUT, DELETE, PATCH, etc.)
	Method string `json:"method" yaml:"method"`

	// Path is the URL path pattern (e.g., "/users/{id}")
	Path string `json:"path" yaml:"path"`

	// Controller is the name of the controller owning the action
	Controller string `json:"controller,omitempty" yaml:"controller,omitempty"`

	// Action is the name of the action
	Action string `json:"action,omitempty" yaml:"action,omitempty"`

	// Summary is a brief description of the route
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// Description is a detailed description of the route
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Deprecated indicates if the route is deprecated
	Deprecated bool `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`

	// Parameters are the action parameters in declaration order
	Parameters []RouteParameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`

	// ResponseType is the type ID of the action result, empty for no content
	ResponseType string `json:"responseType,omitempty" yaml:"responseType,omitempty"`
}

// RouteParameter is a single action parameter and the type it binds to.
type RouteParameter struct {
	// Name is the parameter name as it appears on the wire
	Name string `json:"name" yaml:"name"`

	// In is the location (path, query, header, formData, body)
	In string `json:"in" yaml:"in"`

	// Type is the type descriptor ID, empty when the type is unknown
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// Optional marks a parameter that may be omitted by the caller
	Optional bool `json:"optional,omitempty" yaml:"optional,omitempty"`
}

// Parameter returns the first route parameter with the given name.
func (r *Route) Parameter(name string) (RouteParameter, bool) {
	for _, p := range r.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return RouteParameter{}, false
}

// Metadata is everything harvested from one module: its routes and the
// descriptors of every type they reference.
type Metadata struct {
	// Module is the simple name of the inspected module
	Module string `json:"module" yaml:"module"`

	// Routes are the routes in registration order
	Routes []Route `json:"routes" yaml:"routes"`

	// Types maps type IDs to descriptors
	Types map[string]*TypeDescriptor `json:"types,omitempty" yaml:"types,omitempty"`
}

// Resolve returns the descriptor for id, or nil when unknown.
func (m *Metadata) Resolve(id string) *TypeDescriptor {
	if m == nil || id == "" {
		return nil
	}
	return m.Types[id]
}
