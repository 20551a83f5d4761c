// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

import (
	json "github.com/goccy/go-json"
)

// SwaggerVersion is the only document version this package models.
const SwaggerVersion = "2.0"

// Swagger represents a complete Swagger 2.0 (OpenAPI 2.0) document.
type Swagger struct {
	// Swagger is the specification version, always "2.0"
	Swagger string `json:"swagger" yaml:"swagger"`

	// Info provides metadata about the API
	Info Info `json:"info" yaml:"info"`

	// Host is the host (name or ip) serving the API
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// BasePath is the base path on which the API is served
	BasePath string `json:"basePath,omitempty" yaml:"basePath,omitempty"`

	// Schemes is the transfer protocol list (http, https, ws, wss)
	Schemes []string `json:"schemes,omitempty" yaml:"schemes,omitempty"`

	// Consumes lists the MIME types the API can consume
	Consumes []string `json:"consumes,omitempty" yaml:"consumes,omitempty"`

	// Produces lists the MIME types the API can produce
	Produces []string `json:"produces,omitempty" yaml:"produces,omitempty"`

	// Paths holds the available paths and operations
	Paths map[string]*PathItem `json:"paths" yaml:"paths"`

	// Definitions holds the data types produced and consumed by operations
	Definitions map[string]*Schema `json:"definitions,omitempty" yaml:"definitions,omitempty"`

	// SecurityDefinitions holds the security schemes available to operations
	SecurityDefinitions map[string]*SecurityScheme `json:"securityDefinitions,omitempty" yaml:"securityDefinitions,omitempty"`

	// Security is a list of security requirements
	Security []map[string][]string `json:"security,omitempty" yaml:"security,omitempty"`

	// Tags is a list of tags used by the specification
	Tags []Tag `json:"tags,omitempty" yaml:"tags,omitempty"`

	// ExternalDocs provides external documentation
	ExternalDocs *ExternalDocs `json:"externalDocs,omitempty" yaml:"externalDocs,omitempty"`

	// Extensions holds x- prefixed vendor extensions
	Extensions Extensions `json:"-" yaml:",inline"`
}

// Info provides metadata about the API.
type Info struct {
	// Title is the title of the API
	Title string `json:"title" yaml:"title"`

	// Description is a description of the API
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// TermsOfService is a URL to the Terms of Service
	TermsOfService string `json:"termsOfService,omitempty" yaml:"termsOfService,omitempty"`

	// Contact provides contact information
	Contact *Contact `json:"contact,omitempty" yaml:"contact,omitempty"`

	// License provides license information
	License *License `json:"license,omitempty" yaml:"license,omitempty"`

	// Version is the version of the API
	Version string `json:"version" yaml:"version"`

	// Extensions holds x- prefixed vendor extensions
	Extensions Extensions `json:"-" yaml:",inline"`
}

// Contact provides contact information.
type Contact struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// License provides license information.
type License struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
}

// PathItem describes the operations available on a single path.
type PathItem struct {
	// Ref is a reference to another path item
	Ref string `json:"$ref,omitempty" yaml:"$ref,omitempty"`

	Get     *Operation `json:"get,omitempty" yaml:"get,omitempty"`
	Put     *Operation `json:"put,omitempty" yaml:"put,omitempty"`
	Post    *Operation `json:"post,omitempty" yaml:"post,omitempty"`
	Delete  *Operation `json:"delete,omitempty" yaml:"delete,omitempty"`
	Options *Operation `json:"options,omitempty" yaml:"options,omitempty"`
	Head    *Operation `json:"head,omitempty" yaml:"head,omitempty"`
	Patch   *Operation `json:"patch,omitempty" yaml:"patch,omitempty"`

	// Parameters are parameters for all operations on this path
	Parameters []*Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`

	// Extensions holds x- prefixed vendor extensions
	Extensions Extensions `json:"-" yaml:",inline"`
}

// Methods lists the HTTP methods a PathItem can carry, in document order.
var Methods = []string{"GET", "PUT", "POST", "DELETE", "OPTIONS", "HEAD", "PATCH"}

// Operation returns the operation stored for the given upper-case method.
func (p *PathItem) Operation(method string) *Operation {
	switch method {
	case "GET":
		return p.Get
	case "PUT":
		return p.Put
	case "POST":
		return p.Post
	case "DELETE":
		return p.Delete
	case "OPTIONS":
		return p.Options
	case "HEAD":
		return p.Head
	case "PATCH":
		return p.Patch
	}
	return nil
}

// SetOperation stores op under the given upper-case method.
// It reports false for methods Swagger 2.0 cannot express (e.g. TRACE).
func (p *PathItem) SetOperation(method string, op *Operation) bool {
	switch method {
	case "GET":
		p.Get = op
	case "PUT":
		p.Put = op
	case "POST":
		p.Post = op
	case "DELETE":
		p.Delete = op
	case "OPTIONS":
		p.Options = op
	case "HEAD":
		p.Head = op
	case "PATCH":
		p.Patch = op
	default:
		return false
	}
	return true
}

// Operation describes a single API operation on a path.
type Operation struct {
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Summary     string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`

	// OperationID is a unique identifier for the operation
	OperationID string `json:"operationId,omitempty" yaml:"operationId,omitempty"`

	Consumes []string `json:"consumes,omitempty" yaml:"consumes,omitempty"`
	Produces []string `json:"produces,omitempty" yaml:"produces,omitempty"`

	// Parameters is the ordered parameter list
	Parameters []*Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`

	// Responses maps status codes to responses
	Responses map[string]*Response `json:"responses" yaml:"responses"`

	Deprecated bool                  `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Security   []map[string][]string `json:"security,omitempty" yaml:"security,omitempty"`

	// Extensions holds x- prefixed vendor extensions
	Extensions Extensions `json:"-" yaml:",inline"`
}

// Parameter describes a single operation parameter.
// Body parameters carry a Schema; all other locations use Type/Format/Items.
type Parameter struct {
	Name        string `json:"name" yaml:"name"`
	In          string `json:"in" yaml:"in"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`

	// Schema is only used for in: body
	Schema *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`

	Type             string `json:"type,omitempty" yaml:"type,omitempty"`
	Format           string `json:"format,omitempty" yaml:"format,omitempty"`
	Items            *Items `json:"items,omitempty" yaml:"items,omitempty"`
	CollectionFormat string `json:"collectionFormat,omitempty" yaml:"collectionFormat,omitempty"`

	// Extensions holds x- prefixed vendor extensions
	Extensions Extensions `json:"-" yaml:",inline"`
}

// Items describes the element type of a non-body array parameter.
type Items struct {
	Type   string `json:"type" yaml:"type"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
	Items  *Items `json:"items,omitempty" yaml:"items,omitempty"`
}

// Response describes a single response from an operation.
type Response struct {
	Description string  `json:"description" yaml:"description"`
	Schema      *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`

	// Extensions holds x- prefixed vendor extensions
	Extensions Extensions `json:"-" yaml:",inline"`
}

// SecurityScheme represents a Swagger 2.0 security definition.
type SecurityScheme struct {
	Type             string            `json:"type" yaml:"type"`
	Description      string            `json:"description,omitempty" yaml:"description,omitempty"`
	Name             string            `json:"name,omitempty" yaml:"name,omitempty"`
	In               string            `json:"in,omitempty" yaml:"in,omitempty"`
	Flow             string            `json:"flow,omitempty" yaml:"flow,omitempty"`
	AuthorizationURL string            `json:"authorizationUrl,omitempty" yaml:"authorizationUrl,omitempty"`
	TokenURL         string            `json:"tokenUrl,omitempty" yaml:"tokenUrl,omitempty"`
	Scopes           map[string]string `json:"scopes,omitempty" yaml:"scopes,omitempty"`
}

// Tag represents a tag object.
type Tag struct {
	Name         string        `json:"name" yaml:"name"`
	Description  string        `json:"description,omitempty" yaml:"description,omitempty"`
	ExternalDocs *ExternalDocs `json:"externalDocs,omitempty" yaml:"externalDocs,omitempty"`
}

// ExternalDocs provides external documentation.
type ExternalDocs struct {
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	URL         string `json:"url" yaml:"url"`
}

type (
	swaggerAlias   Swagger
	infoAlias      Info
	pathItemAlias  PathItem
	operationAlias Operation
	parameterAlias Parameter
	responseAlias  Response
)

// MarshalJSON flattens Extensions into the document object.
func (s Swagger) MarshalJSON() ([]byte, error) {
	return marshalWithExtensions(swaggerAlias(s), s.Extensions)
}

// UnmarshalJSON collects x- keys into Extensions.
func (s *Swagger) UnmarshalJSON(data []byte) error {
	var alias swaggerAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*s = Swagger(alias)
	return unmarshalExtensions(data, &s.Extensions)
}

// MarshalJSON flattens Extensions into the info object.
func (i Info) MarshalJSON() ([]byte, error) {
	return marshalWithExtensions(infoAlias(i), i.Extensions)
}

// UnmarshalJSON collects x- keys into Extensions.
func (i *Info) UnmarshalJSON(data []byte) error {
	var alias infoAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*i = Info(alias)
	return unmarshalExtensions(data, &i.Extensions)
}

// MarshalJSON flattens Extensions into the path item object.
func (p PathItem) MarshalJSON() ([]byte, error) {
	return marshalWithExtensions(pathItemAlias(p), p.Extensions)
}

// UnmarshalJSON collects x- keys into Extensions.
func (p *PathItem) UnmarshalJSON(data []byte) error {
	var alias pathItemAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*p = PathItem(alias)
	return unmarshalExtensions(data, &p.Extensions)
}

// MarshalJSON flattens Extensions into the operation object.
func (o Operation) MarshalJSON() ([]byte, error) {
	return marshalWithExtensions(operationAlias(o), o.Extensions)
}

// UnmarshalJSON collects x- keys into Extensions.
func (o *Operation) UnmarshalJSON(data []byte) error {
	var alias operationAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*o = Operation(alias)
	return unmarshalExtensions(data, &o.Extensions)
}

// MarshalJSON flattens Extensions into the parameter object.
func (p Parameter) MarshalJSON() ([]byte, error) {
	return marshalWithExtensions(parameterAlias(p), p.Extensions)
}

// UnmarshalJSON collects x- keys into Extensions.
func (p *Parameter) UnmarshalJSON(data []byte) error {
	var alias parameterAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*p = Parameter(alias)
	return unmarshalExtensions(data, &p.Extensions)
}

// MarshalJSON flattens Extensions into the response object.
func (r Response) MarshalJSON() ([]byte, error) {
	return marshalWithExtensions(responseAlias(r), r.Extensions)
}

// UnmarshalJSON collects x- keys into Extensions.
func (r *Response) UnmarshalJSON(data []byte) error {
	var alias responseAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*r = Response(alias)
	return unmarshalExtensions(data, &r.Extensions)
}
