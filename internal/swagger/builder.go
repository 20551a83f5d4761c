// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package swagger assembles, serializes, compares and merges Swagger 2.0
// documents.
package swagger

import (
	"log/slog"
	"slices"
	"sort"
	"strings"

	"github.com/api2spec/webapi2swagger/internal/config"
	"github.com/api2spec/webapi2swagger/internal/filters"
	"github.com/api2spec/webapi2swagger/internal/util"
	"github.com/api2spec/webapi2swagger/pkg/types"
)

// Media types attached to operations.
const (
	MediaJSON = "application/json"
	MediaForm = "application/x-www-form-urlencoded"
)

// Builder constructs Swagger documents from extracted metadata.
type Builder struct {
	config           *config.Config
	schemaFilters    []filters.SchemaFilter
	operationFilters []filters.OperationFilter
	logger           *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithSchemaFilter appends a filter that runs after the built-in ones.
func WithSchemaFilter(f filters.SchemaFilter) Option {
	return func(b *Builder) {
		b.schemaFilters = append(b.schemaFilters, f)
	}
}

// WithOperationFilter appends a filter that runs after the built-in ones.
func WithOperationFilter(f filters.OperationFilter) Option {
	return func(b *Builder) {
		b.operationFilters = append(b.operationFilters, f)
	}
}

// WithLogger sets the logger used for skipped routes.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// NewBuilder creates a builder. The required filters are always installed.
func NewBuilder(cfg *config.Config, opts ...Option) *Builder {
	if cfg == nil {
		cfg = config.Default()
	}
	b := &Builder{
		config:           cfg,
		schemaFilters:    []filters.SchemaFilter{filters.RequiredSchemaFilter{}},
		operationFilters: []filters.OperationFilter{filters.RequiredOperationFilter{}},
		logger:           slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build creates a Swagger document from meta. A nil meta yields a document
// with no paths.
func (b *Builder) Build(meta *types.Metadata) (*types.Swagger, error) {
	if meta == nil {
		meta = &types.Metadata{}
	}

	doc := &types.Swagger{
		Swagger:  types.SwaggerVersion,
		Info:     b.buildInfo(meta.Module),
		Host:     b.config.Swagger.Host,
		BasePath: b.config.Swagger.BasePath,
		Schemes:  b.config.Swagger.Schemes,
		Consumes: b.config.Swagger.Consumes,
		Produces: b.config.Swagger.Produces,
		Paths:    make(map[string]*types.PathItem),
		Tags:     b.buildTags(),
	}

	reg := newRegistry(meta)
	b.buildPaths(doc, meta.Routes, reg)

	for _, def := range reg.definitions {
		for _, f := range b.schemaFilters {
			f.Apply(def.schema, def.desc, reg)
		}
	}
	doc.Definitions = reg.Definitions()

	if len(b.config.Swagger.Security.Schemes) > 0 {
		doc.SecurityDefinitions = b.buildSecurityDefinitions()
		doc.Security = b.buildSecurity()
	}

	for key, value := range b.config.Swagger.Extensions {
		doc.Extensions.Set(key, value)
	}

	return doc, nil
}

// buildInfo constructs the Info object, deriving the title from the module
// name when none is configured.
func (b *Builder) buildInfo(module string) types.Info {
	cfg := b.config.Swagger.Info
	info := types.Info{
		Title:          cfg.Title,
		Description:    cfg.Description,
		TermsOfService: cfg.TermsOfService,
		Version:        cfg.Version,
	}
	if info.Title == "" {
		info.Title = util.TitleFromModule(module)
	}
	if info.Version == "" {
		info.Version = config.DefaultVersion
	}

	if cfg.Contact.Name != "" || cfg.Contact.Email != "" || cfg.Contact.URL != "" {
		info.Contact = &types.Contact{
			Name:  cfg.Contact.Name,
			URL:   cfg.Contact.URL,
			Email: cfg.Contact.Email,
		}
	}
	if cfg.License.Name != "" {
		info.License = &types.License{
			Name: cfg.License.Name,
			URL:  cfg.License.URL,
		}
	}

	return info
}

func (b *Builder) buildTags() []types.Tag {
	if len(b.config.Swagger.Tags) == 0 {
		return nil
	}
	tags := make([]types.Tag, 0, len(b.config.Swagger.Tags))
	for _, t := range b.config.Swagger.Tags {
		tags = append(tags, types.Tag{
			Name:        t.Name,
			Description: t.Description,
		})
	}
	return tags
}

// buildPaths adds one operation per route. The first route claiming a
// (path, method) pair or an operation ID wins.
func (b *Builder) buildPaths(doc *types.Swagger, routes []types.Route, reg *registry) {
	operationIDs := make(map[string]bool)

	for i := range routes {
		route := &routes[i]
		method := strings.ToUpper(route.Method)
		if !slices.Contains(types.Methods, method) {
			b.logger.Warn("skipping route with unsupported method", "method", method, "path", route.Path)
			continue
		}

		item, ok := doc.Paths[route.Path]
		if !ok {
			item = &types.PathItem{}
		}
		if item.Operation(method) != nil {
			b.logger.Debug("skipping duplicate route", "method", method, "path", route.Path)
			continue
		}

		id := operationID(route)
		if operationIDs[id] {
			b.logger.Debug("skipping duplicate operation id", "operationId", id, "method", method, "path", route.Path)
			continue
		}

		op := b.buildOperation(route, id, reg)
		item.SetOperation(method, op)

		for _, f := range b.operationFilters {
			f.Apply(op, route, reg)
		}

		operationIDs[id] = true
		doc.Paths[route.Path] = item
	}
}

// operationID returns "Controller_Action", or a name derived from the
// method and path when the route has no controller.
func operationID(route *types.Route) string {
	if route.Controller != "" && route.Action != "" {
		return util.OperationID(route.Controller, route.Action)
	}
	return util.OperationIDFromPath(route.Method, route.Path)
}

func (b *Builder) buildOperation(route *types.Route, id string, reg *registry) *types.Operation {
	op := &types.Operation{
		Summary:     route.Summary,
		Description: route.Description,
		OperationID: id,
		Deprecated:  route.Deprecated,
		Responses:   make(map[string]*types.Response),
	}
	if route.Controller != "" {
		op.Tags = []string{route.Controller}
	}

	var body, form bool
	for _, p := range route.Parameters {
		param := buildParameter(p, reg)
		switch param.In {
		case types.InBody:
			body = true
		case types.InFormData:
			form = true
		}
		op.Parameters = append(op.Parameters, param)
	}
	if body {
		op.Consumes = append(op.Consumes, MediaJSON)
	}
	if form {
		op.Consumes = append(op.Consumes, MediaForm)
	}

	if route.ResponseType != "" {
		op.Produces = []string{MediaJSON}
		op.Responses["200"] = &types.Response{
			Description: "OK",
			Schema:      reg.schemaFor(route.ResponseType),
		}
	} else {
		op.Responses["204"] = &types.Response{Description: "No Content"}
	}

	return op
}

// buildParameter converts a route parameter. Path parameters are always
// required; the others start out required unless marked optional.
func buildParameter(p types.RouteParameter, reg *registry) *types.Parameter {
	param := &types.Parameter{
		Name:     p.Name,
		In:       p.In,
		Required: p.In == types.InPath || !p.Optional,
	}

	if p.In == types.InBody {
		param.Schema = reg.schemaFor(p.Type)
		return param
	}

	desc := unwrap(reg, p.Type)
	switch {
	case desc == nil:
		param.Type = "string"
	case desc.Shape == types.ShapePrimitive:
		param.Type, param.Format = desc.Type, desc.Format
	case desc.Shape == types.ShapeArray:
		param.Type = "array"
		param.Items = buildItems(reg, desc.Elem)
		if p.In == types.InQuery || p.In == types.InFormData {
			param.CollectionFormat = "multi"
		}
	default:
		param.Type = "string"
	}
	return param
}

// buildItems describes the element type of an array parameter.
func buildItems(reg *registry, id string) *types.Items {
	desc := unwrap(reg, id)
	switch {
	case desc == nil:
		return &types.Items{Type: "string"}
	case desc.Shape == types.ShapePrimitive:
		return &types.Items{Type: desc.Type, Format: desc.Format}
	case desc.Shape == types.ShapeArray:
		return &types.Items{Type: "array", Items: buildItems(reg, desc.Elem)}
	}
	return &types.Items{Type: "string"}
}

// unwrap resolves id and follows pointer and nullable wrappers.
func unwrap(reg *registry, id string) *types.TypeDescriptor {
	desc := reg.Resolve(id)
	for desc.IsWrapper() {
		desc = reg.Resolve(desc.Target)
	}
	return desc
}

func (b *Builder) buildSecurityDefinitions() map[string]*types.SecurityScheme {
	defs := make(map[string]*types.SecurityScheme, len(b.config.Swagger.Security.Schemes))
	for name, cfg := range b.config.Swagger.Security.Schemes {
		defs[name] = &types.SecurityScheme{
			Type:             cfg.Type,
			Description:      cfg.Description,
			Name:             cfg.Name,
			In:               cfg.In,
			Flow:             cfg.Flow,
			AuthorizationURL: cfg.AuthorizationURL,
			TokenURL:         cfg.TokenURL,
			Scopes:           cfg.Scopes,
		}
	}
	return defs
}

func (b *Builder) buildSecurity() []map[string][]string {
	if len(b.config.Swagger.Security.Default) == 0 {
		return nil
	}
	security := make([]map[string][]string, 0, len(b.config.Swagger.Security.Default))
	for _, name := range b.config.Swagger.Security.Default {
		security = append(security, map[string][]string{name: {}})
	}
	return security
}

// SortedPaths returns the path keys in sorted order.
func SortedPaths(paths map[string]*types.PathItem) []string {
	keys := make([]string, 0, len(paths))
	for k := range paths {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SortedDefinitions returns the definition names in sorted order.
func SortedDefinitions(defs map[string]*types.Schema) []string {
	keys := make([]string, 0, len(defs))
	for k := range defs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
