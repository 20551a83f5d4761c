// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package extract runs a module's route registration and harvests the
// registered routes and types as serializable metadata.
package extract

import (
	"context"
	"log/slog"
	"reflect"

	"github.com/api2spec/webapi2swagger/internal/typeinfo"
	"github.com/api2spec/webapi2swagger/pkg/types"
	"github.com/api2spec/webapi2swagger/pkg/webapi"
)

const (
	// ConfigSymbol is the symbol a module exports its registration under.
	ConfigSymbol = "WebApiConfig"

	// RegisterMethod is the registration method looked up on ConfigSymbol.
	RegisterMethod = "Register"
)

// ExecuteConfig finds WebApiConfig.Register in module and calls it with cfg.
// The method must take exactly one *webapi.Configuration and return nothing.
func ExecuteConfig(module Module, cfg *webapi.Configuration) (err error) {
	name := module.Name()

	sym, lookupErr := module.Lookup(ConfigSymbol)
	if lookupErr != nil || sym == nil {
		return &Error{Kind: ErrConfigurationMissing, Module: name, Err: lookupErr}
	}

	method := reflect.ValueOf(sym).MethodByName(RegisterMethod)
	if !method.IsValid() {
		return newError(ErrConfigurationMissing, name, "%s has no %s method", ConfigSymbol, RegisterMethod)
	}

	cfgType := reflect.TypeOf(cfg)
	mt := method.Type()
	if mt.NumOut() != 0 || mt.NumIn() != 1 || fullTypeName(mt.In(0)) != fullTypeName(cfgType) {
		return newError(ErrConfigurationMissing, name, "%s.%s has signature %s, want func(%s)",
			ConfigSymbol, RegisterMethod, mt, fullTypeName(cfgType))
	}
	if !cfgType.AssignableTo(mt.In(0)) {
		return newError(ErrConfigurationMissing, name, "%s.%s takes %s from a different build",
			ConfigSymbol, RegisterMethod, fullTypeName(cfgType))
	}

	defer func() {
		if r := recover(); r != nil {
			err = newError(ErrRegistration, name, "%s.%s panicked: %v", ConfigSymbol, RegisterMethod, r)
		}
	}()
	method.Call([]reflect.Value{reflect.ValueOf(cfg)})
	return nil
}

// fullTypeName returns "*pkgpath.Name" for pointers to named types.
func fullTypeName(t reflect.Type) string {
	prefix := ""
	for t.Kind() == reflect.Pointer {
		prefix += "*"
		t = t.Elem()
	}
	if t.PkgPath() == "" {
		return prefix + t.String()
	}
	return prefix + t.PkgPath() + "." + t.Name()
}

// Extractor harvests metadata from a loaded module.
type Extractor struct {
	// Logger receives diagnostics (defaults to slog.Default)
	Logger *slog.Logger
}

// Extract registers the module's routes on a fresh configuration and
// describes every route and the types it references.
func (e *Extractor) Extract(ctx context.Context, module Module) (*types.Metadata, error) {
	logger := e.Logger
	if logger == nil {
		logger = slog.Default()
	}
	name := module.Name()

	cfg := webapi.NewConfiguration()
	if err := ExecuteConfig(module, cfg); err != nil {
		return nil, err
	}
	if err := cfg.EnsureInitialized(); err != nil {
		return nil, &Error{Kind: ErrRegistration, Module: name, Err: err}
	}

	descriptions, err := cfg.APIExplorer().Descriptions()
	if err != nil {
		return nil, &Error{Kind: ErrRegistration, Module: name, Err: err}
	}

	describer := typeinfo.NewDescriber()
	meta := &types.Metadata{
		Module: name,
		Routes: make([]types.Route, 0, len(descriptions)),
	}
	for _, d := range descriptions {
		route := types.Route{
			Method:       d.Method,
			Path:         d.RelativePath,
			Controller:   d.Action.Controller,
			Action:       d.Action.Name,
			Summary:      d.Action.Summary,
			Description:  d.Action.Description,
			Deprecated:   d.Action.Deprecated,
			ResponseType: describer.Describe(d.ResponseType),
		}
		for _, p := range d.Parameters {
			route.Parameters = append(route.Parameters, types.RouteParameter{
				Name:     p.Name,
				In:       location(p.Source),
				Type:     describer.Describe(p.Type),
				Optional: p.Optional,
			})
		}
		logger.DebugContext(ctx, "described route",
			"module", name, "method", route.Method, "path", route.Path, "params", len(route.Parameters))
		meta.Routes = append(meta.Routes, route)
	}
	meta.Types = describer.Types()

	logger.DebugContext(ctx, "extraction complete",
		"module", name, "routes", len(meta.Routes), "types", len(meta.Types))
	return meta, nil
}

// Extract harvests metadata with the default logger.
func Extract(ctx context.Context, module Module) (*types.Metadata, error) {
	return (&Extractor{}).Extract(ctx, module)
}

// location maps a binding source to a Swagger parameter location.
func location(source webapi.BindingSource) string {
	switch source {
	case webapi.FromPath:
		return types.InPath
	case webapi.FromHeader:
		return types.InHeader
	case webapi.FromForm:
		return types.InFormData
	case webapi.FromBody:
		return types.InBody
	default:
		return types.InQuery
	}
}
