// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package webapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/vitalvas/kasper/mux"
)

var (
	// ErrInitialized is the panic value for registrations after EnsureInitialized.
	ErrInitialized = errors.New("webapi: configuration already initialized")

	// ErrNotInitialized is returned when the explorer is used before EnsureInitialized.
	ErrNotInitialized = errors.New("webapi: configuration not initialized")
)

// Configuration holds the route table a module registers its actions on.
type Configuration struct {
	// Routes is the route table. Modules may configure it directly and
	// attach actions with Describe.
	Routes *mux.Router

	mu          sync.Mutex
	actions     map[*mux.Route]Action
	initialized bool
	explorer    *APIExplorer
}

// NewConfiguration creates an empty configuration.
func NewConfiguration() *Configuration {
	return &Configuration{
		Routes:  mux.NewRouter(),
		actions: make(map[*mux.Route]Action),
	}
}

// MapAction registers action for method and path and returns the route.
// It panics with ErrInitialized once the configuration is initialized.
func (c *Configuration) MapAction(method, path string, action Action) *mux.Route {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checkMutable()

	route := c.Routes.Handle(path, action.handler()).Methods(strings.ToUpper(method))
	c.actions[route] = action
	return route
}

// Describe attaches action to a route configured directly on Routes.
// It panics with ErrInitialized once the configuration is initialized.
func (c *Configuration) Describe(route *mux.Route, action Action) *mux.Route {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checkMutable()

	if route.GetHandler() == nil {
		route.Handler(action.handler())
	}
	c.actions[route] = action
	return route
}

// EnsureInitialized locks the route table and prepares the API explorer.
// It is safe to call more than once; route errors are reported every time.
func (c *Configuration) EnsureInitialized() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		c.initialized = true
		c.explorer = &APIExplorer{config: c}
	}

	var errs []error
	_ = c.Routes.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		if err := route.GetError(); err != nil {
			errs = append(errs, fmt.Errorf("route %q: %w", route.GetName(), err))
		}
		return nil
	})
	return errors.Join(errs...)
}

// Initialized reports whether EnsureInitialized has been called.
func (c *Configuration) Initialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

// APIExplorer returns the explorer over the registered actions. Its
// Descriptions fail with ErrNotInitialized until EnsureInitialized is called.
func (c *Configuration) APIExplorer() *APIExplorer {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.explorer == nil {
		return &APIExplorer{config: c}
	}
	return c.explorer
}

func (c *Configuration) action(route *mux.Route) (Action, bool) {
	a, ok := c.actions[route]
	return a, ok
}

func (c *Configuration) checkMutable() {
	if c.initialized {
		panic(ErrInitialized)
	}
}

// notImplemented answers requests to actions registered without a handler.
var notImplemented = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, http.StatusText(http.StatusNotImplemented), http.StatusNotImplemented)
})
