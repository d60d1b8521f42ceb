package jsonapi

import (
	"fmt"
	"net/http"
	"sort"
	"sync"
)

// PathResolver extracts the route pattern from a request. The middleware uses
// this to look up the registered Resource for the request.
type PathResolver func(r *http.Request) string

// StdlibPathResolver uses the r.Pattern field set by net/http.ServeMux. It
// only works for middleware installed on individual mux handlers, since the
// pattern is unknown before the mux has routed the request.
func StdlibPathResolver(r *http.Request) string {
	return r.Pattern
}

// ServeMuxPathResolver asks mux which pattern it would route r to. Use it when
// the middleware wraps the mux itself.
func ServeMuxPathResolver(mux *http.ServeMux) PathResolver {
	return func(r *http.Request) string {
		_, pattern := mux.Handler(r)
		return pattern
	}
}

// routeKey identifies a route by method and pattern.
type routeKey struct {
	method  string
	pattern string
}

// Registry stores the resource descriptor of each route. It is safe for
// concurrent use; descriptors themselves are never modified.
type Registry struct {
	mu     sync.RWMutex
	routes map[routeKey]Resource
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		routes: make(map[routeKey]Resource),
	}
}

// Lookup returns the Resource for the given method and pattern, or nil.
func (reg *Registry) Lookup(method, pattern string) Resource {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.routes[routeKey{method: method, pattern: pattern}]
}

// Routes returns all registered routes as (method, pattern) pairs, sorted by
// pattern then method.
func (reg *Registry) Routes() [][2]string {
	reg.mu.RLock()
	pairs := make([][2]string, 0, len(reg.routes))
	for k := range reg.routes {
		pairs = append(pairs, [2]string{k.method, k.pattern})
	}
	reg.mu.RUnlock()

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][1] != pairs[j][1] {
			return pairs[i][1] < pairs[j][1]
		}
		return pairs[i][0] < pairs[j][0]
	})
	return pairs
}

// Get starts building a route for GET.
func (reg *Registry) Get(pattern string) *RouteBuilder {
	return reg.Route(http.MethodGet, pattern)
}

// Post starts building a route for POST.
func (reg *Registry) Post(pattern string) *RouteBuilder {
	return reg.Route(http.MethodPost, pattern)
}

// Put starts building a route for PUT.
func (reg *Registry) Put(pattern string) *RouteBuilder {
	return reg.Route(http.MethodPut, pattern)
}

// Patch starts building a route for PATCH.
func (reg *Registry) Patch(pattern string) *RouteBuilder {
	return reg.Route(http.MethodPatch, pattern)
}

// Delete starts building a route for DELETE.
func (reg *Registry) Delete(pattern string) *RouteBuilder {
	return reg.Route(http.MethodDelete, pattern)
}

// Route starts building a route for an arbitrary method.
func (reg *Registry) Route(method, pattern string) *RouteBuilder {
	return &RouteBuilder{registry: reg, method: method, pattern: pattern}
}

// RouteBuilder associates a resource with a route.
type RouteBuilder struct {
	registry *Registry
	method   string
	pattern  string
	resource Resource
}

// Returns sets the resource the route returns.
func (b *RouteBuilder) Returns(res Resource) *RouteBuilder {
	b.resource = res
	return b
}

// Register validates the resource and stores the route. Registering the
// same method and pattern twice is an error.
func (b *RouteBuilder) Register() error {
	if err := ValidateResource(b.resource); err != nil {
		return fmt.Errorf("register %s %s: %w", b.method, b.pattern, err)
	}
	key := routeKey{method: b.method, pattern: b.pattern}

	b.registry.mu.Lock()
	defer b.registry.mu.Unlock()
	if _, ok := b.registry.routes[key]; ok {
		return fmt.Errorf("register %s %s: %w", b.method, b.pattern, ErrDuplicateRoute)
	}
	b.registry.routes[key] = b.resource
	return nil
}

// MustRegister is like Register but panics on error.
func (b *RouteBuilder) MustRegister() {
	if err := b.Register(); err != nil {
		panic(err)
	}
}
