/*
 *    Copyright 2025 Jeff Galyan
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package quokka

import (
	"sync"
	"sync/atomic"
)

// route is one compiled, registered endpoint.
type route struct {
	method  Method
	pattern *PathPattern
	handler Handler
}

// routingTable is an immutable snapshot of the registered routes, matched
// in the exact order given in this slice. There is deliberately no
// static-over-dynamic precedence: registration order is the only tie-break
// rule, so two patterns that could both match a path are resolved strictly
// by which was registered first.
type routingTable struct {
	routes []route
}

// Router holds the registered route table behind a lock-free snapshot
// pointer (reads never block on a mutex) and the registration mutex that
// serializes writers building the next snapshot, mirroring the
// copy-on-write discipline used elsewhere in this pack for hot-path route
// lookups under concurrent load.
type Router struct {
	mu      sync.Mutex // serializes writers only
	table   atomic.Pointer[routingTable]
	baseMws []Middleware
}

// NewRouter creates an empty Router.
func NewRouter() *Router {
	r := &Router{}
	r.table.Store(&routingTable{})
	return r
}

// Use appends router-level middleware applied to every route registered on
// this Router from this point forward (including routes later mounted
// from a SubRouter, whose own scoped middleware still runs innermost).
// Routes registered before the call are not wrapped by it.
func (r *Router) Use(mw ...Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.baseMws = append(r.baseMws, mw...)
}

// handle registers a route for method+path, wrapping h with mw (innermost)
// then the router's base middleware (outermost).
func (r *Router) handle(method Method, path string, h Handler, mw ...Middleware) {
	if h == nil {
		panic("quokka: nil handler")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	full := make([]Middleware, 0, len(r.baseMws)+len(mw))
	full = append(full, r.baseMws...)
	full = append(full, mw...)
	wrapped := chain(full, h)

	old := r.table.Load()
	next := make([]route, len(old.routes), len(old.routes)+1)
	copy(next, old.routes)
	next = append(next, route{method: method, pattern: CompilePattern(path), handler: wrapped})
	r.table.Store(&routingTable{routes: next})
}

func (r *Router) GET(path string, h Handler, mw ...Middleware)     { r.handle(MethodGet, path, h, mw...) }
func (r *Router) POST(path string, h Handler, mw ...Middleware)    { r.handle(MethodPost, path, h, mw...) }
func (r *Router) PUT(path string, h Handler, mw ...Middleware)     { r.handle(MethodPut, path, h, mw...) }
func (r *Router) DELETE(path string, h Handler, mw ...Middleware)  { r.handle(MethodDelete, path, h, mw...) }
func (r *Router) PATCH(path string, h Handler, mw ...Middleware)   { r.handle(MethodPatch, path, h, mw...) }
func (r *Router) OPTIONS(path string, h Handler, mw ...Middleware) { r.handle(MethodOptions, path, h, mw...) }
func (r *Router) HEAD(path string, h Handler, mw ...Middleware)    { r.handle(MethodHead, path, h, mw...) }

// dispatch matches method+path against the current snapshot in
// registration order. The first pattern whose segments match the path AND
// whose method equals the requested method wins. If one or more patterns
// match the path but none for this method, a MethodNotAllowed error is
// returned listing every method registered against a path-matching
// pattern (aggregated in registration order, de-duplicated). A pattern
// that fails to decode a path segment aborts the scan immediately with the
// BadRequest error Match reports, rather than falling through to the next
// candidate route.
func (r *Router) dispatch(req *Request) (*Response, error) {
	table := r.table.Load()

	var allowed []string
	seen := map[Method]struct{}{}
	for _, rt := range table.routes {
		params, ok, err := rt.pattern.Match(req.path)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if rt.method == req.method {
			req.params = params
			return rt.handler(req)
		}
		if _, dup := seen[rt.method]; !dup {
			seen[rt.method] = struct{}{}
			allowed = append(allowed, rt.method.String())
		}
	}

	if len(allowed) > 0 {
		return nil, NewMethodNotAllowed(allowed)
	}
	return nil, NewRouteNotFound(req.path)
}
