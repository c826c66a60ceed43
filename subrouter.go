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

// pendingRoute is a route registered on a SubRouter before it has been
// mounted anywhere, so its final path and middleware stack are not yet
// known.
type pendingRoute struct {
	method  Method
	path    string
	handler Handler
	mw      []Middleware
}

// mountedChild is a nested SubRouter mounted under a prefix of its parent.
type mountedChild struct {
	prefix string
	sub    *SubRouter
	mw     []Middleware
}

// SubRouter collects routes and nested SubRouters under a shared prefix
// and a shared middleware scope, without being bound to a Router until
// App.Mount flattens it. This is what lets SubRouter-in-SubRouter nesting
// compose associatively: prefixes and middleware stacks accumulate purely
// by string/slice concatenation at mount time, never by reaching into an
// already-registered route.
type SubRouter struct {
	mw       []Middleware
	routes   []pendingRoute
	children []mountedChild
}

// NewSubRouter creates an unmounted SubRouter.
func NewSubRouter() *SubRouter { return &SubRouter{} }

// Use adds middleware scoped to every route registered on this SubRouter
// (and, transitively, any SubRouter mounted under it).
func (s *SubRouter) Use(mw ...Middleware) { s.mw = append(s.mw, mw...) }

func (s *SubRouter) handle(method Method, path string, h Handler, mw ...Middleware) {
	s.routes = append(s.routes, pendingRoute{method: method, path: path, handler: h, mw: mw})
}

func (s *SubRouter) GET(path string, h Handler, mw ...Middleware)     { s.handle(MethodGet, path, h, mw...) }
func (s *SubRouter) POST(path string, h Handler, mw ...Middleware)    { s.handle(MethodPost, path, h, mw...) }
func (s *SubRouter) PUT(path string, h Handler, mw ...Middleware)     { s.handle(MethodPut, path, h, mw...) }
func (s *SubRouter) DELETE(path string, h Handler, mw ...Middleware)  { s.handle(MethodDelete, path, h, mw...) }
func (s *SubRouter) PATCH(path string, h Handler, mw ...Middleware)   { s.handle(MethodPatch, path, h, mw...) }
func (s *SubRouter) OPTIONS(path string, h Handler, mw ...Middleware) { s.handle(MethodOptions, path, h, mw...) }
func (s *SubRouter) HEAD(path string, h Handler, mw ...Middleware)    { s.handle(MethodHead, path, h, mw...) }

// Mount attaches a child SubRouter under prefix, scoped to mw. The child's
// own routes and further nested children inherit this prefix and
// middleware when the whole tree is eventually flattened onto a Router.
func (s *SubRouter) Mount(prefix string, child *SubRouter, mw ...Middleware) {
	s.children = append(s.children, mountedChild{prefix: prefix, sub: child, mw: mw})
}

// flatten walks the SubRouter tree depth-first, registering every route it
// contains (and every route in its mounted children) onto dst with prefix
// and middleware composed in registration order: parent middleware runs
// outermost, deepest child middleware runs innermost, immediately
// surrounding the route's own per-registration middleware.
func (s *SubRouter) flatten(dst *Router, prefix string, inherited []Middleware) {
	scoped := make([]Middleware, 0, len(inherited)+len(s.mw))
	scoped = append(scoped, inherited...)
	scoped = append(scoped, s.mw...)

	for _, rt := range s.routes {
		full := make([]Middleware, 0, len(scoped)+len(rt.mw))
		full = append(full, scoped...)
		full = append(full, rt.mw...)
		dst.handle(rt.method, joinPrefix(prefix, rt.path), rt.handler, full...)
	}
	for _, child := range s.children {
		childScoped := make([]Middleware, 0, len(scoped)+len(child.mw))
		childScoped = append(childScoped, scoped...)
		childScoped = append(childScoped, child.mw...)
		child.sub.flatten(dst, joinPrefix(prefix, child.prefix), childScoped)
	}
}
