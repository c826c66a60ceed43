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
	"context"
	"io"
	"net/http"
	"net/url"
)

// extKey is a key for the Request extensions slot map. Each middleware
// creates its own key with NewExtKey (following the ctxKeyRequestID
// pattern); every call yields a distinct key, so two unrelated middlewares
// can never collide even if they pick the same name.
type extKey struct {
	name string
	id   *int
}

// NewExtKey creates a fresh, comparable key for storing a value on a
// Request's extensions map. name is descriptive only.
func NewExtKey(name string) extKey { return extKey{name: name, id: new(int)} }

// Request is an immutable view over an incoming HTTP request: method, path,
// headers, path params, query values, body, and a middleware-writable
// extensions slot. Handlers and middleware never mutate the http.Request
// directly; instead WithExtension/WithContext return a new Request that
// shares the same underlying body reader.
type Request struct {
	raw     *http.Request
	method  Method
	path    string
	params  map[string]string
	query   url.Values
	ext     map[extKey]any
	maxBody int64
}

func newRequest(r *http.Request, params map[string]string) *Request {
	m, _ := methodFromString(r.Method)
	return &Request{
		raw:    r,
		method: m,
		// EscapedPath, not Path: net/http has already decoded Path once, and
		// PathPattern.Match decodes each segment itself, so feeding it Path
		// would decode twice and collapse an encoded "/" (%2F) early.
		path:   r.URL.EscapedPath(),
		params: params,
		query:  r.URL.Query(),
		ext:    map[extKey]any{},
	}
}

// clone returns a shallow copy suitable for attaching a new extension or a
// new context without disturbing the original value seen by earlier
// middleware in the chain.
func (req *Request) clone() *Request {
	cp := *req
	cp.ext = make(map[extKey]any, len(req.ext)+1)
	for k, v := range req.ext {
		cp.ext[k] = v
	}
	return &cp
}

// Method returns the request's HTTP method.
func (req *Request) Method() Method { return req.method }

// Path returns the request's URL path, still percent-encoded as it arrived
// on the wire.
func (req *Request) Path() string { return req.path }

// Param returns the named path parameter, and whether it was present.
func (req *Request) Param(name string) (string, bool) {
	v, ok := req.params[name]
	return v, ok
}

// Params returns the full set of captured path parameters.
func (req *Request) Params() map[string]string { return req.params }

// Query returns the first value for key, per the "first occurrence wins"
// multi-value resolution rule.
func (req *Request) Query(key string) string { return req.query.Get(key) }

// QueryAll returns every value supplied for key, in request order.
func (req *Request) QueryAll(key string) []string { return req.query[key] }

// Header returns the named request header.
func (req *Request) Header(name string) string { return req.raw.Header.Get(name) }

// Headers returns the full, read-only request header set.
func (req *Request) Headers() http.Header { return req.raw.Header }

// Body returns the request body reader, bounded by the configured max body
// size (see BodyLimit middleware); 0 means unbounded.
func (req *Request) Body() io.ReadCloser {
	if req.maxBody > 0 {
		return http.MaxBytesReader(nil, req.raw.Body, req.maxBody)
	}
	return req.raw.Body
}

// Context returns the request's context.Context.
func (req *Request) Context() context.Context { return req.raw.Context() }

// WithContext returns a Request carrying ctx, leaving req unmodified.
func (req *Request) WithContext(ctx context.Context) *Request {
	cp := req.clone()
	cp.raw = req.raw.WithContext(ctx)
	return cp
}

// WithBodyLimit returns a Request whose Body() reader is bounded to
// maxBytes, leaving req unmodified.
func WithBodyLimit(req *Request, maxBytes int64) *Request {
	cp := req.clone()
	cp.maxBody = maxBytes
	return cp
}

// WithExtension returns a Request with key bound to value, leaving req
// unmodified. This is how middleware hands data downstream to the next
// link in the chain (and, eventually, the handler) without a shared
// mutable side channel.
func WithExtension[T any](req *Request, key extKey, value T) *Request {
	cp := req.clone()
	cp.ext[key] = value
	return cp
}

// Extension retrieves a value previously attached with WithExtension.
func Extension[T any](req *Request, key extKey) (T, bool) {
	var zero T
	v, ok := req.ext[key]
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// Raw exposes the underlying *http.Request for interop with net/http-based
// libraries (file serving, cookies, TLS state) that the Request view does
// not wrap directly.
func (req *Request) Raw() *http.Request { return req.raw }
