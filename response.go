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
	"encoding/json"
	"net/http"
)

// Response is an immutable builder for an outgoing HTTP response: a status
// code, a header set, and a body. Every With* method returns a new Response;
// none mutate the receiver, so a middleware can safely hold onto a Response
// returned by Next.run while deciding whether to pass it on unchanged.
type Response struct {
	status  int
	headers http.Header
	body    []byte
}

// NewResponse creates a bare 200 OK response with no body.
func NewResponse() *Response {
	return &Response{status: http.StatusOK, headers: http.Header{}}
}

func (resp *Response) clone() *Response {
	h := make(http.Header, len(resp.headers))
	for k, v := range resp.headers {
		vc := make([]string, len(v))
		copy(vc, v)
		h[k] = vc
	}
	body := make([]byte, len(resp.body))
	copy(body, resp.body)
	return &Response{status: resp.status, headers: h, body: body}
}

// Status returns the current status code.
func (resp *Response) Status() int { return resp.status }

// Header returns the current value of the named header.
func (resp *Response) Header(name string) string { return resp.headers.Get(name) }

// Body returns the current body bytes.
func (resp *Response) Body() []byte { return resp.body }

// WithStatus returns a Response with the given status code.
func (resp *Response) WithStatus(code int) *Response {
	cp := resp.clone()
	cp.status = code
	return cp
}

// WithHeader returns a Response with name set to value. An existing value
// for name is replaced, matching net/http's canonical header semantics.
func (resp *Response) WithHeader(name, value string) *Response {
	cp := resp.clone()
	cp.headers.Set(name, value)
	return cp
}

// WithBody returns a Response carrying the given raw bytes and content type.
// A header already set via WithHeader for "Content-Type" is preserved if
// contentType is empty.
func (resp *Response) WithBody(body []byte, contentType string) *Response {
	cp := resp.clone()
	cp.body = body
	if contentType != "" {
		cp.headers.Set("Content-Type", contentType)
	}
	return cp
}

// JSON marshals v and returns a Response with Content-Type
// "application/json; charset=utf-8" and the given status. A marshal
// failure surfaces as a JSONSerializeError rather than a panic.
func JSON(status int, v any) (*Response, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, NewJSONSerializeError(err)
	}
	return NewResponse().WithStatus(status).WithBody(b, "application/json; charset=utf-8"), nil
}

// Text returns a Response with Content-Type "text/plain; charset=utf-8".
func Text(status int, s string) *Response {
	return NewResponse().WithStatus(status).WithBody([]byte(s), "text/plain; charset=utf-8")
}

// NoContent returns a bodyless 204 response.
func NoContent() *Response {
	return NewResponse().WithStatus(http.StatusNoContent)
}

// write flushes the Response onto an http.ResponseWriter exactly once, the
// only point in the framework where a value actually reaches the wire.
func (resp *Response) write(w http.ResponseWriter) {
	h := w.Header()
	for k, v := range resp.headers {
		h[k] = v
	}
	status := resp.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if len(resp.body) > 0 {
		_, _ = w.Write(resp.body)
	}
}

// errorResponse projects a quokka *Error onto a Response.
func errorResponse(err *Error) *Response {
	resp, mErr := JSON(err.Status(), err.Respond())
	if mErr != nil {
		// Marshaling ErrorResponse itself cannot fail; this is unreachable
		// in practice but keeps write() total.
		return Text(http.StatusInternalServerError, "internal server error")
	}
	if err.Kind == KindMethodNotAllowed && err.Allow() != "" {
		resp = resp.WithHeader("Allow", err.Allow())
	}
	return resp
}
