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

// Package middleware collects ambient, opt-in Middleware values: request
// correlation, structured logging, panic recovery, CORS, security headers,
// gzip, rate limiting, body limits, JWT auth, and request timeouts. None of
// these are part of the routing/chain core; an application wires in
// whichever it needs via App.Use or SubRouter.Use.
package middleware

import (
	"github.com/google/uuid"

	q "github.com/jrgalyan/quokka"
)

var requestIDKey = q.NewExtKey("request_id")

// RequestID returns the correlation id attached to req by the RequestID
// middleware, if any.
func RequestID(req *q.Request) (string, bool) {
	return q.Extension[string](req, requestIDKey)
}

// RequestIDMiddleware stamps every request with a correlation id, reusing
// an inbound X-Request-Id header when the caller already supplied one so
// ids stay stable across a call chain, and otherwise minting a fresh
// google/uuid v4. The id is made available to downstream
// middleware/handlers via RequestID and echoed back on the response; a
// result returned as an error passes through without the header.
func RequestIDMiddleware() q.Middleware {
	return func(next q.Next) q.Handler {
		return func(req *q.Request) (*q.Response, error) {
			id := req.Header("X-Request-Id")
			if id == "" {
				id = uuid.NewString()
			}
			req = q.WithExtension(req, requestIDKey, id)
			resp, err := next(req)
			if err != nil {
				return resp, err
			}
			if resp == nil {
				resp = q.NoContent()
			}
			return resp.WithHeader("X-Request-Id", id), nil
		}
	}
}
