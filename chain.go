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

// Next is the continuation a Middleware invokes to run the rest of the
// chain (the next middleware, or ultimately the route Handler). Its result
// is the same (Response, error) pair the terminal Handler would have
// produced, which lets a Middleware inspect, transform, or discard it
// before returning its own result.
type Next func(*Request) (*Response, error)

// Middleware wraps a Next continuation to produce a Handler. A Middleware
// that never calls its Next parameter short-circuits the chain: nothing
// after it, including the route Handler, runs.
type Middleware func(Next) Handler

// chain composes middlewares around a final handler in registration order:
// the first-registered Middleware is the outermost wrapper and observes
// the request first and the result last, matching spec's middleware
// ordering invariant.
func chain(mw []Middleware, h Handler) Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		next := Next(h)
		h = mw[i](next)
	}
	return h
}
