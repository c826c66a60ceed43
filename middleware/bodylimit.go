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

package middleware

import q "github.com/jrgalyan/quokka"

// KB, MB, and GB are convenience byte-count constants for BodyLimit.
const (
	KB = 1 << 10
	MB = 1 << 20
	GB = 1 << 30
)

// BodyLimit caps the request body at maxBytes; reads past the limit fail
// with http.MaxBytesReader's error, which extractors surface as a
// BadRequest. A maxBytes of 0 or negative disables the limit.
func BodyLimit(maxBytes int64) q.Middleware {
	return func(next q.Next) q.Handler {
		return func(req *q.Request) (*q.Response, error) {
			return next(q.WithBodyLimit(req, maxBytes))
		}
	}
}
