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

import (
	"context"
	"time"

	q "github.com/jrgalyan/quokka"
)

// Timeout races Next.run against d. If d elapses before the rest of the
// chain produces a result, a Custom 504 error is returned and the
// request's context is cancelled so a well-behaved handler downstream can
// observe ctx.Done() and abandon its work; the goroutine running Next.run
// is not forcibly killed (Go has no such primitive), only abandoned.
func Timeout(d time.Duration) q.Middleware {
	return func(next q.Next) q.Handler {
		return func(req *q.Request) (*q.Response, error) {
			if d <= 0 {
				return next(req)
			}
			ctx, cancel := context.WithTimeout(req.Context(), d)
			defer cancel()
			req = req.WithContext(ctx)

			type result struct {
				resp *q.Response
				err  error
			}
			done := make(chan result, 1)
			go func() {
				resp, err := next(req)
				done <- result{resp, err}
			}()

			select {
			case res := <-done:
				return res.resp, res.err
			case <-ctx.Done():
				return nil, q.NewCustomError(504, "request timed out")
			}
		}
	}
}
