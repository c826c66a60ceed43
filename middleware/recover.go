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
	"fmt"
	"log/slog"
	"runtime/debug"

	q "github.com/jrgalyan/quokka"
)

// Recover turns a panic anywhere downstream into an InternalServerError
// instead of crashing the serving goroutine.
func Recover(logger *slog.Logger) q.Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next q.Next) q.Handler {
		return func(req *q.Request) (resp *q.Response, err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("panic recovered", slog.Any("err", r), slog.String("stack", string(debug.Stack())))
					resp = nil
					err = q.NewInternalServerError(fmt.Errorf("panic: %v", r))
				}
			}()
			return next(req)
		}
	}
}
