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
	"net/http"
	"strconv"
	"strings"

	q "github.com/jrgalyan/quokka"
)

// CORSConfig configures the CORS middleware.
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	MaxAge           int
	AllowCredentials bool
}

// DefaultCORSConfig returns sensible defaults.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodHead, http.MethodOptions,
		},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-Id"},
		MaxAge:       86400,
	}
}

// CORS handles Cross-Origin Resource Sharing, including preflight
// short-circuiting on OPTIONS requests that carry an
// Access-Control-Request-Method header.
func CORS(cfg CORSConfig) q.Middleware {
	allowMethodsStr := strings.Join(cfg.AllowMethods, ", ")
	allowHeadersStr := strings.Join(cfg.AllowHeaders, ", ")
	exposeHeadersStr := strings.Join(cfg.ExposeHeaders, ", ")
	maxAgeStr := strconv.Itoa(cfg.MaxAge)
	allowAll := len(cfg.AllowOrigins) == 1 && cfg.AllowOrigins[0] == "*"

	return func(next q.Next) q.Handler {
		return func(req *q.Request) (*q.Response, error) {
			origin := req.Header("Origin")
			if origin == "" {
				return next(req)
			}
			if !allowAll && !originAllowed(origin, cfg.AllowOrigins) {
				return next(req)
			}

			allowOriginValue := "*"
			if cfg.AllowCredentials || !allowAll {
				allowOriginValue = origin
			}

			if req.Method() == q.MethodOptions && req.Header("Access-Control-Request-Method") != "" {
				resp := q.NoContent().
					WithHeader("Access-Control-Allow-Origin", allowOriginValue).
					WithHeader("Access-Control-Allow-Methods", allowMethodsStr).
					WithHeader("Access-Control-Allow-Headers", allowHeadersStr).
					WithHeader("Vary", "Origin, Access-Control-Request-Method, Access-Control-Request-Headers")
				if cfg.MaxAge > 0 {
					resp = resp.WithHeader("Access-Control-Max-Age", maxAgeStr)
				}
				if cfg.AllowCredentials {
					resp = resp.WithHeader("Access-Control-Allow-Credentials", "true")
				}
				return resp, nil
			}

			resp, err := next(req)
			if err != nil || resp == nil {
				return resp, err
			}
			resp = resp.WithHeader("Access-Control-Allow-Origin", allowOriginValue).WithHeader("Vary", "Origin")
			if cfg.AllowCredentials {
				resp = resp.WithHeader("Access-Control-Allow-Credentials", "true")
			}
			if exposeHeadersStr != "" {
				resp = resp.WithHeader("Access-Control-Expose-Headers", exposeHeadersStr)
			}
			return resp, nil
		}
	}
}

func originAllowed(origin string, allowed []string) bool {
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}
