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

	q "github.com/jrgalyan/quokka"
)

// SecurityHeadersConfig configures the SecurityHeaders middleware.
type SecurityHeadersConfig struct {
	HSTSMaxAge            int
	HSTSIncludeSubdomains bool
	HSTSPreload           bool
	ContentTypeNosniff    bool
	FrameOption           string
	ReferrerPolicy        string
}

// DefaultSecurityHeadersConfig returns production-sensible defaults.
func DefaultSecurityHeadersConfig() SecurityHeadersConfig {
	return SecurityHeadersConfig{
		HSTSMaxAge:            63072000,
		HSTSIncludeSubdomains: true,
		ContentTypeNosniff:    true,
		FrameOption:           "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}
}

// SecurityHeaders sets HSTS, X-Content-Type-Options, X-Frame-Options, and
// Referrer-Policy on every response the chain returns; a result returned as
// an error passes through without them.
func SecurityHeaders(cfg SecurityHeadersConfig) q.Middleware {
	var hstsValue string
	if cfg.HSTSMaxAge > 0 {
		hstsValue = fmt.Sprintf("max-age=%d", cfg.HSTSMaxAge)
		if cfg.HSTSIncludeSubdomains {
			hstsValue += "; includeSubDomains"
		}
		if cfg.HSTSPreload {
			hstsValue += "; preload"
		}
	}

	return func(next q.Next) q.Handler {
		return func(req *q.Request) (*q.Response, error) {
			resp, err := next(req)
			if err != nil || resp == nil {
				return resp, err
			}
			if hstsValue != "" {
				resp = resp.WithHeader("Strict-Transport-Security", hstsValue)
			}
			if cfg.ContentTypeNosniff {
				resp = resp.WithHeader("X-Content-Type-Options", "nosniff")
			}
			if cfg.FrameOption != "" {
				resp = resp.WithHeader("X-Frame-Options", cfg.FrameOption)
			}
			if cfg.ReferrerPolicy != "" {
				resp = resp.WithHeader("Referrer-Policy", cfg.ReferrerPolicy)
			}
			return resp, nil
		}
	}
}
