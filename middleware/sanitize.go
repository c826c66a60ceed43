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

import "strings"

// SanitizeConfig names path parameters whose values should be redacted
// before a request path is written to the access log.
type SanitizeConfig struct {
	// Params is the list of path parameter names to redact (without the
	// leading ":").
	Params []string

	// Mask is the replacement string for redacted values. Default: "***".
	Mask string
}

// Sanitizer redacts configured path parameter values out of a logged path.
// A nil *Sanitizer is a no-op, so callers can skip a nil check.
type Sanitizer struct {
	mask     string
	paramSet map[string]struct{}
}

// NewSanitizer builds a Sanitizer from cfg. It returns nil when there is
// nothing to redact.
func NewSanitizer(cfg SanitizeConfig) *Sanitizer {
	if len(cfg.Params) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(cfg.Params))
	for _, p := range cfg.Params {
		set[p] = struct{}{}
	}
	mask := cfg.Mask
	if mask == "" {
		mask = "***"
	}
	return &Sanitizer{mask: mask, paramSet: set}
}

// Path returns path with any segment matching a redacted param's value
// replaced by the mask.
func (s *Sanitizer) Path(path string, params map[string]string) string {
	if s == nil || len(s.paramSet) == 0 {
		return path
	}
	redact := make(map[string]struct{}, len(s.paramSet))
	for name := range s.paramSet {
		if v, ok := params[name]; ok && v != "" {
			redact[v] = struct{}{}
		}
	}
	if len(redact) == 0 {
		return path
	}
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if _, found := redact[seg]; found {
			segments[i] = s.mask
		}
	}
	return strings.Join(segments, "/")
}
