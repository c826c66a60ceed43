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
	"net/url"
	"strings"
)

// segmentKind distinguishes a literal path segment from a ":name" capture.
type segmentKind int

const (
	segStatic segmentKind = iota
	segDynamic
)

type segment struct {
	kind segmentKind
	text string // literal value (segStatic) or param name (segDynamic)
}

// PathPattern is a compiled route path, ready for segment-by-segment
// matching against an incoming request path. Compilation happens once at
// registration time; matching never re-parses the pattern string.
type PathPattern struct {
	raw      string
	segments []segment
}

// CompilePattern parses a route path such as "/users/:id/posts" into a
// PathPattern. Segment values are percent-decoded at match time, not at
// compile time, since only the request path is percent-encoded on the wire.
func CompilePattern(p string) *PathPattern {
	parts := splitPath(p)
	segs := make([]segment, 0, len(parts))
	seen := make(map[string]struct{})
	for _, s := range parts {
		if strings.HasPrefix(s, ":") && len(s) > 1 {
			name := s[1:]
			if _, dup := seen[name]; dup {
				panic("quokka: duplicate path parameter name \"" + name + "\" in pattern " + p)
			}
			seen[name] = struct{}{}
			segs = append(segs, segment{kind: segDynamic, text: name})
		} else {
			segs = append(segs, segment{kind: segStatic, text: s})
		}
	}
	return &PathPattern{raw: p, segments: segs}
}

// String returns the original pattern text.
func (pp *PathPattern) String() string { return pp.raw }

// Match compares path against the compiled pattern. On success it returns
// the captured path parameters and true. Matching requires an exact
// segment-count match; there is no wildcard/catch-all segment in this
// pattern language. path is expected to still be percent-encoded (the raw
// wire path); Match is the only place that decodes it, one segment at a
// time. A segment that fails to decode is a malformed request, not a
// non-match, so it is reported as a BadRequest error rather than treated as
// a literal.
func (pp *PathPattern) Match(path string) (map[string]string, bool, error) {
	parts := splitPath(path)
	if len(parts) != len(pp.segments) {
		return nil, false, nil
	}
	var params map[string]string
	for i, seg := range pp.segments {
		raw := parts[i]
		decoded, err := url.PathUnescape(raw)
		if err != nil {
			return nil, false, NewBadRequest("invalid percent-encoding in path segment \"" + raw + "\"")
		}
		switch seg.kind {
		case segStatic:
			if seg.text != decoded {
				return nil, false, nil
			}
		case segDynamic:
			if params == nil {
				params = make(map[string]string, len(pp.segments))
			}
			params[seg.text] = decoded
		}
	}
	if params == nil {
		params = map[string]string{}
	}
	return params, true, nil
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return []string{}
	}
	raw := strings.Split(p, "/")
	parts := raw[:0]
	for _, s := range raw {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return parts
}

// joinPrefix associatively composes a mount prefix with a route path, the
// way nested SubRouter.Mount calls accumulate prefixes.
func joinPrefix(prefix, p string) string {
	prefix = strings.Trim(prefix, "/")
	p = strings.TrimPrefix(p, "/")
	switch {
	case prefix == "" && p == "":
		return "/"
	case prefix == "":
		return "/" + p
	case p == "":
		return "/" + prefix
	default:
		return "/" + prefix + "/" + p
	}
}
