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
	"bytes"
	"compress/gzip"
	"strings"

	q "github.com/jrgalyan/quokka"
)

// GzipConfig configures the Gzip middleware.
type GzipConfig struct {
	Level     int
	MinLength int
}

var skippedContentTypes = []string{
	"image/", "video/", "audio/",
	"application/zip", "application/gzip", "application/x-gzip",
	"application/x-compressed", "application/x-bzip2", "application/x-xz",
	"application/zstd", "application/wasm",
}

func shouldSkipContentType(ct string) bool {
	ct = strings.ToLower(ct)
	for _, skip := range skippedContentTypes {
		if strings.HasPrefix(ct, skip) {
			return true
		}
	}
	return false
}

// Gzip compresses the produced Response body with gzip when the client
// advertises Accept-Encoding: gzip, the body is at least MinLength bytes,
// and the content type is not already a compressed format. Because a
// Response is a fully-buffered value rather than a stream, compression
// here is a pure body transform applied after Next.run returns, with no
// writer wrapping needed.
func Gzip(cfg GzipConfig) q.Middleware {
	if cfg.Level == 0 {
		cfg.Level = gzip.DefaultCompression
	}
	if cfg.MinLength <= 0 {
		cfg.MinLength = 256
	}

	return func(next q.Next) q.Handler {
		return func(req *q.Request) (*q.Response, error) {
			resp, err := next(req)
			if err != nil || resp == nil {
				return resp, err
			}
			if !strings.Contains(req.Header("Accept-Encoding"), "gzip") {
				return resp, nil
			}
			body := resp.Body()
			if len(body) < cfg.MinLength || shouldSkipContentType(resp.Header("Content-Type")) {
				return resp.WithHeader("Vary", "Accept-Encoding"), nil
			}

			var buf bytes.Buffer
			gw, gerr := gzip.NewWriterLevel(&buf, cfg.Level)
			if gerr != nil {
				gw = gzip.NewWriter(&buf)
			}
			if _, werr := gw.Write(body); werr != nil {
				return resp.WithHeader("Vary", "Accept-Encoding"), nil
			}
			if cerr := gw.Close(); cerr != nil {
				return resp.WithHeader("Vary", "Accept-Encoding"), nil
			}

			ct := resp.Header("Content-Type")
			out := resp.WithBody(buf.Bytes(), ct).
				WithHeader("Content-Encoding", "gzip").
				WithHeader("Vary", "Accept-Encoding")
			return out, nil
		}
	}
}
