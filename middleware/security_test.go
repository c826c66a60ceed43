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

package middleware_test

import (
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	q "github.com/jrgalyan/quokka"
	mw "github.com/jrgalyan/quokka/middleware"
)

var _ = Describe("SecurityHeaders", func() {
	It("sets the default hardening headers", func() {
		app := q.New()
		app.Use(mw.SecurityHeaders(mw.DefaultSecurityHeadersConfig()))
		app.GET("/x", func(req *q.Request) (*q.Response, error) { return q.NoContent(), nil })

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

		Expect(w.Header().Get("X-Content-Type-Options")).To(Equal("nosniff"))
		Expect(w.Header().Get("X-Frame-Options")).To(Equal("DENY"))
		Expect(w.Header().Get("Strict-Transport-Security")).To(ContainSubstring("max-age=63072000"))
		Expect(w.Header().Get("Referrer-Policy")).To(Equal("strict-origin-when-cross-origin"))
	})

	It("omits HSTS when HSTSMaxAge is zero", func() {
		app := q.New()
		app.Use(mw.SecurityHeaders(mw.SecurityHeadersConfig{}))
		app.GET("/x", func(req *q.Request) (*q.Response, error) { return q.NoContent(), nil })

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		Expect(w.Header().Get("Strict-Transport-Security")).To(BeEmpty())
	})
})

var _ = Describe("BodyLimit", func() {
	It("bounds the body reader without altering a short body", func() {
		app := q.New()
		app.Use(mw.BodyLimit(1024))
		app.POST("/x", func(req *q.Request) (*q.Response, error) {
			b := make([]byte, 5)
			n, _ := req.Body().Read(b)
			return q.Text(http.StatusOK, string(b[:n])), nil
		})

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/x", nil)
		app.ServeHTTP(w, r)
		Expect(w.Code).To(Equal(http.StatusOK))
	})
})
