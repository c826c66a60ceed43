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

var _ = Describe("CORS", func() {
	It("short-circuits a preflight OPTIONS request", func() {
		app := q.New()
		app.Use(mw.CORS(mw.DefaultCORSConfig()))
		handlerRan := false
		app.GET("/widgets", func(req *q.Request) (*q.Response, error) {
			handlerRan = true
			return q.NoContent(), nil
		})
		app.OPTIONS("/widgets", func(req *q.Request) (*q.Response, error) { return q.NoContent(), nil })

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodOptions, "/widgets", nil)
		r.Header.Set("Origin", "https://example.com")
		r.Header.Set("Access-Control-Request-Method", "GET")
		app.ServeHTTP(w, r)

		Expect(w.Code).To(Equal(http.StatusNoContent))
		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
		Expect(handlerRan).To(BeFalse())
	})

	It("adds CORS headers to a normal response when an Origin is present", func() {
		app := q.New()
		app.Use(mw.CORS(mw.DefaultCORSConfig()))
		app.GET("/widgets", func(req *q.Request) (*q.Response, error) { return q.NoContent(), nil })

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/widgets", nil)
		r.Header.Set("Origin", "https://example.com")
		app.ServeHTTP(w, r)

		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
	})

	It("reflects the origin and sets credentials when AllowCredentials is set", func() {
		cfg := mw.DefaultCORSConfig()
		cfg.AllowCredentials = true
		app := q.New()
		app.Use(mw.CORS(cfg))
		app.GET("/widgets", func(req *q.Request) (*q.Response, error) { return q.NoContent(), nil })

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/widgets", nil)
		r.Header.Set("Origin", "https://example.com")
		app.ServeHTTP(w, r)

		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("https://example.com"))
		Expect(w.Header().Get("Access-Control-Allow-Credentials")).To(Equal("true"))
	})

	It("does not set CORS headers when there is no Origin header", func() {
		app := q.New()
		app.Use(mw.CORS(mw.DefaultCORSConfig()))
		app.GET("/widgets", func(req *q.Request) (*q.Response, error) { return q.NoContent(), nil })

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/widgets", nil))
		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
	})
})
