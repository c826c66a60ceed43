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

package quokka_test

import (
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	q "github.com/jrgalyan/quokka"
)

var _ = Describe("Middleware chain", func() {
	It("runs middleware in registration order, wrapping outward to inward", func() {
		app := q.New()
		var order []string

		trace := func(name string) q.Middleware {
			return func(next q.Next) q.Handler {
				return func(req *q.Request) (*q.Response, error) {
					order = append(order, name+"-before")
					resp, err := next(req)
					order = append(order, name+"-after")
					return resp, err
				}
			}
		}

		app.Use(trace("first"), trace("second"))
		app.GET("/order", func(req *q.Request) (*q.Response, error) {
			order = append(order, "handler")
			return q.NoContent(), nil
		}, trace("route"))

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/order", nil))

		Expect(order).To(Equal([]string{
			"first-before", "second-before", "route-before",
			"handler",
			"route-after", "second-after", "first-after",
		}))
	})

	It("short-circuits the chain when middleware does not call Next", func() {
		app := q.New()
		handlerRan := false

		app.Use(func(next q.Next) q.Handler {
			return func(req *q.Request) (*q.Response, error) {
				return q.NewResponse().WithStatus(http.StatusForbidden), nil
			}
		})
		app.GET("/blocked", func(req *q.Request) (*q.Response, error) {
			handlerRan = true
			return q.NoContent(), nil
		})

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/blocked", nil))

		Expect(w.Code).To(Equal(http.StatusForbidden))
		Expect(handlerRan).To(BeFalse())
	})

	It("lets outer middleware transform the error an inner handler returns", func() {
		app := q.New()

		app.Use(func(next q.Next) q.Handler {
			return func(req *q.Request) (*q.Response, error) {
				resp, err := next(req)
				if _, isErr := q.AsError(err); isErr {
					return q.Text(http.StatusTeapot, "intercepted"), nil
				}
				return resp, err
			}
		})
		app.GET("/fail", func(req *q.Request) (*q.Response, error) {
			return nil, q.NewInternalServerError(nil)
		})

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))
		Expect(w.Code).To(Equal(http.StatusTeapot))
		Expect(w.Body.String()).To(Equal("intercepted"))
	})
})
