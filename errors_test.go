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
	"errors"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	q "github.com/jrgalyan/quokka"
)

var _ = Describe("Error taxonomy", func() {
	DescribeTable("projects to its fixed HTTP status",
		func(err *q.Error, wantStatus int) {
			Expect(err.Status()).To(Equal(wantStatus))
		},
		Entry("RouteNotFound", q.NewRouteNotFound("/x"), http.StatusNotFound),
		Entry("MethodNotAllowed", q.NewMethodNotAllowed([]string{"GET"}), http.StatusMethodNotAllowed),
		Entry("BadRequest", q.NewBadRequest("bad"), http.StatusBadRequest),
		Entry("Unauthorized", q.NewUnauthorized("nope"), http.StatusUnauthorized),
		Entry("Forbidden", q.NewForbidden("nope"), http.StatusForbidden),
		Entry("InternalServerError", q.NewInternalServerError(nil), http.StatusInternalServerError),
		Entry("JSONParseError", q.NewJSONParseError(errors.New("x")), http.StatusBadRequest),
		Entry("JSONSerializeError", q.NewJSONSerializeError(errors.New("x")), http.StatusInternalServerError),
		Entry("Custom", q.NewCustomError(418, "teapot"), http.StatusTeapot),
	)

	It("never leaks the internal cause of a 5xx error on the wire", func() {
		err := q.NewInternalServerError(errors.New("db connection string: secret"))
		Expect(err.SafeMessage()).To(Equal("internal server error"))
		Expect(err.SafeMessage()).NotTo(ContainSubstring("secret"))
	})

	It("preserves the message of a 4xx error on the wire", func() {
		err := q.NewBadRequest("title is required")
		Expect(err.SafeMessage()).To(Equal("title is required"))
	})

	It("sets the Allow header when a MethodNotAllowed error reaches the wire", func() {
		app := q.New()
		app.GET("/x", func(req *q.Request) (*q.Response, error) { return q.NoContent(), nil })

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
		Expect(w.Code).To(Equal(http.StatusMethodNotAllowed))
		Expect(w.Header().Get("Allow")).To(Equal("GET"))
	})

	It("renders the nested {error:{status,message}} wire shape for an unmatched route", func() {
		app := q.New()
		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(w.Body.String()).To(MatchJSON(`{"error":{"status":404,"message":"no route matches /nope"}}`))
	})

	It("omits details on a 5xx projection but includes the scrubbed message", func() {
		resp := q.NewInternalServerError(errors.New("secret internals")).Respond()
		Expect(resp.Error.Details).To(BeEmpty())
		Expect(resp.Error.Message).To(Equal("internal server error"))
	})
})
