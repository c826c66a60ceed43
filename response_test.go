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

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	q "github.com/jrgalyan/quokka"
)

var _ = Describe("Response", func() {
	It("defaults to 200 OK with no body", func() {
		resp := q.NewResponse()
		Expect(resp.Status()).To(Equal(http.StatusOK))
		Expect(resp.Body()).To(BeEmpty())
	})

	It("never mutates the receiver across With* calls", func() {
		base := q.NewResponse()
		withStatus := base.WithStatus(http.StatusCreated)
		withHeader := withStatus.WithHeader("X-Trace", "abc")

		Expect(base.Status()).To(Equal(http.StatusOK))
		Expect(withStatus.Status()).To(Equal(http.StatusCreated))
		Expect(withStatus.Header("X-Trace")).To(BeEmpty())
		Expect(withHeader.Header("X-Trace")).To(Equal("abc"))
	})

	It("sets the JSON content type and marshals the value", func() {
		resp, err := q.JSON(http.StatusOK, map[string]int{"n": 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.Header("Content-Type")).To(Equal("application/json; charset=utf-8"))
		Expect(string(resp.Body())).To(Equal(`{"n":1}`))
	})

	It("surfaces a marshal failure as a JSONSerializeError instead of panicking", func() {
		_, err := q.JSON(http.StatusOK, make(chan int))
		Expect(err).To(HaveOccurred())
		qerr, ok := q.AsError(err)
		Expect(ok).To(BeTrue())
		Expect(qerr.Kind).To(Equal(q.KindJSONSerializeError))
	})

	It("sets the plain text content type", func() {
		resp := q.Text(http.StatusTeapot, "hi")
		Expect(resp.Status()).To(Equal(http.StatusTeapot))
		Expect(resp.Header("Content-Type")).To(Equal("text/plain; charset=utf-8"))
		Expect(string(resp.Body())).To(Equal("hi"))
	})

	It("returns a bodyless 204 for NoContent", func() {
		resp := q.NoContent()
		Expect(resp.Status()).To(Equal(http.StatusNoContent))
		Expect(resp.Body()).To(BeEmpty())
	})
})
