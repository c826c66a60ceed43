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

var _ = Describe("PathPattern", func() {
	It("matches a purely static pattern", func() {
		pp := q.CompilePattern("/users/profile")
		params, ok, err := pp.Match("/users/profile")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(params).To(BeEmpty())
	})

	It("treats a leading/trailing slash as equivalent to none", func() {
		pp := q.CompilePattern("/a/b")
		_, ok, err := pp.Match("a/b/")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
	})

	It("captures a single dynamic segment", func() {
		pp := q.CompilePattern("/users/:id")
		params, ok, err := pp.Match("/users/42")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(params).To(Equal(map[string]string{"id": "42"}))
	})

	It("rejects a path with a different segment count", func() {
		pp := q.CompilePattern("/users/:id")
		_, ok, err := pp.Match("/users/42/posts")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	It("percent-decodes a dynamic segment before binding", func() {
		pp := q.CompilePattern("/hello/:name")
		params, ok, err := pp.Match("/hello/world%20peace")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(params["name"]).To(Equal("world peace"))
	})

	It("percent-decodes a static segment before comparing it", func() {
		pp := q.CompilePattern("/a b/x")
		_, ok, err := pp.Match("/a%20b/x")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
	})

	It("rejects an empty dynamic segment", func() {
		pp := q.CompilePattern("/users/:id")
		_, ok, err := pp.Match("/users/")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	It("surfaces a BadRequest error for malformed percent-encoding instead of matching literally", func() {
		pp := q.CompilePattern("/users/:id")
		params, ok, err := pp.Match("/users/%zz")
		Expect(ok).To(BeFalse())
		Expect(params).To(BeNil())
		Expect(err).To(HaveOccurred())
		qerr, isQErr := q.AsError(err)
		Expect(isQErr).To(BeTrue())
		Expect(qerr.Status()).To(Equal(http.StatusBadRequest))
	})

	It("round-trips the original pattern text via String", func() {
		pp := q.CompilePattern("/a/:b/c")
		Expect(pp.String()).To(Equal("/a/:b/c"))
	})

	It("rejects a pattern with a duplicate dynamic segment name", func() {
		Expect(func() { q.CompilePattern("/users/:id/posts/:id") }).To(Panic())
	})
})
