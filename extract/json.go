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

package extract

import (
	"github.com/go-chi/render"

	q "github.com/jrgalyan/quokka"
)

// Json decodes the request body as JSON into a T using go-chi/render's
// DecodeJSON (the Content-Type header is not consulted), then
// validates T if it carries `validate` tags. A malformed body surfaces as
// a JSONParseError; a struct that fails validation surfaces as a
// BadRequest.
func Json[T any](req *q.Request) (T, error) {
	var dst T
	if err := render.DecodeJSON(req.Body(), &dst); err != nil {
		return dst, q.NewJSONParseError(err)
	}
	if err := validateStruct(&dst); err != nil {
		return dst, q.NewBadRequest(err.Error())
	}
	return dst, nil
}
