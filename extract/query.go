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
	q "github.com/jrgalyan/quokka"
)

// Query binds the request's query string into a T (a struct whose fields
// carry `query:"name"` tags), resolving a repeated key by its first
// occurrence per quokka.Request.Query, then validates T if it carries
// `validate` tags.
func Query[T any](req *q.Request) (T, error) {
	var dst T
	get := func(key string) (string, bool) {
		v := req.Query(key)
		return v, v != ""
	}
	if err := bindValues(get, &dst, "query"); err != nil {
		return dst, q.NewBadRequest(err.Error())
	}
	if err := validateStruct(&dst); err != nil {
		return dst, q.NewBadRequest(err.Error())
	}
	return dst, nil
}
