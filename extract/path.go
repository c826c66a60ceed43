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

// Path binds the route's captured path parameters into a T (a struct whose
// fields carry `path:"name"` tags matching the pattern's dynamic
// segments), then validates it if T carries `validate` tags. Any binding
// or validation failure is returned as a BadRequest error.
func Path[T any](req *q.Request) (T, error) {
	var dst T
	params := req.Params()
	get := func(key string) (string, bool) { v, ok := params[key]; return v, ok }
	if err := bindValues(get, &dst, "path"); err != nil {
		return dst, q.NewBadRequest(err.Error())
	}
	if err := validateStruct(&dst); err != nil {
		return dst, q.NewBadRequest(err.Error())
	}
	return dst, nil
}

// PathValue returns a single path parameter by name, or a BadRequest error
// if it is absent, for handlers that only need one scalar value.
func PathValue(req *q.Request, name string) (string, error) {
	v, ok := req.Param(name)
	if !ok {
		return "", q.NewBadRequest("missing path parameter " + name)
	}
	return v, nil
}
