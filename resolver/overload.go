/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package resolver

import (
	"reflect"

	"go.uber.org/zap"

	"dirpx.dev/dax/apis"
	uref "dirpx.dev/dax/utils/reflect"
)

// ResolveOverload selects the most specific non-generic method named name
// accepting argTypes. Non-variadic candidates are preferred over variadic
// ones. Two equally specific candidates make the call ambiguous, which is
// reported as not found.
func (r *resolver) ResolveOverload(t reflect.Type, name string, argTypes []reflect.Type, cfg apis.Config, useCache bool) (apis.Method, bool) {
	var fixed, variadic []apis.Method
	for _, m := range r.ResolveMethodsNamed(t, name, cfg, useCache) {
		if m.IsGeneric() || !accepts(m, argTypes) {
			continue
		}
		if m.Variadic {
			variadic = append(variadic, m)
		} else {
			fixed = append(fixed, m)
		}
	}

	cands := fixed
	if len(cands) == 0 {
		cands = variadic
	}
	switch len(cands) {
	case 0:
		return apis.Method{}, false
	case 1:
		return cands[0], true
	}

	var best []apis.Method
	for _, c := range cands {
		if dominatesAll(c, cands) {
			best = append(best, c)
		}
	}
	if len(best) != 1 {
		r.log.Debug("ambiguous overload",
			zap.Stringer("type", t),
			zap.String("name", name),
			zap.Int("candidates", len(cands)),
		)
		return apis.Method{}, false
	}
	return best[0], true
}

// accepts reports whether arguments of argTypes can be passed to m.
// A nil argument type stands for a nil argument.
func accepts(m apis.Method, argTypes []reflect.Type) bool {
	n := len(m.Params)
	if !m.Variadic {
		if len(argTypes) != n {
			return false
		}
		for i, at := range argTypes {
			if !acceptsParam(m.Params[i], at) {
				return false
			}
		}
		return true
	}

	if len(argTypes) < n-1 {
		return false
	}
	for i := 0; i < n-1; i++ {
		if !acceptsParam(m.Params[i], argTypes[i]) {
			return false
		}
	}
	last := m.Params[n-1].Type
	if len(argTypes) == n && uref.AssignableFrom(last, argTypes[n-1]) {
		return true
	}
	for _, at := range argTypes[n-1:] {
		if !uref.AssignableFrom(last.Elem(), at) {
			return false
		}
	}
	return true
}

func acceptsParam(p apis.Param, at reflect.Type) bool {
	if p.Out {
		return at == p.Type
	}
	return uref.AssignableFrom(p.Type, at)
}

// dominatesAll reports whether every parameter of c is assignable to the
// corresponding parameter of each other candidate.
func dominatesAll(c apis.Method, cands []apis.Method) bool {
	for _, o := range cands {
		if len(o.Params) != len(c.Params) {
			return false
		}
		for i, p := range c.Params {
			if !p.Type.AssignableTo(o.Params[i].Type) {
				return false
			}
		}
	}
	return true
}
