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

package strategy

import (
	"reflect"

	"dirpx.dev/dax/apis"
)

// NewMethodStrategy creates an apis.Strategy that lists the Go method set.
// For concrete types this is the exported method set of *T, promoted
// methods included. For interface types it is the interface's methods.
func NewMethodStrategy() apis.Strategy {
	return methodStrategy{}
}

type methodStrategy struct{}

// Ensure methodStrategy implements apis.Strategy.
var _ apis.Strategy = (*methodStrategy)(nil)

// Members returns nil.
func (methodStrategy) Members(reflect.Type, apis.Config) []apis.Member {
	return nil
}

// Methods returns the native methods of t sorted by name, as reflect
// reports them.
func (methodStrategy) Methods(t reflect.Type, _ apis.Config) []apis.Method {
	if t == nil {
		return nil
	}

	if t.Kind() == reflect.Interface {
		out := make([]apis.Method, 0, t.NumMethod())
		for i := 0; i < t.NumMethod(); i++ {
			m := t.Method(i)
			out = append(out, native(m.Name, m.Type, 0, t, reflect.Value{}, i))
		}
		return out
	}

	pt := reflect.PointerTo(t)
	out := make([]apis.Method, 0, pt.NumMethod())
	for i := 0; i < pt.NumMethod(); i++ {
		m := pt.Method(i)
		out = append(out, native(m.Name, m.Type, 1, pt, m.Func, i))
	}
	return out
}

// native builds a descriptor from a function type whose first skip inputs
// are not parameters.
func native(name string, ft reflect.Type, skip int, recv reflect.Type, fn reflect.Value, index int) apis.Method {
	params := make([]apis.Param, ft.NumIn()-skip)
	for i := range params {
		params[i] = apis.Concrete(ft.In(i + skip))
	}
	n := ft.NumOut()
	if n > 0 && ft.Out(n-1) == errorType {
		n--
	}
	results := make([]reflect.Type, n)
	for i := range results {
		results[i] = ft.Out(i)
	}
	return apis.Method{
		Name:     name,
		Params:   params,
		Results:  results,
		Variadic: ft.IsVariadic(),
		Source:   apis.NativeMethod,
		Recv:     recv,
		Func:     fn,
		Index:    index,
	}
}
