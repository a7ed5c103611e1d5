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

package registry

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
)

// ErrNotInstantiable is returned when no instantiation exists for a list
// of type arguments.
var ErrNotInstantiable = errors.New("dax(registry): no instantiation for type arguments")

// Instantiation is one pre-built instantiation of a generic method.
// Func takes the receiver as its first argument.
type Instantiation struct {
	TypeArgs []reflect.Type
	Func     any
}

// Instantiations is a table of pre-built instantiations. Go cannot
// instantiate generic functions at run time, so registered generic methods
// list the instantiations they support:
//
//	reg.Register(reflect.TypeFor[Box](), apis.MethodDef{
//		Name:        "Echo",
//		TypeParams:  []apis.TypeParam{{Name: "T"}},
//		Params:      []apis.Param{apis.Generic(0)},
//		Instantiate: registry.Instantiations{
//			{TypeArgs: []reflect.Type{reflect.TypeFor[int]()}, Func: Echo[int]},
//		}.Instantiate,
//	})
type Instantiations []Instantiation

// Instantiate returns the function registered for typeArgs.
func (s Instantiations) Instantiate(typeArgs []reflect.Type) (reflect.Value, error) {
	for _, in := range s {
		if !slices.Equal(in.TypeArgs, typeArgs) {
			continue
		}
		fv := reflect.ValueOf(in.Func)
		if fv.Kind() != reflect.Func {
			return reflect.Value{}, fmt.Errorf("%w: %v is not a function", ErrInvalidMethod, in.Func)
		}
		return fv, nil
	}
	return reflect.Value{}, fmt.Errorf("%w: %v", ErrNotInstantiable, typeArgs)
}
