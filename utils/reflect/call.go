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

package reflect

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/dax/apis"
)

var (
	// ErrReflectArguments is returned when arguments do not fit a function signature.
	ErrReflectArguments = errors.New("reflect: arguments do not match signature")
	// ErrReflectPanic is returned when an invoked function panics.
	ErrReflectPanic = errors.New("reflect: invoked function panicked")
	// ErrReflectNotFunc is returned when a value is not a function.
	ErrReflectNotFunc = errors.New("reflect: not a function")
)

var errorType = reflect.TypeFor[error]()

// Prepare converts args into call arguments for fn, starting at parameter
// offset (1 when the receiver is passed explicitly). Invalid values stand
// for nil arguments and become zero values of the parameter type.
// The second result reports whether the trailing argument is passed as the
// variadic slice itself.
func Prepare(fn reflect.Type, offset int, args []reflect.Value) ([]reflect.Value, bool, error) {
	if fn == nil || fn.Kind() != reflect.Func {
		return nil, false, ErrReflectNotFunc
	}
	n := fn.NumIn() - offset
	if n < 0 {
		return nil, false, fmt.Errorf("%w: %s", ErrReflectArguments, fn)
	}

	param := func(i int) reflect.Type { return fn.In(offset + i) }

	spread := false
	switch {
	case !fn.IsVariadic():
		if len(args) != n {
			return nil, false, fmt.Errorf("%w: got %d arguments, want %d", ErrReflectArguments, len(args), n)
		}
	case len(args) == n && fits(param(n-1), args[n-1]):
		spread = true
	case len(args) < n-1:
		return nil, false, fmt.Errorf("%w: got %d arguments, want at least %d", ErrReflectArguments, len(args), n-1)
	}

	out := make([]reflect.Value, len(args))
	for i, a := range args {
		want := variadicParam(fn, offset, i, spread)
		if !fits(want, a) {
			return nil, false, fmt.Errorf("%w: argument %d: %s is not assignable to %s", ErrReflectArguments, i, typeName(a), want)
		}
		if !a.IsValid() {
			a = reflect.Zero(want)
		}
		out[i] = a
	}
	return out, spread, nil
}

// variadicParam returns the parameter type argument i binds to.
func variadicParam(fn reflect.Type, offset, i int, spread bool) reflect.Type {
	last := fn.NumIn() - 1
	if offset+i < last || !fn.IsVariadic() || spread {
		return fn.In(offset + i)
	}
	return fn.In(last).Elem()
}

func fits(want reflect.Type, a reflect.Value) bool {
	if !a.IsValid() {
		return Nillable(want)
	}
	return a.Type().AssignableTo(want)
}

func typeName(a reflect.Value) string {
	if !a.IsValid() {
		return "nil"
	}
	return a.Type().String()
}

// Call invokes fn with in. A panic inside fn is recovered and reported as
// ErrReflectPanic. A trailing error result is removed from the returned
// values and, if non-nil, returned as the error.
func Call(fn reflect.Value, in []reflect.Value, spread bool) (out []reflect.Value, err error) {
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		return nil, ErrReflectNotFunc
	}
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("%w: %v", ErrReflectPanic, r)
		}
	}()

	if spread {
		out = fn.CallSlice(in)
	} else {
		out = fn.Call(in)
	}

	ft := fn.Type()
	if n := ft.NumOut(); n > 0 && ft.Out(n-1) == errorType {
		last := out[n-1]
		out = out[:n-1]
		if !last.IsNil() {
			return nil, last.Interface().(error)
		}
	}
	return out, nil
}

// Bind returns the function to call for m on base together with the
// leading receiver argument (empty for interface methods, which are bound
// through the interface value).
func Bind(base reflect.Value, m apis.Method) (reflect.Value, []reflect.Value, error) {
	if m.Func.IsValid() {
		self, err := Receiver(base, m.Path, m.Func.Type().In(0))
		if err != nil {
			return reflect.Value{}, nil, err
		}
		return m.Func, []reflect.Value{self}, nil
	}

	if m.Recv == nil || m.Recv.Kind() != reflect.Interface {
		return reflect.Value{}, nil, fmt.Errorf("%w: method %s has no function", ErrReflectNotFunc, m.Name)
	}
	self, err := Receiver(base, m.Path, m.Recv)
	if err != nil {
		return reflect.Value{}, nil, err
	}
	iv := reflect.New(m.Recv).Elem()
	iv.Set(self)
	return iv.Method(m.Index), nil, nil
}
