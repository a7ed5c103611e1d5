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
	"reflect"

	"dirpx.dev/dax/apis"
	"dirpx.dev/dax/config"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectNilValue is returned when a value is nil after unwrapping.
	ErrReflectNilValue = errors.New("reflect: nil value")
	// ErrReflectTooDeep indicates that more pointer levels remain than
	// MaxUnwrap allows.
	ErrReflectTooDeep = errors.New("reflect: pointer nesting exceeds MaxUnwrap")
)

// BaseType strips pointer levels from t according to cfg.MaxUnwrap and
// returns the innermost type.
//
// If MaxUnwrap <= 0, DefaultMaxUnwrap is used.
func BaseType(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	maxUnwrap := cfg.MaxUnwrap
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}

	for i := 0; i < maxUnwrap && t.Kind() == reflect.Pointer; i++ {
		t = t.Elem()
	}
	if t.Kind() == reflect.Pointer {
		return nil, ErrReflectTooDeep
	}
	return t, nil
}

// Indirect unwraps interfaces and pointers in v according to cfg.MaxUnwrap
// and returns the innermost value. Values reached through a pointer are
// addressable; a value that was passed directly is returned as is.
//
// Unwrapping policy:
//   - interface -> Elem() (does not count against MaxUnwrap)
//   - pointer   -> Elem()
//   - nil interface or pointer at any level -> ErrReflectNilValue
func Indirect(v reflect.Value, cfg apis.Config) (reflect.Value, error) {
	maxUnwrap := cfg.MaxUnwrap
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}

	for depth := 0; ; {
		if !v.IsValid() {
			return reflect.Value{}, ErrReflectNilValue
		}
		switch v.Kind() {
		case reflect.Interface:
			if v.IsNil() {
				return reflect.Value{}, ErrReflectNilValue
			}
			v = v.Elem()
		case reflect.Pointer:
			if v.IsNil() {
				return reflect.Value{}, ErrReflectNilValue
			}
			if depth == maxUnwrap {
				return reflect.Value{}, ErrReflectTooDeep
			}
			depth++
			v = v.Elem()
		default:
			return v, nil
		}
	}
}

// Addressable returns v if it is addressable, otherwise an addressable copy.
func Addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v
	}
	c := reflect.New(v.Type()).Elem()
	c.Set(v)
	return c
}

// Nillable reports whether a value of type t can be nil.
func Nillable(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	}
	return false
}

// IsNil reports whether v is invalid or a nil value of a nillable kind.
func IsNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	if Nillable(v.Type()) {
		return v.IsNil()
	}
	return false
}

// AssignableFrom reports whether an argument of type arg can be passed
// where param is expected. A nil arg stands for an untyped nil argument.
func AssignableFrom(param, arg reflect.Type) bool {
	if param == nil {
		return false
	}
	if arg == nil {
		return Nillable(param)
	}
	return arg.AssignableTo(param)
}

// TypesOf returns the dynamic types of vs; invalid values map to nil.
func TypesOf(vs []reflect.Value) []reflect.Type {
	out := make([]reflect.Type, len(vs))
	for i, v := range vs {
		if v.IsValid() {
			out[i] = v.Type()
		}
	}
	return out
}
