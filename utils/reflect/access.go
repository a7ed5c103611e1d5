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
	"unsafe"
)

var (
	// ErrReflectNilEmbedded is returned when a field path crosses a nil
	// embedded pointer.
	ErrReflectNilEmbedded = errors.New("reflect: nil embedded pointer")
	// ErrReflectReceiver is returned when no receiver of the wanted type
	// can be derived from a value.
	ErrReflectReceiver = errors.New("reflect: value cannot be used as receiver")
)

// Embedding is a struct embedded (directly or transitively) in another.
type Embedding struct {
	// Type is the embedded struct type (pointers stripped).
	Type reflect.Type
	// Index is the field index path to the embedded field.
	Index []int
	// Depth is the embedding depth, starting at 1.
	Depth int
}

// Embedded returns the embedded structs of t breadth-first, in declaration
// order within one depth. Each struct type is reported once.
func Embedded(t reflect.Type) []Embedding {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	var out []Embedding
	visited := map[reflect.Type]bool{t: true}
	current := []Embedding{{Type: t}}
	for depth := 1; len(current) > 0; depth++ {
		var next []Embedding
		for _, lv := range current {
			for i := 0; i < lv.Type.NumField(); i++ {
				sf := lv.Type.Field(i)
				if !sf.Anonymous {
					continue
				}
				ft := sf.Type
				if ft.Kind() == reflect.Pointer {
					ft = ft.Elem()
				}
				if ft.Kind() != reflect.Struct || visited[ft] {
					continue
				}
				visited[ft] = true
				e := Embedding{Type: ft, Index: append(append([]int(nil), lv.Index...), i), Depth: depth}
				out = append(out, e)
				next = append(next, e)
			}
		}
		current = next
	}
	return out
}

// Expose makes a value obtained through an unexported field usable.
// Values that are already usable, or not addressable, are returned unchanged.
func Expose(v reflect.Value) reflect.Value {
	if !v.IsValid() || v.CanInterface() || !v.CanAddr() {
		return v
	}
	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
}

// Field returns the field of v at index, dereferencing embedded pointers
// along the way. The returned value is exposed when v is addressable.
func Field(v reflect.Value, index []int) (reflect.Value, error) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, ErrReflectNilEmbedded
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return Expose(v), nil
}

// Receiver navigates path (a chain of embedded fields) from v and returns
// a value assignable to want: the value itself or its address.
func Receiver(v reflect.Value, path []int, want reflect.Type) (reflect.Value, error) {
	if !v.IsValid() || want == nil {
		return reflect.Value{}, ErrReflectReceiver
	}
	for _, x := range path {
		v = v.Field(x)
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, ErrReflectNilEmbedded
			}
			v = v.Elem()
		}
	}
	v = Expose(v)
	if v.Type().AssignableTo(want) {
		return v, nil
	}
	if v.CanAddr() && reflect.PointerTo(v.Type()).AssignableTo(want) {
		return v.Addr(), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: %s as %s", ErrReflectReceiver, v.Type(), want)
}
