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

package apis

import (
	"reflect"
	"strconv"
	"strings"
)

// MemberKind distinguishes fields from properties.
type MemberKind int

const (
	// FieldMember is a struct field, possibly promoted from an embedded struct.
	FieldMember MemberKind = iota
	// PropertyMember is a getter method with an optional setter.
	PropertyMember
)

// String returns "field" or "property".
func (k MemberKind) String() string {
	if k == PropertyMember {
		return "property"
	}
	return "field"
}

// Member describes a readable (and possibly writable) named value of a type.
type Member struct {
	// Name is the member name as seen by callers.
	Name string
	// Type is the declared value type.
	Type reflect.Type
	// Kind tells fields and properties apart.
	Kind MemberKind
	// Readable is always true for discovered members.
	Readable bool
	// Writable is false for get-only properties.
	Writable bool
	// Exported reports whether the member is visible outside its package.
	Exported bool
	// Depth is the embedding depth the member was declared at (0 = the type itself).
	Depth int
	// Index is the field index path from the type to the field. Fields only.
	Index []int
	// Getter reads a property. It takes the receiver as its only argument.
	Getter reflect.Value
	// Setter writes a property. It takes the receiver and the new value.
	Setter reflect.Value
}

// MethodSource tells where a method descriptor came from.
type MethodSource int

const (
	// NativeMethod comes from the Go method set of the type.
	NativeMethod MethodSource = iota
	// RegisteredMethod comes from a Registry.
	RegisteredMethod
)

// Param is a formal method parameter. A nil Type marks an open generic
// parameter bound to the type parameter slot TypeParam.
type Param struct {
	Type      reflect.Type
	TypeParam int
	// Out requires the argument type to match Type exactly.
	Out bool
}

// Concrete returns a parameter of type t.
func Concrete(t reflect.Type) Param { return Param{Type: t, TypeParam: -1} }

// Generic returns an open parameter bound to type parameter slot.
func Generic(slot int) Param { return Param{TypeParam: slot} }

// Out returns an out-style parameter of type t, which must match exactly.
func Out(t reflect.Type) Param { return Param{Type: t, TypeParam: -1, Out: true} }

// IsGeneric reports whether p is an open generic parameter.
func (p Param) IsGeneric() bool { return p.Type == nil }

// String renders the parameter for signatures and diagnostics.
func (p Param) String() string {
	switch {
	case p.IsGeneric():
		return "$" + strconv.Itoa(p.TypeParam)
	case p.Out:
		return "out " + p.Type.String()
	default:
		return p.Type.String()
	}
}

// TypeParam is a generic parameter slot with an optional upper-bound constraint.
type TypeParam struct {
	Name string
	// Constraint is nil for unconstrained slots. Otherwise a type argument
	// must be assignable to it.
	Constraint reflect.Type
}

// InstantiateFunc produces an invocable function for the given type
// arguments. The function takes the receiver as its first argument.
type InstantiateFunc func(typeArgs []reflect.Type) (reflect.Value, error)

// Method describes an invocable method of a type.
type Method struct {
	Name       string
	Params     []Param
	TypeParams []TypeParam
	Results    []reflect.Type
	Variadic   bool
	Source     MethodSource
	// Depth and Path locate the embedded owner of a registered method.
	Depth int
	Path  []int
	// Recv is the receiver type of a native method.
	Recv reflect.Type
	// Func takes the receiver as its first argument. It is invalid for
	// interface methods, which are called through Index instead.
	Func  reflect.Value
	Index int
	// Instantiate is set for generic methods only.
	Instantiate InstantiateFunc
}

// IsGeneric reports whether m declares type parameters.
func (m Method) IsGeneric() bool { return len(m.TypeParams) > 0 }

// Signature identifies a method by name, parameter list and type parameter count.
// Two methods with equal signatures cannot both be visible on one type.
func (m Method) Signature() string {
	var b strings.Builder
	b.WriteString(m.Name)
	if n := len(m.TypeParams); n > 0 {
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(n))
		b.WriteByte(']')
	}
	b.WriteByte('(')
	for i, p := range m.Params {
		if i > 0 {
			b.WriteByte(',')
		}
		if m.Variadic && i == len(m.Params)-1 {
			b.WriteString("...")
		}
		b.WriteString(p.String())
	}
	b.WriteByte(')')
	return b.String()
}

// String returns the method signature.
func (m Method) String() string { return m.Signature() }

// MethodDef is the registration form of a method.
//
// Non-generic definitions set Func to a function whose first parameter is
// the receiver (T or *T). Params may be omitted and is then derived from
// Func. Generic definitions set TypeParams, Params and Instantiate.
type MethodDef struct {
	Name        string
	Func        any
	Params      []Param
	TypeParams  []TypeParam
	Instantiate InstantiateFunc
}

// TypeEntry is the immutable descriptor snapshot of one type.
// Members and Methods are ordered from the most-derived declaration outward.
type TypeEntry struct {
	Type    reflect.Type
	Members []Member
	Methods []Method
}

// Member returns the first member named name.
func (e *TypeEntry) Member(name string) (Member, bool) {
	for _, m := range e.Members {
		if m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}

// MethodsNamed returns all methods named name in declaration order.
func (e *TypeEntry) MethodsNamed(name string) []Method {
	var out []Method
	for _, m := range e.Methods {
		if m.Name == name {
			out = append(out, m)
		}
	}
	return out
}

// HasMethod reports whether any method is named name.
func (e *TypeEntry) HasMethod(name string) bool {
	for _, m := range e.Methods {
		if m.Name == name {
			return true
		}
	}
	return false
}

// Call is the outcome of a generic trial invocation.
type Call struct {
	// Method is the candidate that succeeded.
	Method Method
	// Results holds the return values with any trailing error removed.
	Results []reflect.Value
	// Failures records candidates that were tried and discarded.
	Failures error
}
