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

package dax

import (
	"reflect"

	uref "dirpx.dev/dax/utils/reflect"
)

// Node is a late-bound accessor over a live value or a bound method.
//
// Object nodes resolve names against the value's type: members (fields and
// properties) first, then methods. Method nodes are produced by Get when a
// name only resolves to methods and are invoked with Call.
//
// Operations that produce a nil value return (nil, nil).
type Node interface {
	// Get reads a member, or binds a method when no member has that name.
	Get(name string) (Node, error)
	// Set assigns a member. Node values are unwrapped first.
	Set(name string, value any) error

	// Invoke calls the most specific method named name accepting args.
	Invoke(name string, args ...any) (Node, error)
	// InvokeGeneric calls the first generic method named name that can be
	// instantiated with typeArgs and invoked with args.
	InvokeGeneric(name string, typeArgs []reflect.Type, args ...any) (Node, error)
	// Call invokes a method node. Object nodes report ErrNotFound.
	Call(args ...any) (Node, error)
	// CallGeneric invokes a method node with explicit type arguments.
	CallGeneric(typeArgs []reflect.Type, args ...any) (Node, error)

	// GetIndexed reads a chain of members, one string key per step.
	GetIndexed(keys ...any) (Node, error)
	// SetIndexed assigns the member at the end of a chain of members.
	SetIndexed(value any, keys ...any) error

	// ConvertTo returns the value converted to t.
	ConvertTo(t reflect.Type) (any, error)
	// Evaluate evaluates an expression over the node's members.
	Evaluate(expr string) (Node, error)

	// Value returns the wrapped value. Method nodes return nil.
	Value() any
	// Type returns the type names are resolved against.
	Type() reflect.Type
	// IsMethod reports whether the node is a bound method.
	IsMethod() bool
	// Name returns the method name of a method node, or "".
	Name() string
}

// As converts the value of n to T.
//
//	age, err := dax.As[int](node)
func As[T any](n Node) (T, error) {
	var zero T
	t := reflect.TypeFor[T]()
	if n == nil || n.IsMethod() {
		if n == nil && uref.Nillable(t) {
			return zero, nil
		}
		return zero, &ConversionError{To: t, Reason: "no value"}
	}
	v, err := n.ConvertTo(t)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	return v.(T), nil
}

// unwrapArg turns an argument into a reflect.Value. Nil arguments and nil
// nodes become the invalid Value. A method node has no value and reports
// false.
func unwrapArg(a any) (reflect.Value, bool) {
	if a == nil {
		return reflect.Value{}, true
	}
	if n, ok := a.(Node); ok {
		if n.IsMethod() {
			return reflect.Value{}, false
		}
		v := n.Value()
		if v == nil {
			return reflect.Value{}, true
		}
		return reflect.ValueOf(v), true
	}
	return reflect.ValueOf(a), true
}

// unwrapArgs unwraps args and returns the position of the first method
// node, or -1.
func unwrapArgs(args []any) ([]reflect.Value, int) {
	out := make([]reflect.Value, len(args))
	for i, a := range args {
		v, ok := unwrapArg(a)
		if !ok {
			return nil, i
		}
		out[i] = v
	}
	return out, -1
}
