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
	"fmt"
	"reflect"
)

// methodNode is a method name bound to a receiver.
type methodNode struct {
	recv *objectNode
	name string
}

// Ensure methodNode implements Node.
var _ Node = (*methodNode)(nil)

func (n *methodNode) Value() any         { return nil }
func (n *methodNode) Type() reflect.Type { return n.recv.typ }
func (n *methodNode) IsMethod() bool     { return true }
func (n *methodNode) Name() string       { return n.name }

func (n *methodNode) String() string {
	return fmt.Sprintf("%s.%s", n.recv.typ, n.name)
}

func (n *methodNode) Get(name string) (Node, error) {
	return nil, accessError("get", []string{n.name, name}, n.recv.typ, ErrNotFound, "methods have no members", nil)
}

func (n *methodNode) Set(name string, _ any) error {
	return accessError("set", []string{n.name, name}, n.recv.typ, ErrNotFound, "methods have no members", nil)
}

func (n *methodNode) Invoke(name string, _ ...any) (Node, error) {
	return nil, accessError("invoke", []string{n.name, name}, n.recv.typ, ErrNotFound, "methods have no methods", nil)
}

func (n *methodNode) InvokeGeneric(name string, _ []reflect.Type, _ ...any) (Node, error) {
	return nil, accessError("invoke", []string{n.name, name}, n.recv.typ, ErrNotFound, "methods have no methods", nil)
}

// Call invokes the bound method with the most specific matching overload.
func (n *methodNode) Call(args ...any) (Node, error) {
	return n.recv.Invoke(n.name, args...)
}

// CallGeneric invokes the bound generic method.
func (n *methodNode) CallGeneric(typeArgs []reflect.Type, args ...any) (Node, error) {
	return n.recv.InvokeGeneric(n.name, typeArgs, args...)
}

func (n *methodNode) GetIndexed(keys ...any) (Node, error) {
	return getIndexed(n, keys)
}

func (n *methodNode) SetIndexed(value any, keys ...any) error {
	return setIndexed(n, value, keys)
}

func (n *methodNode) ConvertTo(t reflect.Type) (any, error) {
	return nil, &ConversionError{From: n.recv.typ, To: t, Value: n.name, Reason: "a bound method has no value"}
}

func (n *methodNode) Evaluate(string) (Node, error) {
	return nil, accessError("evaluate", []string{n.name}, n.recv.typ, ErrNotFound, "methods have no members", nil)
}
