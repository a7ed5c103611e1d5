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

	"dirpx.dev/dax/apis"
	uref "dirpx.dev/dax/utils/reflect"
)

// objectNode wraps a value. base is always addressable so that members can
// be assigned in place; typ is the type names are resolved against.
type objectNode struct {
	eng      *Engine
	orig     reflect.Value
	base     reflect.Value
	typ      reflect.Type
	useCache bool
}

// Ensure objectNode implements Node.
var _ Node = (*objectNode)(nil)

// current returns the value the node stands for: the original pointer when
// the node was created from one, else the (possibly copied) base.
func (n *objectNode) current() reflect.Value {
	if n.orig.IsValid() && n.orig.Kind() == reflect.Pointer {
		return n.orig
	}
	return n.base
}

func (n *objectNode) Value() any { return uref.Expose(n.current()).Interface() }
func (n *objectNode) Type() reflect.Type { return n.typ }
func (n *objectNode) IsMethod() bool { return false }
func (n *objectNode) Name() string { return "" }

func (n *objectNode) Get(name string) (Node, error) {
	res, cfg := n.eng.res, n.eng.cfg
	if m, ok := res.ResolveMember(n.typ, name, cfg, n.useCache); ok {
		v, err := n.read(m)
		if err != nil {
			return nil, err
		}
		return n.eng.wrap(v, n.useCache)
	}
	if res.HasMethod(n.typ, name, cfg, n.useCache) {
		return &methodNode{recv: n, name: name}, nil
	}
	return nil, accessError("get", []string{name}, n.typ, ErrNotFound, "no member or method with this name", nil)
}

func (n *objectNode) read(m apis.Member) (reflect.Value, error) {
	if m.Kind == apis.FieldMember {
		v, err := uref.Field(n.base, m.Index)
		if err != nil {
			return reflect.Value{}, accessError("get", []string{m.Name}, n.typ, ErrNotFound, "field is promoted through a nil pointer", err)
		}
		return v, nil
	}

	self, err := uref.Receiver(n.base, nil, m.Getter.Type().In(0))
	if err != nil {
		return reflect.Value{}, accessError("get", []string{m.Name}, n.typ, ErrInvocation, "getter", err)
	}
	out, err := uref.Call(m.Getter, []reflect.Value{self}, false)
	if err != nil {
		return reflect.Value{}, accessError("get", []string{m.Name}, n.typ, ErrInvocation, "getter", err)
	}
	return out[0], nil
}

func (n *objectNode) Set(name string, value any) error {
	path := []string{name}
	m, ok := n.eng.res.ResolveMember(n.typ, name, n.eng.cfg, n.useCache)
	if !ok {
		return accessError("set", path, n.typ, ErrNotFound, "no member with this name", nil)
	}
	if !m.Writable {
		return accessError("set", path, n.typ, ErrNotWritable, "member is get-only", nil)
	}

	val, ok := unwrapArg(value)
	if !ok {
		return accessError("set", path, n.typ, ErrTypeMismatch, "a method node has no value", nil)
	}
	switch {
	case !val.IsValid():
		if !uref.Nillable(m.Type) {
			return accessError("set", path, n.typ, ErrTypeMismatch, fmt.Sprintf("nil is not assignable to %s", m.Type), nil)
		}
		val = reflect.Zero(m.Type)
	case !val.Type().AssignableTo(m.Type):
		return accessError("set", path, n.typ, ErrTypeMismatch, fmt.Sprintf("%s is not assignable to %s", val.Type(), m.Type), nil)
	}

	if m.Kind == apis.FieldMember {
		f, err := uref.Field(n.base, m.Index)
		if err != nil {
			return accessError("set", path, n.typ, ErrNotWritable, "field is promoted through a nil pointer", err)
		}
		if !f.CanSet() {
			return accessError("set", path, n.typ, ErrNotWritable, "field is not settable", nil)
		}
		f.Set(val)
		return nil
	}

	self, err := uref.Receiver(n.base, nil, m.Setter.Type().In(0))
	if err != nil {
		return accessError("set", path, n.typ, ErrNotWritable, "setter receiver", err)
	}
	if _, err := uref.Call(m.Setter, []reflect.Value{self, val}, false); err != nil {
		return accessError("set", path, n.typ, ErrInvocation, "setter", err)
	}
	return nil
}

func (n *objectNode) Invoke(name string, args ...any) (Node, error) {
	path := []string{name}
	in, bad := unwrapArgs(args)
	if bad >= 0 {
		return nil, accessError("invoke", path, n.typ, ErrTypeMismatch, fmt.Sprintf("argument %d is a method node", bad), nil)
	}
	argTypes := uref.TypesOf(in)

	m, ok := n.eng.res.ResolveOverload(n.typ, name, argTypes, n.eng.cfg, n.useCache)
	if !ok {
		return nil, accessError("invoke", path, n.typ, ErrNotFound, "no method accepts "+signature(argTypes), nil)
	}

	fn, self, err := uref.Bind(n.base, m)
	if err != nil {
		return nil, accessError("invoke", path, n.typ, ErrInvocation, m.Signature(), err)
	}
	prepared, spread, err := uref.Prepare(fn.Type(), len(self), in)
	if err != nil {
		return nil, accessError("invoke", path, n.typ, ErrInvocation, m.Signature(), err)
	}
	out, err := uref.Call(fn, append(self, prepared...), spread)
	if err != nil {
		return nil, accessError("invoke", path, n.typ, ErrInvocation, m.Signature(), err)
	}
	return n.eng.results(out, n.useCache)
}

func (n *objectNode) InvokeGeneric(name string, typeArgs []reflect.Type, args ...any) (Node, error) {
	if len(typeArgs) == 0 {
		return n.Invoke(name, args...)
	}
	in, bad := unwrapArgs(args)
	if bad >= 0 {
		return nil, accessError("invoke", []string{name}, n.typ, ErrTypeMismatch, fmt.Sprintf("argument %d is a method node", bad), nil)
	}
	call, ok := n.eng.res.InvokeGeneric(n.base, n.typ, name, in, typeArgs, n.eng.cfg, n.useCache)
	if !ok {
		reason := fmt.Sprintf("no generic method accepts %s with type arguments %v", signature(uref.TypesOf(in)), typeArgs)
		return nil, accessError("invoke", []string{name}, n.typ, ErrNotFound, reason, call.Failures)
	}
	return n.eng.results(call.Results, n.useCache)
}

func (n *objectNode) Call(...any) (Node, error) {
	return nil, accessError("call", nil, n.typ, ErrNotFound, "not a method", nil)
}

func (n *objectNode) CallGeneric([]reflect.Type, ...any) (Node, error) {
	return nil, accessError("call", nil, n.typ, ErrNotFound, "not a method", nil)
}

func (n *objectNode) GetIndexed(keys ...any) (Node, error) {
	return getIndexed(n, keys)
}

func (n *objectNode) SetIndexed(value any, keys ...any) error {
	return setIndexed(n, value, keys)
}

// signature renders argument types for error messages.
func signature(ts []reflect.Type) string {
	s := "("
	for i, t := range ts {
		if i > 0 {
			s += ", "
		}
		if t == nil {
			s += "nil"
		} else {
			s += t.String()
		}
	}
	return s + ")"
}
