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
	"fmt"
	"reflect"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"dirpx.dev/dax/apis"
	uref "dirpx.dev/dax/utils/reflect"
)

// ResolveGenericOverload returns the generic methods named name that fit
// argTypes and typeArgs, in declaration order:
//
//  1. generic methods with a matching name,
//  2. with as many parameters as arguments and as many type parameters as
//     type arguments,
//  3. whose parameters accept the arguments (open parameters accept
//     anything, Out parameters need the exact type, others assignability),
//  4. and whose constrained type parameters accept the type arguments.
//
// Whether a candidate can really be instantiated is only known to
// InvokeGeneric.
func (r *resolver) ResolveGenericOverload(t reflect.Type, name string, argTypes, typeArgs []reflect.Type, cfg apis.Config, useCache bool) []apis.Method {
	var out []apis.Method
	for _, m := range r.ResolveMethodsNamed(t, name, cfg, useCache) {
		if !m.IsGeneric() {
			continue
		}
		if len(m.Params) != len(argTypes) || len(m.TypeParams) != len(typeArgs) {
			continue
		}
		if !genericParamsAccept(m.Params, argTypes) {
			r.log.Debug("generic candidate discarded", zap.String("method", m.Signature()), zap.String("reason", "parameters"))
			continue
		}
		if !slotsAccept(m.TypeParams, typeArgs) {
			r.log.Debug("generic candidate discarded", zap.String("method", m.Signature()), zap.String("reason", "constraints"))
			continue
		}
		out = append(out, m)
	}
	return out
}

func genericParamsAccept(params []apis.Param, argTypes []reflect.Type) bool {
	for i, p := range params {
		switch {
		case p.IsGeneric():
		case p.Out:
			if argTypes[i] != p.Type {
				return false
			}
		default:
			if !uref.AssignableFrom(p.Type, argTypes[i]) {
				return false
			}
		}
	}
	return true
}

func slotsAccept(slots []apis.TypeParam, typeArgs []reflect.Type) bool {
	for i, s := range slots {
		if typeArgs[i] == nil {
			return false
		}
		if s.Constraint != nil && !typeArgs[i].AssignableTo(s.Constraint) {
			return false
		}
	}
	return true
}

// InvokeGeneric instantiates and calls each candidate of
// ResolveGenericOverload in order and returns the first success. Failed
// candidates are skipped and recorded in Call.Failures.
func (r *resolver) InvokeGeneric(recv reflect.Value, t reflect.Type, name string, args []reflect.Value, typeArgs []reflect.Type, cfg apis.Config, useCache bool) (apis.Call, bool) {
	var failures error
	for _, m := range r.ResolveGenericOverload(t, name, uref.TypesOf(args), typeArgs, cfg, useCache) {
		out, err := try(recv, m, args, typeArgs)
		if err == nil {
			return apis.Call{Method: m, Results: out, Failures: failures}, true
		}
		r.log.Debug("generic candidate failed",
			zap.Stringer("type", t),
			zap.String("method", m.Signature()),
			zap.Error(err),
		)
		failures = multierr.Append(failures, fmt.Errorf("%s: %w", m.Signature(), err))
	}
	return apis.Call{Failures: failures}, false
}

func try(recv reflect.Value, m apis.Method, args []reflect.Value, typeArgs []reflect.Type) ([]reflect.Value, error) {
	fn, err := m.Instantiate(typeArgs)
	if err != nil {
		return nil, err
	}
	if !fn.IsValid() || fn.Kind() != reflect.Func || fn.Type().NumIn() == 0 {
		return nil, fmt.Errorf("%w: instantiation does not take a receiver", uref.ErrReflectNotFunc)
	}
	self, err := uref.Receiver(recv, m.Path, fn.Type().In(0))
	if err != nil {
		return nil, err
	}
	in, spread, err := uref.Prepare(fn.Type(), 1, args)
	if err != nil {
		return nil, err
	}
	return uref.Call(fn, append([]reflect.Value{self}, in...), spread)
}
