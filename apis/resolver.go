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
)

// Resolver answers name-based member and method lookups against a Cache.
// Resolution failures are reported as (zero, false), never as errors.
type Resolver interface {
	// ResolveMember returns the first member of t named name.
	ResolveMember(t reflect.Type, name string, cfg Config, useCache bool) (Member, bool)

	// HasMethod reports whether t has any method named name.
	HasMethod(t reflect.Type, name string, cfg Config, useCache bool) bool

	// ResolveMethodsNamed returns every method of t named name.
	ResolveMethodsNamed(t reflect.Type, name string, cfg Config, useCache bool) []Method

	// ResolveOverload selects the most specific non-generic method named
	// name that accepts arguments of argTypes. A nil entry in argTypes
	// stands for a nil argument.
	ResolveOverload(t reflect.Type, name string, argTypes []reflect.Type, cfg Config, useCache bool) (Method, bool)

	// ResolveGenericOverload returns, in declaration order, the generic
	// methods named name that are compatible with argTypes and typeArgs.
	ResolveGenericOverload(t reflect.Type, name string, argTypes, typeArgs []reflect.Type, cfg Config, useCache bool) []Method

	// InvokeGeneric instantiates and invokes the candidates of
	// ResolveGenericOverload in order on recv and keeps the first success.
	InvokeGeneric(recv reflect.Value, t reflect.Type, name string, args []reflect.Value, typeArgs []reflect.Type, cfg Config, useCache bool) (Call, bool)
}
