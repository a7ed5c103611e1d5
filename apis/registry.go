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

import "reflect"

// Registry holds methods that the Go method set cannot express:
// overloads, extension methods and generic methods.
// Keep it minimal so implementations can be sync.Map-backed.
type Registry interface {
	// Register appends def to the methods of t (pointers are stripped).
	// Conflicting registrations (same signature) return an error.
	Register(t reflect.Type, def MethodDef) error
	// Lookup returns the methods registered for t in registration order.
	Lookup(t reflect.Type) []Method
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of registered methods.
	Count() int
	// Reset clears all registered methods.
	Reset()
	// Generation changes whenever the registry content changes.
	Generation() uint64
}

// Entry is a single registered method in a Registry snapshot.
type Entry struct {
	// Type is the registered (pointer-stripped) type.
	Type reflect.Type
	// Def is the definition as registered.
	Def MethodDef
	// Method is the compiled descriptor.
	Method Method
}
