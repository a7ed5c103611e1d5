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

// Package dax provides late-bound, name-addressed access to Go values.
//
// dax wraps an arbitrary value in a Node and lets callers read and write
// its fields and properties and invoke its methods by name, when the
// concrete type is not known at the call site. Every result is wrapped in
// a Node again, so access chains:
//
//	n, _ := dax.Create(&order)
//	city, _ := n.GetIndexed("Customer", "Address", "City")
//	total, _ := n.Invoke("Total", 0.2)
//	_ = n.SetIndexed("Berlin", "Customer", "Address", "City")
//
// # Design
//
// An Engine holds four components, all built for one Config:
//
//   - Registry: methods the Go method set cannot express. Go has neither
//     overloading nor generic methods, so both are registered here as
//     receiver-first functions. Generic definitions declare type parameter
//     slots and an instantiation function.
//
//   - Cache: a per-type descriptor snapshot (members and methods). It is
//     filled by discovery strategies: struct fields (including promoted
//     ones), getter/setter properties, the native method set, and
//     registered methods. Snapshots are installed once and never change.
//
//   - Resolver: name lookup against the cache, overload selection for
//     non-generic calls, and trial instantiation for generic calls.
//
//   - Builder: composes the three for a Config.
//
// Nodes resolve names against their type: a member wins over a method of
// the same name; a name that only matches methods yields a bound method
// node that is invoked with Call.
//
// # Members
//
// Fields are found breadth-first through embedded structs; a field declared
// closer to the outer type hides deeper ones. Unexported fields are
// included unless Config.IncludeUnexported is false.
//
// Properties follow Config.PropertyMode. With PropertyPrefixed (the
// default) a method GetX() returning one non-error value is property "X",
// writable when SetX(v) exists. With PropertyGetters every such method X()
// is a property, so reading it runs it. PropertyNone disables properties.
// Any other nullary method named in Get yields a method node and is not
// called.
//
// # Methods
//
// Invoke picks the most specific overload whose parameters accept the
// argument types (nil arguments match pointer-like parameters). A trailing
// error result is not part of the returned value: a non-nil error fails
// the call with ErrInvocation. Methods with several results return a node
// over []any.
//
// InvokeGeneric filters generic candidates by parameter count, type
// parameter count, parameter compatibility and constraints, then tries
// them in registration order. The first candidate that instantiates and
// runs without error wins; the failures of earlier candidates are
// attached to the error when every candidate fails.
//
// # Errors
//
// Every failure is an *AccessError classified by one of the sentinels
// ErrNotFound, ErrNotWritable, ErrTypeMismatch, ErrInvalidIndex,
// ErrInvocation, ErrNilObject or ErrExpression. Conversion failures are
// *ConversionError values matching ErrConversion.
//
// # Concurrency model
//
// Engines and their caches are safe for concurrent use. Nodes add no
// synchronization: concurrent Set calls on nodes sharing an underlying
// value race like any other unsynchronized write.
//
// The package-level functions use a default engine held in an atomic
// pointer. Configure and SetDefault publish a new engine; readers are
// never blocked.
package dax
