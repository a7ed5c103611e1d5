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

package registry

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/dax/apis"
	"dirpx.dev/dax/config"
	uref "dirpx.dev/dax/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("dax(registry): nil reflect.Type provided")
	// ErrEmptyName is returned when an empty method name is provided.
	ErrEmptyName = errors.New("dax(registry): empty name provided")
	// ErrConflictingRegistration indicates an attempt to register a second
	// method with the same signature on one type.
	ErrConflictingRegistration = errors.New("dax(registry): conflicting method registration")
	// ErrInvalidMethod is returned when a MethodDef cannot be compiled.
	ErrInvalidMethod = errors.New("dax(registry): invalid method definition")
)

var errorType = reflect.TypeFor[error]()

// New constructs a Registry that strips pointers from types according to cfg.
// Only MaxUnwrap is used here.
func New(cfg apis.Config) apis.Registry {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	return &registry{cfg: cfg}
}

// Ensure registry implements apis.Registry.
var _ apis.Registry = (*registry)(nil)

// registry is a Registry implementation backed by sync.Map.
type registry struct {
	// cfg is the configuration used for pointer stripping.
	cfg apis.Config
	// mu serializes writers and guards count.
	mu sync.Mutex
	// m maps reflect.Type to a copy-on-write []apis.Entry.
	m sync.Map
	// count tracks the number of registered methods.
	count int
	// gen is bumped on every successful mutation.
	gen atomic.Uint64
}

// Register compiles def and appends it to the methods of t.
// Registering the same function under the same signature twice is a no-op.
func (r *registry) Register(t reflect.Type, def apis.MethodDef) error {
	if t == nil {
		return ErrNilType
	}
	if def.Name == "" {
		return ErrEmptyName
	}

	b, err := uref.BaseType(t, r.cfg)
	if err != nil {
		return err
	}
	m, err := compile(b, def)
	if err != nil {
		return err
	}
	sig := m.Signature()

	r.mu.Lock()
	defer r.mu.Unlock()

	var cur []apis.Entry
	if v, ok := r.m.Load(b); ok {
		cur = v.([]apis.Entry)
	}
	for _, e := range cur {
		if e.Method.Signature() != sig {
			continue
		}
		if sameFunc(e.Method.Func, m.Func) {
			return nil
		}
		return fmt.Errorf("%w: %s.%s", ErrConflictingRegistration, b, sig)
	}

	next := make([]apis.Entry, len(cur), len(cur)+1)
	copy(next, cur)
	next = append(next, apis.Entry{Type: b, Def: def, Method: m})
	r.m.Store(b, next)
	r.count++
	r.gen.Add(1)
	return nil
}

// Lookup returns the methods registered for t in registration order.
func (r *registry) Lookup(t reflect.Type) []apis.Method {
	if t == nil {
		return nil
	}
	b, err := uref.BaseType(t, r.cfg)
	if err != nil {
		return nil
	}
	v, ok := r.m.Load(b)
	if !ok {
		return nil
	}
	entries := v.([]apis.Entry)
	out := make([]apis.Method, len(entries))
	for i, e := range entries {
		out[i] = e.Method
	}
	return out
}

// Entries returns a snapshot for diagnostics/docs. Types come in
// unspecified order; methods of one type keep registration order.
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(_, value any) bool {
		entries = append(entries, value.([]apis.Entry)...)
		return true
	})
	return entries
}

// Count returns the number of registered methods.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered methods.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Clear()
	r.count = 0
	r.gen.Add(1)
}

// Generation changes whenever the registry content changes.
func (r *registry) Generation() uint64 {
	return r.gen.Load()
}

func sameFunc(a, b reflect.Value) bool {
	if !a.IsValid() || !b.IsValid() {
		return false
	}
	return a.Type() == b.Type() && a.Pointer() == b.Pointer()
}

// compile turns def into a method descriptor for base type b.
func compile(b reflect.Type, def apis.MethodDef) (apis.Method, error) {
	if len(def.TypeParams) > 0 {
		return compileGeneric(b, def)
	}
	if def.Func == nil {
		return apis.Method{}, fmt.Errorf("%w: %s has no Func", ErrInvalidMethod, def.Name)
	}

	fv := reflect.ValueOf(def.Func)
	ft := fv.Type()
	if ft.Kind() != reflect.Func || ft.NumIn() == 0 {
		return apis.Method{}, fmt.Errorf("%w: %s: Func must be a function taking the receiver first, got %s", ErrInvalidMethod, def.Name, ft)
	}
	recv := ft.In(0)
	if !b.AssignableTo(recv) && !reflect.PointerTo(b).AssignableTo(recv) {
		return apis.Method{}, fmt.Errorf("%w: %s: receiver %s does not accept %s", ErrInvalidMethod, def.Name, recv, b)
	}

	params := make([]apis.Param, ft.NumIn()-1)
	for i := range params {
		params[i] = apis.Concrete(ft.In(i + 1))
	}
	if def.Params != nil {
		if len(def.Params) != len(params) {
			return apis.Method{}, fmt.Errorf("%w: %s: %d params declared, Func takes %d", ErrInvalidMethod, def.Name, len(def.Params), len(params))
		}
		for i, p := range def.Params {
			if p.IsGeneric() || p.Type != params[i].Type {
				return apis.Method{}, fmt.Errorf("%w: %s: param %d is %s, Func takes %s", ErrInvalidMethod, def.Name, i, p, params[i].Type)
			}
			params[i] = p
			params[i].TypeParam = -1
		}
	}

	return apis.Method{
		Name:     def.Name,
		Params:   params,
		Results:  results(ft),
		Variadic: ft.IsVariadic(),
		Source:   apis.RegisteredMethod,
		Recv:     recv,
		Func:     fv,
		Index:    -1,
	}, nil
}

func compileGeneric(b reflect.Type, def apis.MethodDef) (apis.Method, error) {
	if def.Instantiate == nil {
		return apis.Method{}, fmt.Errorf("%w: generic %s has no Instantiate", ErrInvalidMethod, def.Name)
	}
	if def.Func != nil {
		return apis.Method{}, fmt.Errorf("%w: generic %s must not set Func", ErrInvalidMethod, def.Name)
	}
	params := make([]apis.Param, len(def.Params))
	for i, p := range def.Params {
		if p.IsGeneric() && (p.TypeParam < 0 || p.TypeParam >= len(def.TypeParams)) {
			return apis.Method{}, fmt.Errorf("%w: %s: param %d refers to missing type parameter %d", ErrInvalidMethod, def.Name, i, p.TypeParam)
		}
		if !p.IsGeneric() {
			p.TypeParam = -1
		}
		params[i] = p
	}
	return apis.Method{
		Name:        def.Name,
		Params:      params,
		TypeParams:  append([]apis.TypeParam(nil), def.TypeParams...),
		Source:      apis.RegisteredMethod,
		Recv:        b,
		Index:       -1,
		Instantiate: def.Instantiate,
	}, nil
}

func results(ft reflect.Type) []reflect.Type {
	n := ft.NumOut()
	if n > 0 && ft.Out(n-1) == errorType {
		n--
	}
	out := make([]reflect.Type, n)
	for i := range out {
		out[i] = ft.Out(i)
	}
	return out
}
