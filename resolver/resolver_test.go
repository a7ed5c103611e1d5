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

package resolver_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/multierr"

	"dirpx.dev/dax/apis"
	"dirpx.dev/dax/cache"
	"dirpx.dev/dax/config"
	"dirpx.dev/dax/registry"
	"dirpx.dev/dax/resolver"
	"dirpx.dev/dax/strategy"
	uref "dirpx.dev/dax/utils/reflect"
)

type Calc struct{ Base int }

func (c *Calc) Native(a int) int { return c.Base + a }

type Outer struct {
	Calc
	Label string
}

var (
	intT    = reflect.TypeFor[int]()
	stringT = reflect.TypeFor[string]()
	calcT   = reflect.TypeOf(Calc{})
)

func echo[T any](c *Calc, v T) T { return v }

func show[T fmt.Stringer](_ Calc, v T) string { return v.String() }

type Named string

func (n Named) String() string { return "named:" + string(n) }

func setup(t *testing.T, defs map[reflect.Type][]apis.MethodDef) apis.Resolver {
	t.Helper()
	reg := registry.New(config.DefaultConfig())
	for typ, ds := range defs {
		for _, d := range ds {
			if err := reg.Register(typ, d); err != nil {
				t.Fatalf("Register %s.%s: %v", typ, d.Name, err)
			}
		}
	}
	c := cache.New([]apis.Strategy{
		strategy.NewFieldStrategy(),
		strategy.NewPropertyStrategy(),
		strategy.NewMethodStrategy(),
		strategy.NewRegistryStrategy(reg),
	}, reg, nil)
	return resolver.New(c, nil)
}

func types(ts ...reflect.Type) []reflect.Type { return ts }

func TestResolveMember(t *testing.T) {
	r := setup(t, nil)
	cfg := config.DefaultConfig()

	m, ok := r.ResolveMember(reflect.TypeOf(Outer{}), "Base", cfg, true)
	if !ok || m.Kind != apis.FieldMember || m.Depth != 1 {
		t.Fatalf("ResolveMember(Base) = %+v, %v", m, ok)
	}
	if _, ok := r.ResolveMember(reflect.TypeOf(Outer{}), "base", cfg, true); ok {
		t.Fatalf("member lookup must be case-sensitive")
	}
	if _, ok := r.ResolveMember(nil, "Base", cfg, true); ok {
		t.Fatalf("nil type must not resolve")
	}
	if !r.HasMethod(reflect.TypeOf(Outer{}), "Native", cfg, false) {
		t.Fatalf("promoted method Native not found")
	}
	if r.HasMethod(reflect.TypeOf(Outer{}), "Missing", cfg, true) {
		t.Fatalf("unexpected method Missing")
	}
}

func TestResolveOverload(t *testing.T) {
	r := setup(t, map[reflect.Type][]apis.MethodDef{
		calcT: {
			{Name: "F", Func: func(*Calc, int, int) string { return "ints" }},
			{Name: "F", Func: func(*Calc, string, string) string { return "strings" }},
			{Name: "F", Func: func(*Calc, any, any) string { return "any" }},
			{Name: "G", Func: func(*Calc, io.Reader) {}},
			{Name: "G", Func: func(*Calc, io.Writer) {}},
			{Name: "H", Func: func(*Calc, ...int) {}},
			{Name: "H", Func: func(*Calc, int) {}},
			{Name: "Exact", Func: func(*Calc, any) {}, Params: []apis.Param{apis.Out(reflect.TypeFor[any]())}},
		},
	})
	cfg := config.DefaultConfig()
	buf := reflect.TypeOf(&bytes.Buffer{})

	tests := []struct {
		name   string
		method string
		args   []reflect.Type
		want   string
		wantOK bool
	}{
		{"ints", "F", types(intT, intT), "F(int,int)", true},
		{"strings", "F", types(stringT, stringT), "F(string,string)", true},
		{"fallback", "F", types(reflect.TypeFor[float64](), intT), "F(interface {},interface {})", true},
		{"nil args", "F", types(nil, nil), "F(interface {},interface {})", true},
		{"arity", "F", types(intT), "", false},
		{"ambiguous", "G", types(buf), "", false},
		{"reader only", "G", types(reflect.TypeOf(&strings.Reader{})), "G(io.Reader)", true},
		{"fixed preferred", "H", types(intT), "H(int)", true},
		{"variadic expanded", "H", types(intT, intT, intT), "H(...[]int)", true},
		{"variadic empty", "H", types(), "H(...[]int)", true},
		{"variadic slice", "H", types(reflect.TypeFor[[]int]()), "H(...[]int)", true},
		{"out exact", "Exact", types(reflect.TypeFor[any]()), "Exact(out interface {})", true},
		{"out inexact", "Exact", types(intT), "", false},
		{"native", "Native", types(intT), "Native(int)", true},
		{"missing", "Nope", types(), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := r.ResolveOverload(calcT, tt.method, tt.args, cfg, true)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v (got %s)", ok, tt.wantOK, m.Signature())
			}
			if ok && m.Signature() != tt.want {
				t.Fatalf("got %s, want %s", m.Signature(), tt.want)
			}
		})
	}
}

func TestResolveGenericOverload(t *testing.T) {
	echoDef := apis.MethodDef{
		Name:       "Echo",
		TypeParams: []apis.TypeParam{{Name: "T"}},
		Params:     []apis.Param{apis.Generic(0)},
		Instantiate: registry.Instantiations{
			{TypeArgs: types(intT), Func: echo[int]},
			{TypeArgs: types(stringT), Func: echo[string]},
		}.Instantiate,
	}
	showDef := apis.MethodDef{
		Name:        "Show",
		TypeParams:  []apis.TypeParam{{Name: "T", Constraint: reflect.TypeFor[fmt.Stringer]()}},
		Params:      []apis.Param{apis.Generic(0)},
		Instantiate: registry.Instantiations{{TypeArgs: types(reflect.TypeFor[Named]()), Func: show[Named]}}.Instantiate,
	}
	tagDef := apis.MethodDef{
		Name:        "Tag",
		TypeParams:  []apis.TypeParam{{Name: "T"}},
		Params:      []apis.Param{apis.Out(stringT), apis.Generic(0)},
		Instantiate: registry.Instantiations{}.Instantiate,
	}
	r := setup(t, map[reflect.Type][]apis.MethodDef{calcT: {echoDef, showDef, tagDef}})
	cfg := config.DefaultConfig()

	tests := []struct {
		name     string
		method   string
		args     []reflect.Type
		typeArgs []reflect.Type
		want     int
	}{
		{"echo int", "Echo", types(intT), types(intT), 1},
		{"echo any arg type", "Echo", types(reflect.TypeFor[bool]()), types(intT), 1},
		{"echo wrong arity", "Echo", types(intT, intT), types(intT), 0},
		{"echo wrong type arity", "Echo", types(intT), types(intT, intT), 0},
		{"echo no type args", "Echo", types(intT), nil, 0},
		{"constraint satisfied", "Show", types(reflect.TypeFor[Named]()), types(reflect.TypeFor[Named]()), 1},
		{"constraint violated", "Show", types(intT), types(intT), 0},
		{"out exact", "Tag", types(stringT, intT), types(intT), 1},
		{"out inexact", "Tag", types(reflect.TypeFor[Named](), intT), types(intT), 0},
		{"non-generic ignored", "Native", types(intT), types(intT), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.ResolveGenericOverload(calcT, tt.method, tt.args, tt.typeArgs, cfg, true)
			if len(got) != tt.want {
				t.Fatalf("got %d candidates, want %d", len(got), tt.want)
			}
		})
	}
}

func TestInvokeGeneric_EchoInt(t *testing.T) {
	r := setup(t, map[reflect.Type][]apis.MethodDef{calcT: {{
		Name:        "Echo",
		TypeParams:  []apis.TypeParam{{Name: "T"}},
		Params:      []apis.Param{apis.Generic(0)},
		Instantiate: registry.Instantiations{{TypeArgs: types(intT), Func: echo[int]}}.Instantiate,
	}}})

	recv := reflect.ValueOf(&Calc{}).Elem()
	call, ok := r.InvokeGeneric(recv, calcT, "Echo", []reflect.Value{reflect.ValueOf(1)}, types(intT), config.DefaultConfig(), true)
	if !ok {
		t.Fatalf("InvokeGeneric failed: %v", call.Failures)
	}
	if len(call.Results) != 1 || call.Results[0].Type() != intT || call.Results[0].Int() != 1 {
		t.Fatalf("Results = %v, want [1 (int)]", call.Results)
	}
	if call.Failures != nil {
		t.Fatalf("unexpected failures: %v", call.Failures)
	}
}

func TestInvokeGeneric_SkipsFailingCandidates(t *testing.T) {
	errNope := errors.New("nope")
	pick := func(param reflect.Type, inst apis.InstantiateFunc) apis.MethodDef {
		return apis.MethodDef{
			Name:        "Pick",
			TypeParams:  []apis.TypeParam{{Name: "T"}},
			Params:      []apis.Param{apis.Generic(0), apis.Concrete(param)},
			Instantiate: inst,
		}
	}
	instance := func(fn any) apis.InstantiateFunc {
		return func([]reflect.Type) (reflect.Value, error) { return reflect.ValueOf(fn), nil }
	}

	defs := []apis.MethodDef{
		pick(reflect.TypeFor[*stringerReader](), func([]reflect.Type) (reflect.Value, error) {
			return reflect.Value{}, errNope
		}),
		pick(reflect.TypeFor[any](), instance(func(*Calc, int, any) string { panic("kaboom") })),
		pick(reflect.TypeFor[fmt.Stringer](), instance(func(*Calc, int, fmt.Stringer) (string, error) { return "", errNope })),
		pick(reflect.TypeFor[io.Reader](), instance(func(*Calc, int, io.Reader) string { return "good" })),
	}
	r := setup(t, map[reflect.Type][]apis.MethodDef{calcT: defs})
	recv := reflect.ValueOf(&Calc{}).Elem()

	call, ok := r.InvokeGeneric(recv, calcT, "Pick",
		[]reflect.Value{reflect.ValueOf(7), reflect.ValueOf(&stringerReader{})}, types(intT), config.DefaultConfig(), true)
	if !ok {
		t.Fatalf("expected the last candidate to succeed: %v", call.Failures)
	}
	if got := call.Results[0].String(); got != "good" {
		t.Fatalf("result = %q, want good", got)
	}
	if got := call.Method.Params[1].Type; got != reflect.TypeFor[io.Reader]() {
		t.Fatalf("winning candidate takes %s", got)
	}

	failures := multierr.Errors(call.Failures)
	if len(failures) != 3 {
		t.Fatalf("recorded %d failures, want 3: %v", len(failures), call.Failures)
	}
	if !errors.Is(failures[0], errNope) {
		t.Fatalf("instantiation failure not recorded: %v", failures[0])
	}
	if !errors.Is(failures[1], uref.ErrReflectPanic) {
		t.Fatalf("panic not recorded: %v", failures[1])
	}
	if !errors.Is(failures[2], errNope) {
		t.Fatalf("error result not recorded: %v", failures[2])
	}
}

type stringerReader struct{}

func (*stringerReader) String() string { return "sr" }
func (*stringerReader) Read([]byte) (int, error) { return 0, io.EOF }

func TestInvokeGeneric_Exhausted(t *testing.T) {
	r := setup(t, map[reflect.Type][]apis.MethodDef{calcT: {{
		Name:        "Echo",
		TypeParams:  []apis.TypeParam{{Name: "T"}},
		Params:      []apis.Param{apis.Generic(0)},
		Instantiate: registry.Instantiations{{TypeArgs: types(intT), Func: echo[int]}}.Instantiate,
	}}})
	recv := reflect.ValueOf(&Calc{}).Elem()

	call, ok := r.InvokeGeneric(recv, calcT, "Echo", []reflect.Value{reflect.ValueOf("x")}, types(stringT), config.DefaultConfig(), true)
	if ok {
		t.Fatalf("expected failure, got %v", call.Results)
	}
	if !errors.Is(call.Failures, registry.ErrNotInstantiable) {
		t.Fatalf("Failures = %v, want ErrNotInstantiable", call.Failures)
	}

	call, ok = r.InvokeGeneric(recv, calcT, "Missing", nil, types(intT), config.DefaultConfig(), true)
	if ok || call.Failures != nil {
		t.Fatalf("no candidates: ok=%v failures=%v", ok, call.Failures)
	}
}

func TestInvokeGeneric_EmbeddedReceiver(t *testing.T) {
	r := setup(t, map[reflect.Type][]apis.MethodDef{calcT: {{
		Name:       "Echo",
		TypeParams: []apis.TypeParam{{Name: "T"}},
		Params:     []apis.Param{apis.Generic(0)},
		Instantiate: registry.Instantiations{{TypeArgs: types(intT), Func: func(c *Calc, v int) int {
			return c.Base + v
		}}}.Instantiate,
	}}})
	recv := reflect.ValueOf(&Outer{Calc: Calc{Base: 40}}).Elem()

	call, ok := r.InvokeGeneric(recv, reflect.TypeOf(Outer{}), "Echo", []reflect.Value{reflect.ValueOf(2)}, types(intT), config.DefaultConfig(), false)
	if !ok {
		t.Fatalf("InvokeGeneric failed: %v", call.Failures)
	}
	if got := call.Results[0].Int(); got != 42 {
		t.Fatalf("result = %d, want 42", got)
	}
}
