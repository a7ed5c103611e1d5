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

package strategy_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"

	"dirpx.dev/dax/apis"
	"dirpx.dev/dax/config"
	"dirpx.dev/dax/registry"
	"dirpx.dev/dax/strategy"
)

type Base struct {
	ID     int
	secret string
}

type Mid struct {
	Base
	Name string
}

type Derived struct {
	*Mid
	Name  string
	Extra int
	_     int
}

type Account struct {
	balance int
	owner   string
}

func (a *Account) Balance() int { return a.balance }
func (a *Account) SetBalance(v int) { a.balance = v }
func (a Account) Owner() string { return a.owner }
func (a *Account) GetOwner() string { return a.owner }
func (a *Account) Close() error { return nil }
func (a *Account) Deposit(n int) { a.balance += n }
func (a *Account) Tags(...string) [2]int { return [2]int{} }

func memberNames(ms []apis.Member) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Name
	}
	return out
}

func TestFieldStrategy_Order(t *testing.T) {
	s := strategy.NewFieldStrategy()
	typ := reflect.TypeOf(Derived{})

	tests := []struct {
		name       string
		unexported bool
		want       []string
	}{
		{"with unexported", true, []string{"Mid", "Name", "Extra", "Base", "ID", "secret"}},
		{"exported only", false, []string{"Mid", "Name", "Extra", "Base", "ID"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewConfig(config.WithIncludeUnexported(tt.unexported))
			got := memberNames(s.Members(typ, cfg))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Members() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFieldStrategy_Descriptors(t *testing.T) {
	s := strategy.NewFieldStrategy()
	ms := s.Members(reflect.TypeOf(Derived{}), config.DefaultConfig())

	byName := map[string]apis.Member{}
	for _, m := range ms {
		byName[m.Name] = m
	}

	// Derived.Name shadows Mid.Name.
	if m := byName["Name"]; m.Depth != 0 || !cmp.Equal(m.Index, []int{1}) {
		t.Fatalf("Name: depth=%d index=%v, want depth 0 index [1]", m.Depth, m.Index)
	}
	if m := byName["ID"]; m.Depth != 2 || !cmp.Equal(m.Index, []int{0, 0, 0}) || !m.Exported {
		t.Fatalf("ID: %+v", m)
	}
	if m := byName["secret"]; m.Exported || !m.Writable || m.Kind != apis.FieldMember {
		t.Fatalf("secret: %+v", m)
	}
	if s.Methods(reflect.TypeOf(Derived{}), config.DefaultConfig()) != nil {
		t.Fatalf("field strategy must not report methods")
	}
}

func TestFieldStrategy_NonStruct(t *testing.T) {
	s := strategy.NewFieldStrategy()
	for _, typ := range []reflect.Type{nil, reflect.TypeFor[int](), reflect.TypeFor[*Base](), reflect.TypeFor[fmt.Stringer]()} {
		if got := s.Members(typ, config.DefaultConfig()); got != nil {
			t.Fatalf("Members(%v) = %v, want nil", typ, got)
		}
	}
}

type Node struct {
	Value int
	*Node
}

func TestFieldStrategy_RecursiveEmbedding(t *testing.T) {
	got := memberNames(strategy.NewFieldStrategy().Members(reflect.TypeOf(Node{}), config.DefaultConfig()))
	if diff := cmp.Diff([]string{"Value", "Node"}, got); diff != "" {
		t.Fatalf("Members() mismatch (-want +got):\n%s", diff)
	}
}

func TestPropertyStrategy_Modes(t *testing.T) {
	s := strategy.NewPropertyStrategy()
	typ := reflect.TypeOf(Account{})

	type prop struct {
		Name     string
		Writable bool
	}
	tests := []struct {
		mode apis.PropertyMode
		want []prop
	}{
		{apis.PropertyGetters, []prop{{"Balance", true}, {"GetOwner", false}, {"Owner", false}}},
		{apis.PropertyPrefixed, []prop{{"Owner", false}}},
		{apis.PropertyNone, nil},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			var got []prop
			for _, m := range s.Members(typ, config.NewConfig(config.WithPropertyMode(tt.mode))) {
				if m.Kind != apis.PropertyMember || !m.Readable || !m.Getter.IsValid() {
					t.Fatalf("bad property descriptor %+v", m)
				}
				if m.Writable != m.Setter.IsValid() {
					t.Fatalf("%s: Writable=%v but Setter valid=%v", m.Name, m.Writable, m.Setter.IsValid())
				}
				got = append(got, prop{m.Name, m.Writable})
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Members() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPropertyStrategy_GetterAndSetterWork(t *testing.T) {
	s := strategy.NewPropertyStrategy()
	var bal apis.Member
	cfg := config.NewConfig(config.WithPropertyMode(apis.PropertyGetters))
	for _, m := range s.Members(reflect.TypeOf(Account{}), cfg) {
		if m.Name == "Balance" {
			bal = m
		}
	}
	acc := &Account{balance: 5}
	recv := reflect.ValueOf(acc)
	bal.Setter.Call([]reflect.Value{recv, reflect.ValueOf(9)})
	if got := bal.Getter.Call([]reflect.Value{recv})[0].Int(); got != 9 {
		t.Fatalf("Balance after SetBalance(9) = %d", got)
	}
}

func TestPropertyStrategy_Interface(t *testing.T) {
	if got := strategy.NewPropertyStrategy().Members(reflect.TypeFor[fmt.Stringer](), config.DefaultConfig()); got != nil {
		t.Fatalf("interfaces have no properties, got %v", got)
	}
}

func TestMethodStrategy_Concrete(t *testing.T) {
	ms := strategy.NewMethodStrategy().Methods(reflect.TypeOf(Account{}), config.DefaultConfig())

	var sigs []string
	for _, m := range ms {
		if m.Source != apis.NativeMethod || !m.Func.IsValid() || m.Recv != reflect.TypeOf(&Account{}) {
			t.Fatalf("bad native descriptor %+v", m)
		}
		sigs = append(sigs, m.Signature())
	}
	want := []string{
		"Balance()", "Close()", "Deposit(int)", "GetOwner()", "Owner()",
		"SetBalance(int)", "Tags(...[]string)",
	}
	if diff := cmp.Diff(want, sigs); diff != "" {
		t.Fatalf("Methods() mismatch (-want +got):\n%s", diff)
	}
	if ms[1].Results == nil || len(ms[1].Results) != 0 {
		t.Fatalf("Close: trailing error must be stripped, got %v", ms[1].Results)
	}
	if !ms[6].Variadic {
		t.Fatalf("Tags must be variadic")
	}
}

func TestMethodStrategy_Interface(t *testing.T) {
	ms := strategy.NewMethodStrategy().Methods(reflect.TypeFor[fmt.Stringer](), config.DefaultConfig())
	if len(ms) != 1 {
		t.Fatalf("got %d methods, want 1", len(ms))
	}
	m := ms[0]
	if m.Name != "String" || m.Func.IsValid() || m.Index != 0 || m.Recv != reflect.TypeFor[fmt.Stringer]() {
		t.Fatalf("bad interface descriptor %+v", m)
	}
}

func describeBase(b *Base) string { return fmt.Sprint(b.ID) }
func describeDerived(d Derived) string { return d.Name }

func TestRegistryStrategy_EmbeddedPaths(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	if err := reg.Register(reflect.TypeOf(Base{}), apis.MethodDef{Name: "Describe", Func: describeBase}); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(reflect.TypeOf(Derived{}), apis.MethodDef{Name: "Self", Func: describeDerived}); err != nil {
		t.Fatal(err)
	}

	ms := strategy.NewRegistryStrategy(reg).Methods(reflect.TypeOf(Derived{}), config.DefaultConfig())
	if len(ms) != 2 {
		t.Fatalf("got %d methods, want 2", len(ms))
	}
	if ms[0].Name != "Self" || ms[0].Depth != 0 || ms[0].Path != nil {
		t.Fatalf("own method: %+v", ms[0])
	}
	if ms[1].Name != "Describe" || ms[1].Depth != 2 || !cmp.Equal(ms[1].Path, []int{0, 0}) {
		t.Fatalf("embedded method: name=%s depth=%d path=%v", ms[1].Name, ms[1].Depth, ms[1].Path)
	}
}

func TestRegistryStrategy_NilRegistry(t *testing.T) {
	if got := strategy.NewRegistryStrategy(nil).Methods(reflect.TypeOf(Base{}), config.DefaultConfig()); got != nil {
		t.Fatalf("nil registry: got %v", got)
	}
}
