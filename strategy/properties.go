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

package strategy

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"dirpx.dev/dax/apis"
)

var errorType = reflect.TypeFor[error]()

// NewPropertyStrategy creates an apis.Strategy that surfaces getter and
// setter methods as properties according to Config.PropertyMode.
func NewPropertyStrategy() apis.Strategy {
	return propertyStrategy{}
}

// propertyStrategy reads the method set of *T. A getter takes no arguments
// and returns one non-error value. A setter "Set<Name>" takes one argument
// of the getter's type and returns nothing or an error.
type propertyStrategy struct{}

// Ensure propertyStrategy implements apis.Strategy.
var _ apis.Strategy = (*propertyStrategy)(nil)

// Members returns the properties of t in method-set order.
func (propertyStrategy) Members(t reflect.Type, cfg apis.Config) []apis.Member {
	if t == nil || t.Kind() == reflect.Interface || cfg.PropertyMode == apis.PropertyNone {
		return nil
	}

	pt := reflect.PointerTo(t)
	var out []apis.Member
	for i := 0; i < pt.NumMethod(); i++ {
		m := pt.Method(i)
		name, ok := propertyName(m.Name, cfg.PropertyMode)
		if !ok || !isGetter(m.Type) {
			continue
		}
		typ := m.Type.Out(0)

		p := apis.Member{
			Name:     name,
			Type:     typ,
			Kind:     apis.PropertyMember,
			Readable: true,
			Exported: true,
			Getter:   m.Func,
		}
		if s, ok := pt.MethodByName("Set" + name); ok && isSetter(s.Type, typ) {
			p.Writable = true
			p.Setter = s.Func
		}
		out = append(out, p)
	}
	return out
}

// Methods returns nil: accessors are listed by NewMethodStrategy.
func (propertyStrategy) Methods(reflect.Type, apis.Config) []apis.Method {
	return nil
}

func propertyName(method string, mode apis.PropertyMode) (string, bool) {
	switch mode {
	case apis.PropertyGetters:
		return method, true
	case apis.PropertyPrefixed:
		rest, ok := strings.CutPrefix(method, "Get")
		if !ok || rest == "" {
			return "", false
		}
		r, _ := utf8.DecodeRuneInString(rest)
		return rest, unicode.IsUpper(r)
	default:
		return "", false
	}
}

// isGetter expects the receiver as the only input.
func isGetter(ft reflect.Type) bool {
	return ft.NumIn() == 1 && ft.NumOut() == 1 && ft.Out(0) != errorType
}

func isSetter(ft, typ reflect.Type) bool {
	if ft.NumIn() != 2 || ft.In(1) != typ || ft.IsVariadic() {
		return false
	}
	switch ft.NumOut() {
	case 0:
		return true
	case 1:
		return ft.Out(0) == errorType
	default:
		return false
	}
}
