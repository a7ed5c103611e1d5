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

	"dirpx.dev/dax/apis"
)

// NewFieldStrategy creates an apis.Strategy that discovers struct fields,
// including fields promoted from embedded structs.
func NewFieldStrategy() apis.Strategy {
	return fieldStrategy{}
}

// fieldStrategy walks the embedding chain breadth-first. Depth 0 is the
// struct itself; each embedded struct adds one level. Within a depth,
// fields keep declaration order. The first field seen for a name wins.
type fieldStrategy struct{}

// Ensure fieldStrategy implements apis.Strategy.
var _ apis.Strategy = (*fieldStrategy)(nil)

// level is one struct visited by the walk.
type level struct {
	t     reflect.Type
	index []int
}

// Members returns the fields of t. Non-struct types have none.
func (fieldStrategy) Members(t reflect.Type, cfg apis.Config) []apis.Member {
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	var out []apis.Member
	seen := map[string]bool{}
	visited := map[reflect.Type]bool{t: true}
	current := []level{{t: t}}

	for depth := 0; len(current) > 0; depth++ {
		var next []level
		for _, lv := range current {
			for i := 0; i < lv.t.NumField(); i++ {
				sf := lv.t.Field(i)
				if sf.Name == "_" {
					continue
				}
				index := append(append([]int(nil), lv.index...), i)

				if (sf.IsExported() || cfg.IncludeUnexported) && !seen[sf.Name] {
					seen[sf.Name] = true
					out = append(out, apis.Member{
						Name:     sf.Name,
						Type:     sf.Type,
						Kind:     apis.FieldMember,
						Readable: true,
						Writable: true,
						Exported: sf.IsExported(),
						Depth:    depth,
						Index:    index,
					})
				}

				if !sf.Anonymous {
					continue
				}
				ft := sf.Type
				if ft.Kind() == reflect.Pointer {
					ft = ft.Elem()
				}
				if ft.Kind() == reflect.Struct && !visited[ft] {
					visited[ft] = true
					next = append(next, level{t: ft, index: index})
				}
			}
		}
		current = next
	}
	return out
}

// Methods returns nil: fields are not invocable.
func (fieldStrategy) Methods(reflect.Type, apis.Config) []apis.Method {
	return nil
}
