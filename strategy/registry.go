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
	uref "dirpx.dev/dax/utils/reflect"
)

// NewRegistryStrategy creates an apis.Strategy that lists methods from an
// apis.Registry: those registered for T first, then those registered for
// each struct embedded in T, shallowest first.
func NewRegistryStrategy(reg apis.Registry) apis.Strategy {
	return &registryStrategy{reg: reg}
}

// registryStrategy consults a provided apis.Registry.
type registryStrategy struct {
	reg apis.Registry
}

// Ensure registryStrategy implements apis.Strategy.
var _ apis.Strategy = (*registryStrategy)(nil)

// Members returns nil: the registry holds methods only.
func (s *registryStrategy) Members(reflect.Type, apis.Config) []apis.Member {
	return nil
}

// Methods looks up t and its embedded structs in the registry.
func (s *registryStrategy) Methods(t reflect.Type, _ apis.Config) []apis.Method {
	if t == nil || s.reg == nil {
		return nil
	}
	out := s.reg.Lookup(t)
	for _, e := range uref.Embedded(t) {
		for _, m := range s.reg.Lookup(e.Type) {
			m.Depth = e.Depth
			m.Path = e.Index
			out = append(out, m)
		}
	}
	return out
}
