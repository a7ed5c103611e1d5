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
	"reflect"

	"go.uber.org/zap"

	"dirpx.dev/dax/apis"
)

// New constructs an apis.Resolver over cache. A nil logger disables logging.
// The returned resolver is safe for concurrent use provided the cache is.
func New(cache apis.Cache, logger *zap.Logger) apis.Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &resolver{cache: cache, log: logger.Named("resolver")}
}

// resolver is an immutable view over a Cache.
type resolver struct {
	cache apis.Cache
	log   *zap.Logger
}

// Ensure resolver implements apis.Resolver.
var _ apis.Resolver = (*resolver)(nil)

// ResolveMember returns the first member of t named name.
func (r *resolver) ResolveMember(t reflect.Type, name string, cfg apis.Config, useCache bool) (apis.Member, bool) {
	if t == nil || name == "" {
		return apis.Member{}, false
	}
	return r.cache.Entry(t, cfg, useCache).Member(name)
}

// HasMethod reports whether t has any method named name.
func (r *resolver) HasMethod(t reflect.Type, name string, cfg apis.Config, useCache bool) bool {
	if t == nil || name == "" {
		return false
	}
	return r.cache.Entry(t, cfg, useCache).HasMethod(name)
}

// ResolveMethodsNamed returns every method of t named name.
func (r *resolver) ResolveMethodsNamed(t reflect.Type, name string, cfg apis.Config, useCache bool) []apis.Method {
	if t == nil || name == "" {
		return nil
	}
	return r.cache.Entry(t, cfg, useCache).MethodsNamed(name)
}
