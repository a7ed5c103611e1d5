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

package dax

import (
	"reflect"

	"go.uber.org/zap"

	"dirpx.dev/dax/apis"
)

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	cfg *apis.Config
	reg apis.Registry
	log *zap.Logger
	bld apis.Builder
}

// WithConfig sets the engine configuration. It is sanitized first.
func WithConfig(cfg apis.Config) Option {
	return func(o *engineOptions) { o.cfg = &cfg }
}

// WithRegistry makes the engine use reg instead of building a new one.
func WithRegistry(reg apis.Registry) Option {
	return func(o *engineOptions) { o.reg = reg }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *engineOptions) { o.log = l }
}

// WithBuilder replaces the builder composing registry, cache and resolver.
func WithBuilder(b apis.Builder) Option {
	return func(o *engineOptions) { o.bld = b }
}

// CreateOption configures a single Create call.
type CreateOption func(*createOptions)

type createOptions struct {
	useCache *bool
	treatAs  reflect.Type
}

// WithCache sets whether the node and every node derived from it use the
// shared descriptor cache. It overrides Config.UseCache.
func WithCache(use bool) CreateOption {
	return func(o *createOptions) { o.useCache = &use }
}

// WithoutCache is WithCache(false).
func WithoutCache() CreateOption { return WithCache(false) }

// TreatAs resolves names against t instead of the runtime type. t may be
// the runtime type itself, an interface the value implements, a struct
// embedded in the value, or a type the value converts to.
func TreatAs(t reflect.Type) CreateOption {
	return func(o *createOptions) { o.treatAs = t }
}
