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

package builder

import (
	"go.uber.org/zap"

	"dirpx.dev/dax/apis"
	"dirpx.dev/dax/cache"
	"dirpx.dev/dax/registry"
	"dirpx.dev/dax/resolver"
	"dirpx.dev/dax/strategy"
)

// Option configures the builder.
type Option func(*builder)

// WithLogger sets the logger handed to every built component.
func WithLogger(l *zap.Logger) Option {
	return func(b *builder) {
		if l != nil {
			b.log = l
		}
	}
}

// WithStrategies appends discovery strategies after the built-in ones.
// Built-in strategies take precedence on name and signature clashes.
func WithStrategies(s ...apis.Strategy) Option {
	return func(b *builder) {
		for _, x := range s {
			if x != nil {
				b.extra = append(b.extra, x)
			}
		}
	}
}

// New creates and returns a new instance of an apis.Builder.
func New(opts ...Option) apis.Builder {
	b := &builder{log: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// builder composes the default components.
type builder struct {
	log   *zap.Logger
	extra []apis.Strategy
}

// Ensure builder implements apis.Builder.
var _ apis.Builder = (*builder)(nil)

// BuildRegistry builds a new apis.Registry for cfg. If a pre-existing
// registry is provided, its entries are copied into the new registry.
// Entries the new registry rejects are logged and dropped.
func (b *builder) BuildRegistry(cfg apis.Config, prev apis.Registry) apis.Registry {
	nreg := registry.New(cfg)
	if prev == nil {
		return nreg
	}
	for _, e := range prev.Entries() {
		if err := nreg.Register(e.Type, e.Def); err != nil {
			b.log.Warn("registry entry not migrated",
				zap.Stringer("type", e.Type),
				zap.String("method", e.Method.Signature()),
				zap.Error(err),
			)
		}
	}
	return nreg
}

// BuildCache builds a Cache running fields, properties, native methods and
// registered methods from reg, in that order, followed by any extra
// strategies.
func (b *builder) BuildCache(_ apis.Config, reg apis.Registry) apis.Cache {
	strategies := []apis.Strategy{
		strategy.NewFieldStrategy(),
		strategy.NewPropertyStrategy(),
		strategy.NewMethodStrategy(),
		strategy.NewRegistryStrategy(reg),
	}
	return cache.New(append(strategies, b.extra...), reg, b.log)
}

// BuildResolver builds a Resolver over c.
func (b *builder) BuildResolver(_ apis.Config, c apis.Cache) apis.Resolver {
	return resolver.New(c, b.log)
}
