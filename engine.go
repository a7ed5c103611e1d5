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
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"dirpx.dev/dax/apis"
	"dirpx.dev/dax/builder"
	"dirpx.dev/dax/config"
	uref "dirpx.dev/dax/utils/reflect"
)

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("dax: builder returned nil registry")
	// ErrNilCache is returned when a builder returns a nil cache.
	ErrNilCache = errors.New("dax: builder returned nil cache")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("dax: builder returned nil resolver")
)

// Engine creates nodes. It owns a registry, a descriptor cache and a
// resolver built for one Config. An Engine is immutable and safe for
// concurrent use.
type Engine struct {
	cfg   apis.Config
	reg   apis.Registry
	cache apis.Cache
	res   apis.Resolver
	bld   apis.Builder
	log   *zap.Logger

	// ownBuilder is set when the builder was supplied with WithBuilder.
	ownBuilder bool
}

// New builds an Engine. Without options it uses config.DefaultConfig, a
// fresh registry and a no-op logger.
func New(opts ...Option) *Engine {
	var o engineOptions
	for _, opt := range opts {
		opt(&o)
	}
	return build(o, nil)
}

// build composes an engine. A nil registry in o is built by the builder,
// migrating the entries of prev.
func build(o engineOptions, prev apis.Registry) *Engine {
	cfg := config.DefaultConfig()
	if o.cfg != nil {
		cfg = config.Sanitize(*o.cfg)
	}
	log := o.log
	if log == nil {
		log = zap.NewNop()
	}
	bld := o.bld
	if bld == nil {
		bld = builder.New(builder.WithLogger(log))
	}

	reg := o.reg
	if reg == nil {
		reg = bld.BuildRegistry(cfg, prev)
	}
	if reg == nil {
		panic(ErrNilRegistry)
	}
	c := bld.BuildCache(cfg, reg)
	if c == nil {
		panic(ErrNilCache)
	}
	res := bld.BuildResolver(cfg, c)
	if res == nil {
		panic(ErrNilResolver)
	}

	return &Engine{cfg: cfg, reg: reg, cache: c, res: res, bld: bld, log: log, ownBuilder: o.bld != nil}
}

// Config returns the engine configuration.
func (e *Engine) Config() apis.Config { return e.cfg }

// Registry returns the engine's method registry.
func (e *Engine) Registry() apis.Registry { return e.reg }

// Cache returns the engine's descriptor cache.
func (e *Engine) Cache() apis.Cache { return e.cache }

// Resolver returns the engine's resolver.
func (e *Engine) Resolver() apis.Resolver { return e.res }

// Builder returns the builder the engine was composed with.
func (e *Engine) Builder() apis.Builder { return e.bld }

// Logger returns the engine logger.
func (e *Engine) Logger() *zap.Logger { return e.log }

// Register adds a method to t. See apis.MethodDef for the accepted forms.
func (e *Engine) Register(t reflect.Type, def apis.MethodDef) error {
	if err := e.reg.Register(t, def); err != nil {
		return err
	}
	e.log.Debug("method registered", zap.Stringer("type", t), zap.String("name", def.Name))
	return nil
}

// Create wraps obj in a Node. Pointers are followed up to Config.MaxUnwrap
// levels; a value that is not reached through a pointer is copied, so Set
// on the node changes the copy only.
func (e *Engine) Create(obj any, opts ...CreateOption) (Node, error) {
	var o createOptions
	for _, opt := range opts {
		opt(&o)
	}
	useCache := e.cfg.UseCache
	if o.useCache != nil {
		useCache = *o.useCache
	}

	if n, ok := obj.(Node); ok {
		obj = n.Value()
	}
	if obj == nil {
		return nil, accessError("create", nil, nil, ErrNilObject, "", nil)
	}

	orig := reflect.ValueOf(obj)
	base, err := uref.Indirect(orig, e.cfg)
	switch {
	case errors.Is(err, uref.ErrReflectNilValue):
		return nil, accessError("create", nil, orig.Type(), ErrNilObject, "", nil)
	case err != nil:
		return nil, accessError("create", nil, orig.Type(), ErrTypeMismatch, "", err)
	}
	n := &objectNode{eng: e, orig: orig, base: uref.Addressable(base), useCache: useCache}
	n.typ = n.base.Type()

	if o.treatAs != nil {
		if err := n.treatAs(o.treatAs); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// wrap turns a produced value into a node.
func (e *Engine) wrap(v reflect.Value, useCache bool) (Node, error) {
	if uref.IsNil(v) {
		return nil, nil
	}
	base, err := uref.Indirect(v, e.cfg)
	switch {
	case errors.Is(err, uref.ErrReflectNilValue):
		return nil, nil
	case err != nil:
		return nil, accessError("wrap", nil, v.Type(), ErrTypeMismatch, "", err)
	}
	n := &objectNode{eng: e, orig: v, base: uref.Addressable(base), useCache: useCache}
	n.typ = n.base.Type()
	return n, nil
}

// results wraps the non-error results of a call: none is nil, one is
// wrapped as is, several are wrapped as []any.
func (e *Engine) results(out []reflect.Value, useCache bool) (Node, error) {
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return e.wrap(out[0], useCache)
	}
	vals := make([]any, len(out))
	for i, v := range out {
		vals[i] = uref.Expose(v).Interface()
	}
	return e.wrap(reflect.ValueOf(vals), useCache)
}

// treatAs switches the resolution type of a freshly created node.
func (n *objectNode) treatAs(t reflect.Type) error {
	bt := n.base.Type()
	if t.Kind() == reflect.Pointer && (t.Elem().Kind() == reflect.Struct || t.Elem() == bt) {
		t = t.Elem()
	}

	switch {
	case t == bt:
		return nil
	case t.Kind() == reflect.Interface:
		if bt.Implements(t) || reflect.PointerTo(bt).Implements(t) {
			n.typ = t
			return nil
		}
	case t.Kind() == reflect.Struct:
		for _, emb := range uref.Embedded(bt) {
			if emb.Type != t {
				continue
			}
			v, err := uref.Receiver(n.base, emb.Index, t)
			if err != nil {
				return accessError("create", nil, bt, ErrTypeMismatch, fmt.Sprintf("cannot view as %s", t), err)
			}
			n.base, n.typ, n.orig = v, t, reflect.Value{}
			return nil
		}
	}

	if bt.ConvertibleTo(t) {
		if v, err := safeConvert(n.base, t); err == nil {
			n.base, n.typ, n.orig = uref.Addressable(v), t, reflect.Value{}
			return nil
		}
	}
	return accessError("create", nil, bt, ErrTypeMismatch, fmt.Sprintf("cannot treat %s as %s", bt, t), nil)
}
