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
	"sync"
	"sync/atomic"

	"dirpx.dev/dax/apis"
)

var (
	// current holds the default engine.
	current atomic.Pointer[Engine]
	// buildMu serializes Configure.
	buildMu sync.Mutex
)

// init initializes the default engine.
func init() {
	current.Store(New())
}

// Default returns the default engine.
func Default() *Engine {
	return current.Load()
}

// SetDefault replaces the default engine. Nil is ignored.
func SetDefault(e *Engine) {
	if e == nil {
		return
	}
	buildMu.Lock()
	defer buildMu.Unlock()
	current.Store(e)
}

// Configure rebuilds the default engine with opts applied on top of the
// current settings. Unless WithRegistry is given, registered methods are
// migrated to the new registry.
func Configure(opts ...Option) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := current.Load()
	cfg := old.cfg
	o := engineOptions{cfg: &cfg, log: old.log}
	if old.ownBuilder {
		o.bld = old.bld
	}
	for _, opt := range opts {
		opt(&o)
	}
	current.Store(build(o, old.reg))
}

// Create wraps obj using the default engine.
func Create(obj any, opts ...CreateOption) (Node, error) {
	return Default().Create(obj, opts...)
}

// Register adds a method to t in the default engine's registry.
func Register(t reflect.Type, def apis.MethodDef) error {
	return Default().Register(t, def)
}
