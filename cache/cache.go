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

// Package cache memoizes per-type descriptor snapshots.
//
// An entry is built by running the configured strategies in order and
// merging their output. Entries are installed once with LoadOrStore and are
// never mutated or evicted; the registry generation is part of the key, so
// registering a method produces a fresh entry instead of changing an old one.
package cache

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"dirpx.dev/dax/apis"
)

// New constructs a Cache over strategies. reg is consulted for its
// generation only; pass the registry the strategies read from. A nil
// logger disables logging.
func New(strategies []apis.Strategy, reg apis.Registry, logger *zap.Logger) apis.Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &cache{
		strategies: append([]apis.Strategy(nil), strategies...),
		reg:        reg,
		log:        logger.Named("cache"),
	}
}

// Ensure cache implements apis.Cache.
var _ apis.Cache = (*cache)(nil)

// cacheKey ensures memoization respects every input that affects discovery.
type cacheKey struct {
	t          reflect.Type
	mode       apis.PropertyMode
	unexported bool
	gen        uint64
}

func (k cacheKey) String() string {
	return fmt.Sprintf("%p/%d/%t/%d", k.t, k.mode, k.unexported, k.gen)
}

type cache struct {
	strategies []apis.Strategy
	reg        apis.Registry
	log        *zap.Logger

	// m maps cacheKey to *apis.TypeEntry.
	m     sync.Map
	group singleflight.Group

	hits, misses, installs atomic.Uint64
}

// Entry returns the descriptor snapshot of t.
func (c *cache) Entry(t reflect.Type, cfg apis.Config, useCache bool) *apis.TypeEntry {
	if t == nil {
		return &apis.TypeEntry{}
	}
	if !useCache {
		return c.build(t, cfg)
	}

	key := cacheKey{t: t, mode: cfg.PropertyMode, unexported: cfg.IncludeUnexported}
	if c.reg != nil {
		key.gen = c.reg.Generation()
	}
	if v, ok := c.m.Load(key); ok {
		c.hits.Add(1)
		return v.(*apis.TypeEntry)
	}
	c.misses.Add(1)

	v, _, _ := c.group.Do(key.String(), func() (any, error) {
		if v, ok := c.m.Load(key); ok {
			return v, nil
		}
		e := c.build(t, cfg)
		actual, loaded := c.m.LoadOrStore(key, e)
		if !loaded {
			c.installs.Add(1)
			c.log.Debug("type entry installed",
				zap.Stringer("type", t),
				zap.Int("members", len(e.Members)),
				zap.Int("methods", len(e.Methods)),
				zap.Uint64("generation", key.gen),
			)
		}
		return actual, nil
	})
	return v.(*apis.TypeEntry)
}

// Len returns the number of installed entries.
func (c *cache) Len() int {
	return int(c.installs.Load())
}

// Stats returns lookup counters.
func (c *cache) Stats() apis.CacheStats {
	return apis.CacheStats{
		Hits:     c.hits.Load(),
		Misses:   c.misses.Load(),
		Installs: c.installs.Load(),
	}
}

// build merges strategy output: members by name, methods by signature,
// earlier strategies and shallower declarations first.
func (c *cache) build(t reflect.Type, cfg apis.Config) *apis.TypeEntry {
	e := &apis.TypeEntry{Type: t}
	names := map[string]bool{}
	sigs := map[string]bool{}

	for _, s := range c.strategies {
		for _, m := range s.Members(t, cfg) {
			if names[m.Name] {
				continue
			}
			names[m.Name] = true
			e.Members = append(e.Members, m)
		}
		for _, m := range s.Methods(t, cfg) {
			sig := m.Signature()
			if sigs[sig] {
				c.log.Debug("method shadowed",
					zap.Stringer("type", t),
					zap.String("signature", sig),
					zap.Int("depth", m.Depth),
				)
				continue
			}
			sigs[sig] = true
			e.Methods = append(e.Methods, m)
		}
	}
	return e
}
