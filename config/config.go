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

package config

import (
	"dirpx.dev/dax/apis"
)

const (
	// DefaultPropertyMode represents the default for PropertyMode.
	// Only GetX() methods are read as properties, so Get never runs an
	// arbitrary nullary method.
	DefaultPropertyMode = apis.PropertyPrefixed
	// DefaultIncludeUnexported represents the default for IncludeUnexported.
	// When true, unexported fields are discovered as members.
	DefaultIncludeUnexported = true
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
	// DefaultUseCache represents the default for UseCache.
	DefaultUseCache = true
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return Sanitize(cfg)
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		PropertyMode:      DefaultPropertyMode,
		IncludeUnexported: DefaultIncludeUnexported,
		MaxUnwrap:         DefaultMaxUnwrap,
		UseCache:          DefaultUseCache,
	}
}

// Sanitize replaces out-of-range values with their defaults.
func Sanitize(cfg apis.Config) apis.Config {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	switch cfg.PropertyMode {
	case apis.PropertyGetters, apis.PropertyPrefixed, apis.PropertyNone:
	default:
		cfg.PropertyMode = DefaultPropertyMode
	}
	return cfg
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithPropertyMode sets the PropertyMode option.
func WithPropertyMode(mode apis.PropertyMode) Option {
	return func(c *apis.Config) {
		c.PropertyMode = mode
	}
}

// WithIncludeUnexported sets the IncludeUnexported option.
func WithIncludeUnexported(include bool) Option {
	return func(c *apis.Config) {
		c.IncludeUnexported = include
	}
}

// WithMaxUnwrap sets the MaxUnwrap option.
// A non-positive value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max <= 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithUseCache sets the UseCache option.
func WithUseCache(use bool) Option {
	return func(c *apis.Config) {
		c.UseCache = use
	}
}
