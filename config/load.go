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
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"dirpx.dev/dax/apis"
)

// Load reads a YAML document into a Config. Keys that are absent keep
// their defaults; unknown keys are rejected. An empty document yields
// DefaultConfig.
//
//	property_mode: prefixed
//	include_unexported: false
//	max_unwrap: 4
//	use_cache: true
func Load(r io.Reader) (apis.Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return apis.Config{}, fmt.Errorf("config: decode: %w", err)
	}
	return Sanitize(cfg), nil
}

// LoadFile reads the YAML config file at path.
func LoadFile(path string) (apis.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return apis.Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	return Load(f)
}
