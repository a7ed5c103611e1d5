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

package apis

// Config carries read-only discovery and access knobs.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// PropertyMode selects which methods are exposed as properties.
	PropertyMode PropertyMode `yaml:"property_mode"`

	// IncludeUnexported controls whether unexported struct fields are
	// discovered as members. Promoted exported fields are always discovered.
	IncludeUnexported bool `yaml:"include_unexported"`

	// MaxUnwrap limits how many pointer levels are dereferenced when a value
	// is wrapped. Acts as a safety guard against pathological nesting.
	MaxUnwrap int `yaml:"max_unwrap"`

	// UseCache is the default cache flag for accessors created without an
	// explicit choice.
	UseCache bool `yaml:"use_cache"`
}
