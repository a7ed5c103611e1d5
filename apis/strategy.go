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

import (
	"reflect"
)

// Strategy is a pluggable discovery step. A Cache runs its strategies in
// order and merges their output: members by name, methods by signature,
// earlier strategies taking precedence.
type Strategy interface {
	// Members returns the members t contributes, most-derived first.
	Members(t reflect.Type, cfg Config) []Member

	// Methods returns the methods t contributes, most-derived first.
	Methods(t reflect.Type, cfg Config) []Method
}
