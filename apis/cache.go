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

import "reflect"

// Cache memoizes TypeEntry snapshots per type.
type Cache interface {
	// Entry returns the descriptor snapshot of t. With useCache false the
	// snapshot is recomputed and the shared cache is left untouched.
	Entry(t reflect.Type, cfg Config, useCache bool) *TypeEntry
	// Len returns the number of installed entries.
	Len() int
	// Stats returns lookup counters.
	Stats() CacheStats
}

// CacheStats are monotonic cache counters.
type CacheStats struct {
	Hits     uint64
	Misses   uint64
	Installs uint64
}
