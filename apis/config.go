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

// Config carries the knobs shared by the registry and the adapters.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// DefaultScope is the scope an entry with an empty scope set belongs to.
	DefaultScope string

	// QueryPriority is the default priority for read-style blockers
	// (single reads, paginated reads, parallel batches).
	QueryPriority int

	// MutationPriority is the default priority for write-style blockers.
	// Writes outrank reads so an in-flight save is not drowned out by a
	// background refresh targeting the same scope.
	MutationPriority int
}
