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

package blockfx

import (
	"sync"
	"sync/atomic"

	"dirpx.dev/blockfx/apis"
	"dirpx.dev/blockfx/config"
	"dirpx.dev/blockfx/registry"
)

// init initializes the global state with the default configuration and a
// fresh default registry.
func init() {
	cfg := config.DefaultConfig()
	st.Store(&state{cfg: cfg, reg: registry.New(cfg)})
}

// Registry returns the process-wide default registry.
// Adapters constructed without an explicit registry bind to this one.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry replaces the process-wide default registry.
// A nil registry is ignored. Entries held in the previous registry are not
// migrated: adapters bind their registry at construction, so swap before
// building adapters, not after.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	swapMu.Lock()
	defer swapMu.Unlock()

	old := st.Load()
	st.Store(&state{cfg: old.cfg, reg: reg})
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration and rebuilds the default registry
// with it. Active entries in the previous default registry are discarded,
// so this belongs in process setup, before any adapter exists.
func SetConfig(cfg apis.Config) {
	swapMu.Lock()
	defer swapMu.Unlock()

	st.Store(&state{cfg: cfg, reg: registry.New(cfg)})
}

// Add creates id in the default registry.
// This is a convenience wrapper around the global registry.
func Add(id string, meta apis.Meta) {
	st.Load().reg.Add(id, meta)
}

// Update patches id in the default registry.
// This is a convenience wrapper around the global registry.
func Update(id string, p apis.Patch) {
	st.Load().reg.Update(id, p)
}

// Remove deletes id from the default registry.
// This is a convenience wrapper around the global registry.
func Remove(id string) {
	st.Load().reg.Remove(id)
}

// IsBlocked reports whether any active blocker in the default registry
// targets scope.
func IsBlocked(scope string) bool {
	return st.Load().reg.IsBlocked(scope)
}

// BlockingInfo returns the active blockers in the default registry targeting
// scope, highest priority first.
func BlockingInfo(scope string) []apis.Info {
	return st.Load().reg.BlockingInfo(scope)
}

// swapMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var swapMu sync.Mutex

// st is the global blockfx state.
var st atomic.Pointer[state]

// state is the global blockfx state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global blockfx configuration.
	cfg apis.Config
	// reg is the process-wide default registry.
	reg apis.Registry
}
