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

// Package lifecycle synchronizes one blocker identity against a registry.
//
// A Handle owns the should-the-entry-exist decision for exactly one
// (identity, call site) pair. Sync reconciles the registry on every observed
// state change; Release guarantees the entry is gone on teardown. The handle
// tracks whether it is currently the holder of the entry, so it never
// removes what it did not add and never re-creates an entry it already
// holds — creation and in-place update stay distinct transitions, which is
// what keeps a timed entry's countdown from restarting on every metadata
// refresh.
package lifecycle

import (
	"sync"

	"dirpx.dev/blockfx/apis"
)

// New binds a Handle to reg for the given identity.
// A nil registry yields a Handle whose operations are all no-ops.
func New(reg apis.Registry, id string) *Handle {
	return &Handle{reg: reg, id: id}
}

// Handle reconciles one blocker identity against its registry.
// Safe for concurrent use.
type Handle struct {
	reg apis.Registry
	id  string

	// mu guards held.
	mu sync.Mutex
	// held reports whether this handle currently owns the registry entry.
	held bool
}

// Sync brings the registry in line with shouldBlock and meta.
//
// Transitions:
//   - not holding, shouldBlock -> create the entry with the full metadata,
//     including Timeout/OnTimeout; the timeout countdown starts here.
//   - holding, shouldBlock     -> patch scope/reason/priority in place;
//     the running countdown is untouched.
//   - holding, !shouldBlock    -> remove the entry.
//   - not holding, !shouldBlock -> nothing; removal is only meaningful
//     relative to this handle's own prior creation.
//
// Sync surfaces no errors and performs no retries; it is a pure
// state-synchronization shim over the registry.
func (h *Handle) Sync(shouldBlock bool, meta apis.Meta) {
	if h.reg == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	switch {
	case shouldBlock && !h.held:
		h.reg.Add(h.id, meta)
		h.held = true

	case shouldBlock && h.held:
		h.reg.Update(h.id, apis.Patch{
			Scopes:   meta.Scopes,
			Reason:   &meta.Reason,
			Priority: &meta.Priority,
		})

	case !shouldBlock && h.held:
		h.reg.Remove(h.id)
		h.held = false
	}
}

// Release removes the entry if this handle holds it, regardless of the last
// synchronized state. Idempotent; the handle may be synchronized again
// afterwards, which starts a fresh entry (and a fresh timeout window).
func (h *Handle) Release() {
	if h.reg == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.held {
		return
	}
	h.reg.Remove(h.id)
	h.held = false
}

// Held reports whether this handle currently owns the registry entry.
func (h *Handle) Held() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.held
}

// ID returns the identity this handle synchronizes.
func (h *Handle) ID() string {
	return h.id
}
