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

import "time"

// Registry is the shared store of active blockers, keyed by blocker identity.
// The lifecycle layer depends only on this interface; a default process-wide
// implementation lives in the registry package. Implementations must be safe
// for concurrent use and must treat all five operations as total over valid
// (non-empty) identities: invalid inputs are ignored, never panicked on.
type Registry interface {
	// Add creates the entry for id with the given metadata. If meta carries a
	// Timeout, its countdown starts now and is never restarted by Update.
	// Adding an existing id replaces its metadata without touching the
	// running timeout (last writer wins).
	Add(id string, meta Meta)
	// Update patches the entry for id in place. Unknown ids are ignored.
	// Timeout and OnTimeout are not patchable.
	Update(id string, p Patch)
	// Remove deletes the entry for id, cancelling any pending timeout without
	// invoking OnTimeout. Unknown ids are ignored.
	Remove(id string)
	// IsBlocked reports whether any active blocker targets scope.
	IsBlocked(scope string) bool
	// BlockingInfo returns the active blockers targeting scope, ordered by
	// priority descending (insertion order breaks ties).
	BlockingInfo(scope string) []Info
}

// Meta describes one active blocker.
type Meta struct {
	// Scopes names the UI regions this blocker affects. An empty set means
	// the implementation's configured default scope.
	Scopes []string
	// Reason is the human-readable message for this blocker.
	Reason string
	// Priority is the numeric precedence; higher wins within a scope.
	Priority int
	// Timeout, when positive, self-removes the entry after the duration
	// elapses. The countdown starts at Add and survives Update.
	Timeout time.Duration
	// OnTimeout, when set, is invoked exactly once with the blocker's id if
	// the timeout fires and actually removes the entry. It is never invoked
	// on an ordinary Remove.
	OnTimeout func(id string)
}

// Patch is a partial metadata update. Nil fields leave the corresponding
// entry field unchanged.
type Patch struct {
	// Scopes replaces the entry's scope set when non-nil.
	Scopes []string
	// Reason replaces the entry's reason when non-nil.
	Reason *string
	// Priority replaces the entry's priority when non-nil.
	Priority *int
}

// Info is a read-only snapshot of one active blocker.
type Info struct {
	// ID is the blocker's identity within the registry.
	ID string
	// Scopes is the entry's effective scope set.
	Scopes []string
	// Reason is the entry's current message.
	Reason string
	// Priority is the entry's current precedence.
	Priority int
}
