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

// Package blockfx derives a "should the UI be blocked" signal, plus a
// human-readable reason, from the state of asynchronous data operations, and
// publishes it into a shared blocking registry keyed by scope strings.
//
// blockfx fetches nothing and renders nothing. It is a derivation and
// synchronization layer: operation state goes in, registry entries come out,
// and UI code consults the registry to decide what to disable or overlay.
//
// # Design
//
// The module is built leaf-first from four layers:
//
//   - reason: a pure resolver that picks the message for the first matching
//     operation state from an ordered rule list, falling back to a default.
//
//   - identity: registry identities for blocker sources. Deterministic
//     identities hash a canonicalized operation key, so every caller
//     describing the same logical operation converges on one registry entry.
//     Ephemeral identities come from a per-instance Token: stable across
//     re-observations of one instance, unique across instances.
//
//   - lifecycle: a Handle that owns the present/absent decision for one
//     identity. It tracks whether it currently holds the entry, which splits
//     creation from in-place update — the split is what keeps a timed
//     entry's countdown from restarting on every metadata refresh — and
//     guarantees removal on Release no matter what state was seen last.
//
//   - adapter: four operation adapters (single reads, writes, paginated
//     reads, parallel read batches). Each maps its observation snapshot into
//     trigger booleans and reason rules, then delegates to a Handle.
//     Initial loads block by default; background refreshes and errors block
//     only when opted in.
//
// The registry itself sits behind the apis.Registry interface with five
// operations: Add, Update, Remove, IsBlocked, BlockingInfo. The lifecycle
// and adapter layers depend only on that interface. The registry package
// provides the default implementation, including per-scope lookup,
// priority-ordered reporting and timed self-removing entries.
//
// # Global default
//
// This package holds an atomic pointer to a process-wide snapshot of
// (config, default registry), in the same read-mostly style as the rest of
// the module: readers load the pointer, writers build a new snapshot and
// swap it in. Adapters constructed without an explicit registry bind to the
// default at construction time. The default exists purely for convenience;
// everything below this package is wired through the interface and works
// against any number of independent registries.
//
//	q := adapter.NewQuery([]any{"user", 123})
//	q.Observe(apis.QueryState{IsLoading: true, IsFetching: true})
//	blockfx.IsBlocked("global") // true, "Loading data..."
//	q.Close()
//
// # Shared identities
//
// Two adapters with structurally-equal keys share one registry entry. The
// entry's metadata is whatever the most recent blocking writer supplied
// (last writer wins), and removal is best-effort: the registry does no
// reference counting across holders. This is an accepted property of the
// shared-identity model, not a defect to compensate for at this layer.
package blockfx
