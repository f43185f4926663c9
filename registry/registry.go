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

// Package registry provides the default apis.Registry implementation: a
// mutex-guarded store of active blockers with per-scope lookup,
// priority-ordered reporting, and self-removing timed entries.
package registry

import (
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"dirpx.dev/blockfx/apis"
	"dirpx.dev/blockfx/config"
)

// New constructs a Registry using cfg for scope defaulting.
// An empty DefaultScope falls back to config.DefaultScope.
func New(cfg apis.Config, opts ...Option) *Registry {
	if cfg.DefaultScope == "" {
		cfg.DefaultScope = config.DefaultScope
	}
	r := &Registry{
		cfg:     cfg,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		entries: make(map[string]*entry),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Option configures a Registry during construction.
type Option func(*Registry)

// WithLogger makes the registry emit debug-level logs for entry
// add/update/remove/expire events.
func WithLogger(log *slog.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// Registry is the default apis.Registry implementation.
// Safe for concurrent use.
type Registry struct {
	// cfg is the configuration used for scope defaulting.
	cfg apis.Config
	// log receives debug events; discards unless WithLogger is given.
	log *slog.Logger
	// met is optional instrumentation; nil unless WithMetrics is given.
	met *metrics

	// mu guards entries, seq and gen.
	mu sync.Mutex
	// entries maps blocker identity to its live entry.
	entries map[string]*entry
	// seq is the insertion counter used as the priority tie-break.
	seq uint64
	// gen distinguishes entry incarnations so a fired timer belonging to a
	// removed (or removed-and-re-added) entry is a no-op.
	gen uint64
}

// Ensure Registry implements apis.Registry.
var _ apis.Registry = (*Registry)(nil)

// entry is one live blocker.
type entry struct {
	meta  apis.Meta
	seq   uint64
	gen   uint64
	timer *time.Timer
}

// Add creates the entry for id with meta. When meta carries a Timeout, the
// countdown starts here and only here: re-adding an existing id replaces its
// scope/reason/priority (last writer wins) but keeps the running countdown
// and its original OnTimeout.
func (r *Registry) Add(id string, meta apis.Meta) {
	if id == "" {
		return
	}

	r.mu.Lock()
	if e, ok := r.entries[id]; ok {
		meta.Timeout = e.meta.Timeout
		meta.OnTimeout = e.meta.OnTimeout
		e.meta = meta
		r.mu.Unlock()
		r.log.Debug("blocker replaced", "id", id, "reason", meta.Reason)
		return
	}

	r.gen++
	e := &entry{meta: meta, seq: r.seq, gen: r.gen}
	r.seq++
	if meta.Timeout > 0 {
		gen := e.gen
		e.timer = time.AfterFunc(meta.Timeout, func() {
			r.expire(id, gen)
		})
	}
	r.entries[id] = e
	r.mu.Unlock()

	r.met.onAdd()
	r.log.Debug("blocker added",
		"id", id, "reason", meta.Reason, "priority", meta.Priority)
}

// Update patches the entry for id in place. Unknown ids are ignored.
// The entry's timeout countdown is untouched.
func (r *Registry) Update(id string, p apis.Patch) {
	r.mu.Lock()
	e, ok := r.entries[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	if p.Scopes != nil {
		e.meta.Scopes = p.Scopes
	}
	if p.Reason != nil {
		e.meta.Reason = *p.Reason
	}
	if p.Priority != nil {
		e.meta.Priority = *p.Priority
	}
	reason := e.meta.Reason
	r.mu.Unlock()

	r.log.Debug("blocker updated", "id", id, "reason", reason)
}

// Remove deletes the entry for id and cancels its pending timeout, if any.
// OnTimeout is never invoked from here. Unknown ids are ignored.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	e, ok := r.entries[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	delete(r.entries, id)
	r.mu.Unlock()

	r.met.onRemove()
	r.log.Debug("blocker removed", "id", id)
}

// IsBlocked reports whether any active blocker targets scope.
func (r *Registry) IsBlocked(scope string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if r.matches(e.meta.Scopes, scope) {
			return true
		}
	}
	return false
}

// BlockingInfo returns the active blockers targeting scope, ordered by
// priority descending with insertion order as the tie-break.
func (r *Registry) BlockingInfo(scope string) []apis.Info {
	type ranked struct {
		info apis.Info
		seq  uint64
	}

	r.mu.Lock()
	matched := make([]ranked, 0, len(r.entries))
	for id, e := range r.entries {
		if r.matches(e.meta.Scopes, scope) {
			matched = append(matched, ranked{info: r.info(id, e), seq: e.seq})
		}
	}
	r.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].info.Priority != matched[j].info.Priority {
			return matched[i].info.Priority > matched[j].info.Priority
		}
		return matched[i].seq < matched[j].seq
	})

	out := make([]apis.Info, 0, len(matched))
	for _, m := range matched {
		out = append(out, m.info)
	}
	return out
}

// Infos returns a snapshot of all active blockers in insertion order,
// for diagnostics.
func (r *Registry) Infos() []apis.Info {
	type ranked struct {
		info apis.Info
		seq  uint64
	}

	r.mu.Lock()
	all := make([]ranked, 0, len(r.entries))
	for id, e := range r.entries {
		all = append(all, ranked{info: r.info(id, e), seq: e.seq})
	}
	r.mu.Unlock()

	sort.Slice(all, func(i, j int) bool { return all[i].seq < all[j].seq })

	out := make([]apis.Info, 0, len(all))
	for _, a := range all {
		out = append(out, a.info)
	}
	return out
}

// Count returns the number of active blockers.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Reset removes all entries and cancels their pending timeouts without
// invoking any OnTimeout.
func (r *Registry) Reset() {
	r.mu.Lock()
	n := len(r.entries)
	for _, e := range r.entries {
		if e.timer != nil {
			e.timer.Stop()
		}
	}
	r.entries = make(map[string]*entry)
	r.mu.Unlock()

	r.met.onReset(n)
	r.log.Debug("registry reset", "removed", n)
}

// expire is the timer callback for the entry incarnation gen of id. It is a
// no-op unless that exact incarnation is still present; on genuine expiry
// the entry is removed and OnTimeout runs exactly once, outside the lock.
func (r *Registry) expire(id string, gen uint64) {
	r.mu.Lock()
	e, ok := r.entries[id]
	if !ok || e.gen != gen {
		r.mu.Unlock()
		return
	}
	delete(r.entries, id)
	cb := e.meta.OnTimeout
	r.mu.Unlock()

	r.met.onExpire()
	r.log.Debug("blocker timed out", "id", id)
	if cb != nil {
		cb(id)
	}
}

// matches reports whether an entry with the given scope set targets scope.
// An empty set stands for the configured default scope.
func (r *Registry) matches(scopes []string, scope string) bool {
	if len(scopes) == 0 {
		return scope == r.cfg.DefaultScope
	}
	for _, s := range scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// info builds the snapshot for one entry. Caller holds r.mu.
func (r *Registry) info(id string, e *entry) apis.Info {
	scopes := e.meta.Scopes
	if len(scopes) == 0 {
		scopes = []string{r.cfg.DefaultScope}
	}
	return apis.Info{
		ID:       id,
		Scopes:   scopes,
		Reason:   e.meta.Reason,
		Priority: e.meta.Priority,
	}
}
