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

package adapter

import (
	"dirpx.dev/blockfx/apis"
	"dirpx.dev/blockfx/config"
	"dirpx.dev/blockfx/lifecycle"
	"dirpx.dev/blockfx/reason"
)

// NewQuery builds the adapter for a single read operation. Its identity is
// derived deterministically from key, so every adapter observing the same
// logical read shares one blocker entry; with an empty key the identity
// falls back to a per-instance token.
//
// Defaults: block on loading only, priority Config.QueryPriority, reason
// "Loading data...".
func NewQuery(key []any, opts ...Option) *Query {
	s := newSettings(opts)
	cfg := s.resolveConfig()
	return &Query{
		handle:     lifecycle.New(s.resolveRegistry(), s.identify(prefixQuery, key)),
		set:        s,
		priority:   s.priorityOr(cfg.QueryPriority),
		def:        s.reasonOr(config.DefaultQueryReason),
		onLoading:  boolOr(s.onLoading, true),
		onFetching: boolOr(s.onFetching, false),
		onError:    boolOr(s.onError, false),
	}
}

// Query synchronizes a blocker with the state of one read operation.
type Query struct {
	handle   *lifecycle.Handle
	set      *settings
	priority int
	def      string

	onLoading  bool
	onFetching bool
	onError    bool
}

// Observe reconciles the blocker against st. Call it on every state change
// of the underlying read.
func (q *Query) Observe(st apis.QueryState) {
	loading := st.IsLoading
	// Background fetches only; the initial load is its own trigger.
	fetching := st.IsFetching && !st.IsLoading

	shouldBlock := q.onLoading && loading ||
		q.onFetching && fetching ||
		q.onError && st.IsError

	msg := reason.Resolve(q.def, []reason.Rule{
		{When: loading, Reason: q.set.loadingReason},
		{When: fetching, Reason: q.set.fetchingReason},
		{When: st.IsError, Reason: q.set.errorReason},
	})

	q.handle.Sync(shouldBlock, q.set.meta(msg, q.priority))
}

// Close releases the blocker. Call it on teardown of the observing instance.
func (q *Query) Close() {
	q.handle.Release()
}

// Identity returns the blocker identity this adapter synchronizes.
func (q *Query) Identity() string {
	return q.handle.ID()
}
