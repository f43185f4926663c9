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

// NewBatch builds the adapter for a batch of parallel read operations.
// Batches have no shared key, so the identity is ephemeral: allocated once
// per adapter instance and stable for its lifetime. The whole batch produces
// exactly one blocker entry, never one per member.
//
// Defaults: block on loading only, priority Config.QueryPriority, reason
// "Loading queries...".
func NewBatch(opts ...Option) *Batch {
	s := newSettings(opts)
	cfg := s.resolveConfig()
	return &Batch{
		handle:     lifecycle.New(s.resolveRegistry(), s.token.Ephemeral(prefixBatch)),
		set:        s,
		priority:   s.priorityOr(cfg.QueryPriority),
		def:        s.reasonOr(config.DefaultBatchReason),
		onLoading:  boolOr(s.onLoading, true),
		onFetching: boolOr(s.onFetching, false),
		onError:    boolOr(s.onError, false),
	}
}

// Batch synchronizes one blocker with the combined state of a set of
// parallel reads.
type Batch struct {
	handle   *lifecycle.Handle
	set      *settings
	priority int
	def      string

	onLoading  bool
	onFetching bool
	onError    bool
}

// Observe reconciles the blocker against the batch members' states using
// ANY semantics: the batch is loading while at least one member loads,
// fetching while at least one fetches in the background, errored while at
// least one is in an error state. An empty batch never blocks.
func (b *Batch) Observe(states []apis.QueryState) {
	var loading, fetching, errored bool
	for _, st := range states {
		loading = loading || st.IsLoading
		fetching = fetching || (st.IsFetching && !st.IsLoading)
		errored = errored || st.IsError
	}

	shouldBlock := b.onLoading && loading ||
		b.onFetching && fetching ||
		b.onError && errored

	msg := reason.Resolve(b.def, []reason.Rule{
		{When: loading, Reason: b.set.loadingReason},
		{When: fetching, Reason: b.set.fetchingReason},
		{When: errored, Reason: b.set.errorReason},
	})

	b.handle.Sync(shouldBlock, b.set.meta(msg, b.priority))
}

// Close releases the blocker. Call it on teardown of the observing instance.
func (b *Batch) Close() {
	b.handle.Release()
}

// Identity returns the blocker identity this adapter synchronizes.
func (b *Batch) Identity() string {
	return b.handle.ID()
}
