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

// NewPaginated builds the adapter for a paginated read. Like NewQuery, its
// identity is derived deterministically from key. The fetching trigger
// covers background refreshes and next/previous page fetches alike.
//
// Defaults: block on loading (first page) only, priority
// Config.QueryPriority, reason "Loading more data...".
func NewPaginated(key []any, opts ...Option) *Paginated {
	s := newSettings(opts)
	cfg := s.resolveConfig()
	return &Paginated{
		handle:     lifecycle.New(s.resolveRegistry(), s.identify(prefixPaginated, key)),
		set:        s,
		priority:   s.priorityOr(cfg.QueryPriority),
		def:        s.reasonOr(config.DefaultPaginatedReason),
		onLoading:  boolOr(s.onLoading, true),
		onFetching: boolOr(s.onFetching, false),
		onError:    boolOr(s.onError, false),
	}
}

// Paginated synchronizes a blocker with the state of one paginated read.
type Paginated struct {
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
func (p *Paginated) Observe(st apis.PaginatedState) {
	loading := st.IsLoading
	// Any in-flight fetch that is not the first page: background refresh,
	// next page, or previous page.
	fetching := (st.IsFetching || st.IsFetchingNextPage || st.IsFetchingPreviousPage) &&
		!st.IsLoading

	shouldBlock := p.onLoading && loading ||
		p.onFetching && fetching ||
		p.onError && st.IsError

	msg := reason.Resolve(p.def, []reason.Rule{
		{When: loading, Reason: p.set.loadingReason},
		{When: fetching, Reason: p.set.fetchingReason},
		{When: st.IsError, Reason: p.set.errorReason},
	})

	p.handle.Sync(shouldBlock, p.set.meta(msg, p.priority))
}

// Close releases the blocker. Call it on teardown of the observing instance.
func (p *Paginated) Close() {
	p.handle.Release()
}

// Identity returns the blocker identity this adapter synchronizes.
func (p *Paginated) Identity() string {
	return p.handle.ID()
}
