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

// NewMutation builds the adapter for a write operation. With WithKey the
// identity is deterministic and shared by every adapter describing the same
// write; without one it is ephemeral, one per instance.
//
// Defaults: block on pending only, priority Config.MutationPriority, reason
// "Saving changes...". An error reason without BlockOnError(true) is
// rejected with ErrReasonOnErrorDisabled: this layer cannot express the
// constraint in the type system, so it enforces it before any state is
// observed.
func NewMutation(opts ...Option) (*Mutation, error) {
	s := newSettings(opts)
	onError := boolOr(s.onError, false)
	if s.errorReason != "" && !onError {
		return nil, ErrReasonOnErrorDisabled
	}

	cfg := s.resolveConfig()
	return &Mutation{
		handle:    lifecycle.New(s.resolveRegistry(), s.identify(prefixMutation, s.key)),
		set:       s,
		priority:  s.priorityOr(cfg.MutationPriority),
		def:       s.reasonOr(config.DefaultMutationReason),
		onPending: boolOr(s.onPending, true),
		onError:   onError,
	}, nil
}

// Mutation synchronizes a blocker with the state of one write operation.
type Mutation struct {
	handle   *lifecycle.Handle
	set      *settings
	priority int
	def      string

	onPending bool
	onError   bool
}

// Observe reconciles the blocker against st. With error blocking enabled the
// blocker outlives a failed write for as long as the state reports the
// error.
func (m *Mutation) Observe(st apis.MutationState) {
	shouldBlock := m.onPending && st.IsPending ||
		m.onError && st.IsError

	msg := reason.Resolve(m.def, []reason.Rule{
		{When: st.IsPending, Reason: m.set.pendingReason},
		{When: st.IsError, Reason: m.set.errorReason},
	})

	m.handle.Sync(shouldBlock, m.set.meta(msg, m.priority))
}

// Close releases the blocker. Call it on teardown of the observing instance.
func (m *Mutation) Close() {
	m.handle.Release()
}

// Identity returns the blocker identity this adapter synchronizes.
func (m *Mutation) Identity() string {
	return m.handle.ID()
}
