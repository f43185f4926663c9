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

// Package adapter wraps the four flavors of asynchronous operation — single
// reads, writes, paginated reads and parallel read batches — and
// synchronizes a blocker for each against a registry.
//
// All four adapters share one shape: Observe maps the operation's state
// snapshot into trigger booleans, ORs the enabled triggers into shouldBlock,
// resolves the reason from the most specific matching state, and hands the
// result to a lifecycle.Handle. Close releases the blocker on teardown.
//
// Triggers default asymmetrically on purpose: initial loads (and pending
// writes) block out of the box, background refreshes and errors only when
// opted in.
package adapter

import (
	"errors"
	"time"

	"dirpx.dev/blockfx"
	"dirpx.dev/blockfx/apis"
	"dirpx.dev/blockfx/identity"
)

// ErrReasonOnErrorDisabled is returned when an error-specific reason is
// configured while error blocking is disabled. The reason could never be
// shown, so the configuration is rejected before any state is observed.
var ErrReasonOnErrorDisabled = errors.New("blockfx(adapter): error reason configured while error blocking is disabled")

// Identity prefixes per adapter variant.
const (
	prefixQuery     = "query"
	prefixMutation  = "mutation"
	prefixPaginated = "paginated"
	prefixBatch     = "batch"
)

// Option configures an adapter during construction.
type Option func(*settings)

// WithRegistry binds the adapter to reg instead of the process-wide default.
func WithRegistry(reg apis.Registry) Option {
	return func(s *settings) {
		s.registry = reg
	}
}

// WithConfig supplies the configuration used for defaulting priorities,
// instead of the global one.
func WithConfig(cfg apis.Config) Option {
	return func(s *settings) {
		s.cfg = &cfg
	}
}

// WithScopes sets the scopes the blocker affects. Unset means the registry's
// default scope.
func WithScopes(scopes ...string) Option {
	return func(s *settings) {
		s.scopes = scopes
	}
}

// WithPriority overrides the variant's default priority.
func WithPriority(p int) Option {
	return func(s *settings) {
		s.priority = &p
	}
}

// WithTimeout makes the blocker self-remove after d if still present.
// The countdown starts when the entry is created, not on updates.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		s.timeout = d
	}
}

// WithOnTimeout sets the callback invoked (with the blocker's identity)
// if the timeout fires and actually removes the entry.
func WithOnTimeout(fn func(id string)) Option {
	return func(s *settings) {
		s.onTimeout = fn
	}
}

// BlockOnLoading toggles blocking while the first fetch is in flight.
// Default true.
func BlockOnLoading(on bool) Option {
	return func(s *settings) {
		s.onLoading = &on
	}
}

// BlockOnFetching toggles blocking during background fetches (any fetch that
// is not the initial load). Default false.
func BlockOnFetching(on bool) Option {
	return func(s *settings) {
		s.onFetching = &on
	}
}

// BlockOnError toggles keeping the blocker while the operation is in an
// error state. Default false.
func BlockOnError(on bool) Option {
	return func(s *settings) {
		s.onError = &on
	}
}

// BlockOnPending toggles blocking while a write is in flight. Default true.
// Only meaningful for Mutation.
func BlockOnPending(on bool) Option {
	return func(s *settings) {
		s.onPending = &on
	}
}

// WithReason overrides the variant's default reason, used when no
// state-specific reason applies.
func WithReason(r string) Option {
	return func(s *settings) {
		s.defaultReason = r
	}
}

// WithLoadingReason sets the message shown while loading.
func WithLoadingReason(r string) Option {
	return func(s *settings) {
		s.loadingReason = r
	}
}

// WithFetchingReason sets the message shown while background fetching.
func WithFetchingReason(r string) Option {
	return func(s *settings) {
		s.fetchingReason = r
	}
}

// WithErrorReason sets the message shown while in an error state. Mutation
// constructors reject this unless BlockOnError(true) is also given.
func WithErrorReason(r string) Option {
	return func(s *settings) {
		s.errorReason = r
	}
}

// WithPendingReason sets the message shown while a write is in flight.
func WithPendingReason(r string) Option {
	return func(s *settings) {
		s.pendingReason = r
	}
}

// WithKey supplies a stable operation key for variants that have no key
// parameter of their own (Mutation). A keyed mutation gets a deterministic
// identity shared by every adapter describing the same write.
func WithKey(key ...any) Option {
	return func(s *settings) {
		s.key = key
	}
}

// settings is the merged option state for one adapter instance. It owns the
// instance's ephemeral token, so identities stay stable for the adapter's
// lifetime.
type settings struct {
	registry apis.Registry
	cfg      *apis.Config

	scopes    []string
	priority  *int
	timeout   time.Duration
	onTimeout func(id string)

	onLoading  *bool
	onFetching *bool
	onError    *bool
	onPending  *bool

	defaultReason  string
	loadingReason  string
	fetchingReason string
	errorReason    string
	pendingReason  string

	key []any

	token identity.Token
}

func newSettings(opts []Option) *settings {
	s := &settings{}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// resolveRegistry returns the bound registry, defaulting to the process-wide
// one. The binding happens once, at adapter construction.
func (s *settings) resolveRegistry() apis.Registry {
	if s.registry != nil {
		return s.registry
	}
	return blockfx.Registry()
}

// resolveConfig returns the configuration used for defaulting.
func (s *settings) resolveConfig() apis.Config {
	if s.cfg != nil {
		return *s.cfg
	}
	return blockfx.Config()
}

// identify returns the deterministic identity for key, or this instance's
// ephemeral identity when no usable key exists.
func (s *settings) identify(prefix string, key []any) string {
	if id, ok := identity.Deterministic(prefix, key...); ok {
		return id
	}
	return s.token.Ephemeral(prefix)
}

// meta assembles the blocker metadata for one Sync call.
func (s *settings) meta(reason string, priority int) apis.Meta {
	return apis.Meta{
		Scopes:    s.scopes,
		Reason:    reason,
		Priority:  priority,
		Timeout:   s.timeout,
		OnTimeout: s.onTimeout,
	}
}

func (s *settings) priorityOr(def int) int {
	if s.priority != nil {
		return *s.priority
	}
	return def
}

func (s *settings) reasonOr(def string) string {
	if s.defaultReason != "" {
		return s.defaultReason
	}
	return def
}

func boolOr(v *bool, def bool) bool {
	if v != nil {
		return *v
	}
	return def
}
