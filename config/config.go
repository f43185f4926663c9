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

package config

import (
	"dirpx.dev/blockfx/apis"
)

const (
	// DefaultScope is the scope used for blockers that name no scope of
	// their own.
	DefaultScope = "global"
	// DefaultQueryPriority is the default precedence for read-style
	// blockers.
	DefaultQueryPriority = 10
	// DefaultMutationPriority is the default precedence for write-style
	// blockers. Writes outrank reads by default.
	DefaultMutationPriority = 30
)

const (
	// DefaultQueryReason is the fallback message for single-read blockers.
	DefaultQueryReason = "Loading data..."
	// DefaultMutationReason is the fallback message for write blockers.
	DefaultMutationReason = "Saving changes..."
	// DefaultPaginatedReason is the fallback message for paginated-read
	// blockers.
	DefaultPaginatedReason = "Loading more data..."
	// DefaultBatchReason is the fallback message for parallel-read-batch
	// blockers.
	DefaultBatchReason = "Loading queries..."
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure the default scope is usable.
	if cfg.DefaultScope == "" {
		cfg.DefaultScope = DefaultScope
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		DefaultScope:     DefaultScope,
		QueryPriority:    DefaultQueryPriority,
		MutationPriority: DefaultMutationPriority,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithDefaultScope sets the DefaultScope option.
// An empty value resets to the default.
func WithDefaultScope(scope string) Option {
	return func(c *apis.Config) {
		if scope == "" {
			c.DefaultScope = DefaultScope
			return
		}
		c.DefaultScope = scope
	}
}

// WithQueryPriority sets the QueryPriority option.
func WithQueryPriority(p int) Option {
	return func(c *apis.Config) {
		c.QueryPriority = p
	}
}

// WithMutationPriority sets the MutationPriority option.
func WithMutationPriority(p int) Option {
	return func(c *apis.Config) {
		c.MutationPriority = p
	}
}
