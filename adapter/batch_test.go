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

package adapter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/blockfx/adapter"
	"dirpx.dev/blockfx/apis"
)

func TestBatch_AnyMemberLoadingBlocksOnce(t *testing.T) {
	reg := newTestRegistry()
	b := adapter.NewBatch(adapter.WithRegistry(reg))
	defer b.Close()

	// Two resolved, one still loading.
	b.Observe([]apis.QueryState{
		{},
		{},
		{IsLoading: true, IsFetching: true},
	})

	infos := reg.BlockingInfo("global")
	require.Len(t, infos, 1, "the batch produces exactly one entry")
	assert.Equal(t, "Loading queries...", infos[0].Reason)

	// All three resolve: entry is gone.
	b.Observe([]apis.QueryState{{}, {}, {}})
	assert.False(t, reg.IsBlocked("global"))
}

func TestBatch_IdentityStableAcrossObservations(t *testing.T) {
	reg := newTestRegistry()
	b := adapter.NewBatch(adapter.WithRegistry(reg))
	defer b.Close()

	id := b.Identity()
	b.Observe([]apis.QueryState{{IsLoading: true, IsFetching: true}})
	b.Observe([]apis.QueryState{{IsLoading: true, IsFetching: true}})
	b.Observe([]apis.QueryState{{IsLoading: true, IsFetching: true}})

	assert.Equal(t, id, b.Identity())
	assert.Equal(t, 1, reg.Count(), "re-observations must reuse the same entry")
}

func TestBatch_InstancesNeverCollapse(t *testing.T) {
	reg := newTestRegistry()

	b1 := adapter.NewBatch(adapter.WithRegistry(reg))
	b2 := adapter.NewBatch(adapter.WithRegistry(reg))
	defer b1.Close()
	defer b2.Close()

	assert.NotEqual(t, b1.Identity(), b2.Identity())

	loading := []apis.QueryState{{IsLoading: true, IsFetching: true}}
	b1.Observe(loading)
	b2.Observe(loading)
	assert.Equal(t, 2, reg.Count())
}

func TestBatch_AnyMemberErrorOptIn(t *testing.T) {
	reg := newTestRegistry()
	b := adapter.NewBatch(
		adapter.WithRegistry(reg),
		adapter.BlockOnError(true),
		adapter.WithErrorReason("A query failed"),
	)
	defer b.Close()

	b.Observe([]apis.QueryState{{}, {IsError: true}})

	infos := reg.BlockingInfo("global")
	require.Len(t, infos, 1)
	assert.Equal(t, "A query failed", infos[0].Reason)
}

func TestBatch_EmptyBatchNeverBlocks(t *testing.T) {
	reg := newTestRegistry()
	b := adapter.NewBatch(adapter.WithRegistry(reg))
	defer b.Close()

	b.Observe(nil)
	assert.False(t, reg.IsBlocked("global"))
}

func TestBatch_MemberFetchingExcludesOwnLoading(t *testing.T) {
	reg := newTestRegistry()
	b := adapter.NewBatch(
		adapter.WithRegistry(reg),
		adapter.BlockOnLoading(false),
		adapter.BlockOnFetching(true),
	)
	defer b.Close()

	// The only activity is an initial load; that is not "fetching".
	b.Observe([]apis.QueryState{{IsLoading: true, IsFetching: true}, {}})
	assert.False(t, reg.IsBlocked("global"))

	// A genuine background refresh on another member is.
	b.Observe([]apis.QueryState{{IsLoading: true, IsFetching: true}, {IsFetching: true}})
	assert.True(t, reg.IsBlocked("global"))
}
