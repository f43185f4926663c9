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

package blockfx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/blockfx"
	"dirpx.dev/blockfx/adapter"
	"dirpx.dev/blockfx/apis"
	"dirpx.dev/blockfx/config"
	"dirpx.dev/blockfx/registry"
)

// resetGlobal restores a clean default snapshot. Tests against the global
// state share one process, so each starts from scratch.
func resetGlobal(tb testing.TB) {
	tb.Helper()
	blockfx.SetConfig(config.DefaultConfig())
}

func TestGlobalWrappers(t *testing.T) {
	resetGlobal(t)

	blockfx.Add("manual", apis.Meta{Reason: "Maintenance", Priority: 99})

	assert.True(t, blockfx.IsBlocked("global"))
	infos := blockfx.BlockingInfo("global")
	require.Len(t, infos, 1)
	assert.Equal(t, "Maintenance", infos[0].Reason)

	r := "Back soon"
	blockfx.Update("manual", apis.Patch{Reason: &r})
	assert.Equal(t, "Back soon", blockfx.BlockingInfo("global")[0].Reason)

	blockfx.Remove("manual")
	assert.False(t, blockfx.IsBlocked("global"))
}

func TestSetRegistry_NilIgnored(t *testing.T) {
	resetGlobal(t)

	before := blockfx.Registry()
	blockfx.SetRegistry(nil)
	assert.Same(t, before, blockfx.Registry())
}

func TestSetRegistry_Replaces(t *testing.T) {
	resetGlobal(t)

	custom := registry.New(config.NewConfig(config.WithDefaultScope("page")))
	blockfx.SetRegistry(custom)
	assert.Same(t, apis.Registry(custom), blockfx.Registry())

	blockfx.Add("a", apis.Meta{Reason: "busy"})
	assert.True(t, custom.IsBlocked("page"))
}

func TestSetConfig_RebuildsDefaultRegistry(t *testing.T) {
	resetGlobal(t)

	blockfx.Add("stale", apis.Meta{Reason: "old"})
	blockfx.SetConfig(config.NewConfig(config.WithQueryPriority(7)))

	assert.Equal(t, 7, blockfx.Config().QueryPriority)
	assert.False(t, blockfx.IsBlocked("global"), "rebuild discards previous entries")
}

func TestAdapterBindsDefaultRegistry(t *testing.T) {
	resetGlobal(t)

	q := adapter.NewQuery([]any{"user", 1})
	defer q.Close()

	q.Observe(apis.QueryState{IsLoading: true, IsFetching: true})
	assert.True(t, blockfx.IsBlocked("global"))

	q.Observe(apis.QueryState{})
	assert.False(t, blockfx.IsBlocked("global"))
}
