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

func TestMutation_PendingBlocksByDefault(t *testing.T) {
	reg := newTestRegistry()
	m, err := adapter.NewMutation(adapter.WithRegistry(reg))
	require.NoError(t, err)
	defer m.Close()

	m.Observe(apis.MutationState{IsPending: true})

	infos := reg.BlockingInfo("global")
	require.Len(t, infos, 1)
	assert.Equal(t, "Saving changes...", infos[0].Reason)
	assert.Equal(t, 30, infos[0].Priority, "writes outrank reads by default")

	m.Observe(apis.MutationState{})
	assert.False(t, reg.IsBlocked("global"))
}

func TestMutation_StickyErrorKeepsBlockerWithNewReason(t *testing.T) {
	reg := newTestRegistry()
	m, err := adapter.NewMutation(
		adapter.WithRegistry(reg),
		adapter.BlockOnError(true),
		adapter.WithPendingReason("Saving..."),
		adapter.WithErrorReason("Failed"),
	)
	require.NoError(t, err)
	defer m.Close()

	m.Observe(apis.MutationState{IsPending: true})
	infos := reg.BlockingInfo("global")
	require.Len(t, infos, 1)
	assert.Equal(t, "Saving...", infos[0].Reason)

	// The write is rejected: still present, reason switches, no remove+add.
	m.Observe(apis.MutationState{IsError: true})
	infos = reg.BlockingInfo("global")
	require.Len(t, infos, 1)
	assert.Equal(t, "Failed", infos[0].Reason)
}

func TestMutation_ErrorDoesNotBlockByDefault(t *testing.T) {
	reg := newTestRegistry()
	m, err := adapter.NewMutation(adapter.WithRegistry(reg))
	require.NoError(t, err)
	defer m.Close()

	m.Observe(apis.MutationState{IsPending: true})
	m.Observe(apis.MutationState{IsError: true})

	assert.False(t, reg.IsBlocked("global"))
}

func TestNewMutation_RejectsErrorReasonWithoutErrorBlocking(t *testing.T) {
	_, err := adapter.NewMutation(adapter.WithErrorReason("Failed"))
	assert.ErrorIs(t, err, adapter.ErrReasonOnErrorDisabled)

	// Explicitly disabled counts too.
	_, err = adapter.NewMutation(
		adapter.BlockOnError(false),
		adapter.WithErrorReason("Failed"),
	)
	assert.ErrorIs(t, err, adapter.ErrReasonOnErrorDisabled)
}

func TestMutation_EphemeralIdentitiesNeverCollapse(t *testing.T) {
	reg := newTestRegistry()

	m1, err := adapter.NewMutation(adapter.WithRegistry(reg))
	require.NoError(t, err)
	m2, err := adapter.NewMutation(adapter.WithRegistry(reg))
	require.NoError(t, err)
	defer m1.Close()
	defer m2.Close()

	assert.NotEqual(t, m1.Identity(), m2.Identity())

	m1.Observe(apis.MutationState{IsPending: true})
	m2.Observe(apis.MutationState{IsPending: true})
	assert.Equal(t, 2, reg.Count(), "identical configuration must not collapse without a key")
}

func TestMutation_KeyedIdentityShared(t *testing.T) {
	reg := newTestRegistry()

	m1, err := adapter.NewMutation(adapter.WithRegistry(reg), adapter.WithKey("save-user", 123))
	require.NoError(t, err)
	m2, err := adapter.NewMutation(adapter.WithRegistry(reg), adapter.WithKey("save-user", 123))
	require.NoError(t, err)
	defer m1.Close()
	defer m2.Close()

	assert.Equal(t, m1.Identity(), m2.Identity())

	m1.Observe(apis.MutationState{IsPending: true})
	m2.Observe(apis.MutationState{IsPending: true})
	assert.Equal(t, 1, reg.Count())
}

func TestMutation_CustomDefaultReason(t *testing.T) {
	reg := newTestRegistry()
	m, err := adapter.NewMutation(
		adapter.WithRegistry(reg),
		adapter.WithReason("Submitting order..."),
	)
	require.NoError(t, err)
	defer m.Close()

	m.Observe(apis.MutationState{IsPending: true})

	infos := reg.BlockingInfo("global")
	require.Len(t, infos, 1)
	assert.Equal(t, "Submitting order...", infos[0].Reason)
}
