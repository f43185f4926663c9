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

package identity_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/blockfx/identity"
)

func TestDeterministic_StableAndPrefixed(t *testing.T) {
	a, ok := identity.Deterministic("query", "user", 123)
	require.True(t, ok)
	b, ok := identity.Deterministic("query", "user", 123)
	require.True(t, ok)

	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "query-"))
}

func TestDeterministic_InsertionOrderIrrelevant(t *testing.T) {
	m1 := map[string]any{}
	m1["id"] = 123
	m1["name"] = "alice"

	m2 := map[string]any{}
	m2["name"] = "alice"
	m2["id"] = 123

	a, ok := identity.Deterministic("query", "user", m1)
	require.True(t, ok)
	b, ok := identity.Deterministic("query", "user", m2)
	require.True(t, ok)

	assert.Equal(t, a, b)
}

func TestDeterministic_StructAndMapConverge(t *testing.T) {
	type filter struct {
		ID   int
		Name string
	}

	a, ok := identity.Deterministic("query", filter{ID: 123, Name: "alice"})
	require.True(t, ok)
	b, ok := identity.Deterministic("query", map[string]any{"ID": 123, "Name": "alice"})
	require.True(t, ok)

	assert.Equal(t, a, b)
}

func TestDeterministic_PointerDereferenced(t *testing.T) {
	type filter struct{ ID int }
	f := filter{ID: 7}

	a, ok := identity.Deterministic("query", &f)
	require.True(t, ok)
	b, ok := identity.Deterministic("query", f)
	require.True(t, ok)

	assert.Equal(t, a, b)
}

func TestDeterministic_DistinctKeysDiverge(t *testing.T) {
	a, ok := identity.Deterministic("query", "user", 123)
	require.True(t, ok)
	b, ok := identity.Deterministic("query", "user", 124)
	require.True(t, ok)
	c, ok := identity.Deterministic("mutation", "user", 123)
	require.True(t, ok)

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestDeterministic_EmptyKeyFallsThrough(t *testing.T) {
	_, ok := identity.Deterministic("mutation")
	assert.False(t, ok)
}

func TestDeterministic_NonHashableKeyFallsThrough(t *testing.T) {
	_, ok := identity.Deterministic("query", func() {})
	assert.False(t, ok)

	_, ok = identity.Deterministic("query", map[string]any{"cb": make(chan int)})
	assert.False(t, ok)
}

func TestToken_StablePerInstanceUniqueAcross(t *testing.T) {
	var t1, t2 identity.Token

	a := t1.Ephemeral("batch")
	assert.Equal(t, a, t1.Ephemeral("batch"), "token must be stable across calls")
	assert.True(t, strings.HasPrefix(a, "batch-"))

	assert.NotEqual(t, a, t2.Ephemeral("batch"), "distinct instances must not collide")
}
