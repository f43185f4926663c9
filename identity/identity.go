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

// Package identity produces registry identities for blocker sources.
//
// Two flavors exist. Deterministic identities are derived from an
// operation's stable key, so every caller describing the same logical
// operation converges on one registry entry. Ephemeral identities come from
// a per-instance Token: stable for the lifetime of that instance, unique
// across instances even with identical configuration.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"reflect"
	"sync"

	"github.com/google/uuid"
)

// Deterministic derives a stable identity from an operation key. The key is
// canonicalized first (see canonicalize), so structurally-equal keys yield
// identical identities regardless of how their members were declared or
// inserted. The result has the form "<prefix>-<16 hex chars>".
//
// It returns ok=false when the key is empty or contains values with no
// stable canonical form; callers fall back to an ephemeral Token in that
// case.
func Deterministic(prefix string, key ...any) (id string, ok bool) {
	if len(key) == 0 {
		return "", false
	}

	canon := make([]any, 0, len(key))
	for _, k := range key {
		cv, err := canonicalize(reflect.ValueOf(k), maxDepth)
		if err != nil {
			return "", false
		}
		canon = append(canon, cv)
	}

	// encoding/json sorts map keys, which makes the byte stream canonical.
	data, err := json.Marshal(canon)
	if err != nil {
		return "", false
	}

	sum := sha256.Sum256(data)
	return prefix + "-" + hex.EncodeToString(sum[:8]), true
}

// Token is a per-instance identity source. The zero value is ready to use:
// the underlying token is allocated on first use and reused for every
// subsequent call, so the identity is stable across re-observations of the
// same instance while two instances never collide.
type Token struct {
	once sync.Once
	v    string
}

// Ephemeral returns "<prefix>-<token>" for this instance.
func (t *Token) Ephemeral(prefix string) string {
	return prefix + "-" + t.String()
}

// String returns the instance token, allocating it on first call.
func (t *Token) String() string {
	t.once.Do(func() {
		t.v = uuid.NewString()
	})
	return t.v
}
