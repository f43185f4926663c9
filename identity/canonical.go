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

package identity

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrKeyTooDeep indicates that a key value nests containers beyond the
	// supported depth.
	ErrKeyTooDeep = errors.New("blockfx(identity): key nesting exceeds maximum depth")
	// ErrKeyNotHashable indicates that a key value contains a kind with no
	// stable canonical form (func, chan, unsafe pointer).
	ErrKeyNotHashable = errors.New("blockfx(identity): key contains a non-hashable value")
)

// maxDepth bounds the canonicalization walk as a guard against pathological
// nesting and cyclic pointers.
const maxDepth = 32

// canonicalize converts v into a form whose JSON encoding is independent of
// declaration and insertion order, so structurally-equal keys always encode
// identically.
//
// Conversion policy:
//   - ptr/interface -> nil stays nil; otherwise recurse into the element.
//   - map[K]V       -> map[string]any keyed by the string form of K
//     (encoding/json emits map keys sorted, which fixes the order).
//   - struct        -> map[string]any of exported fields keyed by field name,
//     so a struct and a map with the same members canonicalize alike.
//   - slice/array   -> []any, order preserved (element order is meaningful).
//   - scalars       -> passed through.
//   - func/chan/unsafe pointer -> ErrKeyNotHashable.
func canonicalize(v reflect.Value, depth int) (any, error) {
	if depth <= 0 {
		return nil, ErrKeyTooDeep
	}
	if !v.IsValid() {
		return nil, nil
	}

	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return nil, nil
		}
		return canonicalize(v.Elem(), depth-1)

	case reflect.Map:
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			cv, err := canonicalize(iter.Value(), depth-1)
			if err != nil {
				return nil, err
			}
			out[fmt.Sprint(iter.Key().Interface())] = cv
		}
		return out, nil

	case reflect.Struct:
		t := v.Type()
		out := make(map[string]any, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			cv, err := canonicalize(v.Field(i), depth-1)
			if err != nil {
				return nil, err
			}
			out[f.Name] = cv
		}
		return out, nil

	case reflect.Slice, reflect.Array:
		out := make([]any, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			cv, err := canonicalize(v.Index(i), depth-1)
			if err != nil {
				return nil, err
			}
			out = append(out, cv)
		}
		return out, nil

	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return nil, ErrKeyNotHashable

	default:
		// Scalar (bool, numeric, string), passed through as-is.
		return v.Interface(), nil
	}
}
