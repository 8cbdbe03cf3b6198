// Copyright The Plat Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package collection implements Plat's built-in List/Dict/Set value
// types and the extern entry points pkg/codegen's plat_array_*,
// plat_dict_*, and plat_set_* calls lower to, per spec.md §5. Each
// collection guards its backing storage with a sync.RWMutex, matching the
// teacher's pkg/util/collection/pool/shared_heap.go concurrent-map shape —
// Plat's `concurrent`/`spawn` blocks let a collection captured by
// reference be touched from more than one task.
package collection

import (
	"fmt"
	"strings"
	"sync"

	"github.com/plat-lang/platc/pkg/runtime/value"
)

// Array is the heap layout backing a List[T] value.
type Array struct {
	mux   sync.RWMutex
	items []value.Value
}

func (a *Array) String() string {
	a.mux.RLock()
	defer a.mux.RUnlock()

	parts := make([]string, len(a.items))
	for i, v := range a.items {
		parts[i] = v.String()
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// NewArray is the plat_array_new extern.
func NewArray(args []value.Value) (value.Value, error) {
	return value.MakeRef(&Array{}), nil
}

// FromSlice wraps a pre-built slice as a List value, for runtime packages
// (pkg/runtime/io's directory-listing extern) that assemble a result list
// outside of plat_array_append calls.
func FromSlice(items []value.Value) value.Value {
	return value.MakeRef(&Array{items: items})
}

func asArray(v value.Value) (*Array, error) {
	a, ok := v.Ref.(*Array)
	if !ok {
		return nil, fmt.Errorf("collection: value is not a List")
	}

	return a, nil
}

// Append is the plat_array_append extern.
func Append(args []value.Value) (value.Value, error) {
	a, err := asArray(args[0])
	if err != nil {
		return value.Value{}, err
	}

	a.mux.Lock()
	a.items = append(a.items, args[1])
	a.mux.Unlock()

	return value.Void, nil
}

// InsertAt is the plat_array_insert_at extern.
func InsertAt(args []value.Value) (value.Value, error) {
	a, err := asArray(args[0])
	if err != nil {
		return value.Value{}, err
	}

	idx := int(args[1].I)

	a.mux.Lock()
	defer a.mux.Unlock()

	if idx < 0 || idx > len(a.items) {
		return value.Value{}, fmt.Errorf("collection: index %d out of range", idx)
	}

	a.items = append(a.items, value.Value{})
	copy(a.items[idx+1:], a.items[idx:])
	a.items[idx] = args[2]

	return value.Void, nil
}

// RemoveAt is the plat_array_remove_at extern.
func RemoveAt(args []value.Value) (value.Value, error) {
	a, err := asArray(args[0])
	if err != nil {
		return value.Value{}, err
	}

	idx := int(args[1].I)

	a.mux.Lock()
	defer a.mux.Unlock()

	if idx < 0 || idx >= len(a.items) {
		return value.Value{}, fmt.Errorf("collection: index %d out of range", idx)
	}

	removed := a.items[idx]
	a.items = append(a.items[:idx], a.items[idx+1:]...)

	return removed, nil
}

// Clear is the plat_array_clear extern.
func Clear(args []value.Value) (value.Value, error) {
	a, err := asArray(args[0])
	if err != nil {
		return value.Value{}, err
	}

	a.mux.Lock()
	a.items = nil
	a.mux.Unlock()

	return value.Void, nil
}

// Contains is the plat_array_contains extern.
func Contains(args []value.Value) (value.Value, error) {
	a, err := asArray(args[0])
	if err != nil {
		return value.Value{}, err
	}

	a.mux.RLock()
	defer a.mux.RUnlock()

	for _, v := range a.items {
		if equal(v, args[1]) {
			return value.Bool(true), nil
		}
	}

	return value.Bool(false), nil
}

// IndexOf is the plat_array_index_of extern; returns -1 when absent.
func IndexOf(args []value.Value) (value.Value, error) {
	a, err := asArray(args[0])
	if err != nil {
		return value.Value{}, err
	}

	a.mux.RLock()
	defer a.mux.RUnlock()

	for i, v := range a.items {
		if equal(v, args[1]) {
			return value.Int(int64(i)), nil
		}
	}

	return value.Int(-1), nil
}

// Count is the plat_array_count / plat_collection_len extern.
func Count(args []value.Value) (value.Value, error) {
	a, err := asArray(args[0])
	if err != nil {
		return value.Value{}, err
	}

	a.mux.RLock()
	defer a.mux.RUnlock()

	return value.Int(int64(len(a.items))), nil
}

// Get is the plat_collection_get extern for a List receiver.
func Get(args []value.Value) (value.Value, error) {
	a, err := asArray(args[0])
	if err != nil {
		return value.Value{}, err
	}

	idx := int(args[1].I)

	a.mux.RLock()
	defer a.mux.RUnlock()

	if idx < 0 || idx >= len(a.items) {
		return value.Value{}, fmt.Errorf("collection: index %d out of range", idx)
	}

	return a.items[idx], nil
}

// ArraySet is the plat_collection_set extern for a List receiver.
func ArraySet(args []value.Value) (value.Value, error) {
	a, err := asArray(args[0])
	if err != nil {
		return value.Value{}, err
	}

	idx := int(args[1].I)

	a.mux.Lock()
	defer a.mux.Unlock()

	if idx < 0 || idx >= len(a.items) {
		return value.Value{}, fmt.Errorf("collection: index %d out of range", idx)
	}

	a.items[idx] = args[2]

	return value.Void, nil
}

// Slice is the plat_array_slice extern: [lo, hi).
func Slice(args []value.Value) (value.Value, error) {
	a, err := asArray(args[0])
	if err != nil {
		return value.Value{}, err
	}

	lo, hi := int(args[1].I), int(args[2].I)

	a.mux.RLock()
	defer a.mux.RUnlock()

	if lo < 0 || hi > len(a.items) || lo > hi {
		return value.Value{}, fmt.Errorf("collection: slice [%d:%d] out of range", lo, hi)
	}

	out := make([]value.Value, hi-lo)
	copy(out, a.items[lo:hi])

	return value.MakeRef(&Array{items: out}), nil
}

// Concat is the plat_array_concat extern.
func Concat(args []value.Value) (value.Value, error) {
	a, err := asArray(args[0])
	if err != nil {
		return value.Value{}, err
	}

	b, err := asArray(args[1])
	if err != nil {
		return value.Value{}, err
	}

	a.mux.RLock()
	b.mux.RLock()
	out := make([]value.Value, 0, len(a.items)+len(b.items))
	out = append(out, a.items...)
	out = append(out, b.items...)
	b.mux.RUnlock()
	a.mux.RUnlock()

	return value.MakeRef(&Array{items: out}), nil
}

// AllTruthy is the plat_array_all_truthy extern.
func AllTruthy(args []value.Value) (value.Value, error) {
	a, err := asArray(args[0])
	if err != nil {
		return value.Value{}, err
	}

	a.mux.RLock()
	defer a.mux.RUnlock()

	for _, v := range a.items {
		if !v.Truthy() {
			return value.Bool(false), nil
		}
	}

	return value.Bool(true), nil
}

// AnyTruthy is the plat_array_any_truthy extern.
func AnyTruthy(args []value.Value) (value.Value, error) {
	a, err := asArray(args[0])
	if err != nil {
		return value.Value{}, err
	}

	a.mux.RLock()
	defer a.mux.RUnlock()

	for _, v := range a.items {
		if v.Truthy() {
			return value.Bool(true), nil
		}
	}

	return value.Bool(false), nil
}

// ToString is the plat_array_to_string extern.
func ToString(args []value.Value) (value.Value, error) {
	a, err := asArray(args[0])
	if err != nil {
		return value.Value{}, err
	}

	return value.Str(a.String()), nil
}

func equal(a, b value.Value) bool {
	if a.Kind != b.Kind {
		return false
	}

	switch a.Kind {
	case value.KindString:
		return a.S == b.S
	case value.KindFloat:
		return a.F == b.F
	case value.KindRef:
		return a.Ref == b.Ref
	default:
		return a.I == b.I
	}
}
