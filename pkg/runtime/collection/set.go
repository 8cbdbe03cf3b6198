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
package collection

import (
	"fmt"
	"strings"
	"sync"

	"github.com/plat-lang/platc/pkg/runtime/value"
)

// Set is the heap layout backing a Set[T] value.
type Set struct {
	mux   sync.RWMutex
	items map[string]value.Value
}

func (s *Set) String() string {
	s.mux.RLock()
	defer s.mux.RUnlock()

	parts := make([]string, 0, len(s.items))
	for _, v := range s.items {
		parts = append(parts, v.String())
	}

	return "{" + strings.Join(parts, ", ") + "}"
}

// NewSet is the plat_set_new extern.
func NewSet(args []value.Value) (value.Value, error) {
	return value.MakeRef(&Set{items: make(map[string]value.Value)}), nil
}

func asSet(v value.Value) (*Set, error) {
	s, ok := v.Ref.(*Set)
	if !ok {
		return nil, fmt.Errorf("collection: value is not a Set")
	}

	return s, nil
}

// SetAdd is the plat_set_add extern.
func SetAdd(args []value.Value) (value.Value, error) {
	s, err := asSet(args[0])
	if err != nil {
		return value.Value{}, err
	}

	s.mux.Lock()
	s.items[dictKey(args[1])] = args[1]
	s.mux.Unlock()

	return value.Void, nil
}

// SetRemove is the plat_set_remove extern.
func SetRemove(args []value.Value) (value.Value, error) {
	s, err := asSet(args[0])
	if err != nil {
		return value.Value{}, err
	}

	s.mux.Lock()
	delete(s.items, dictKey(args[1]))
	s.mux.Unlock()

	return value.Void, nil
}

// SetContains is the plat_set_contains extern.
func SetContains(args []value.Value) (value.Value, error) {
	s, err := asSet(args[0])
	if err != nil {
		return value.Value{}, err
	}

	s.mux.RLock()
	defer s.mux.RUnlock()

	_, ok := s.items[dictKey(args[1])]

	return value.Bool(ok), nil
}

// SetClear is the plat_set_clear extern.
func SetClear(args []value.Value) (value.Value, error) {
	s, err := asSet(args[0])
	if err != nil {
		return value.Value{}, err
	}

	s.mux.Lock()
	s.items = make(map[string]value.Value)
	s.mux.Unlock()

	return value.Void, nil
}

// SetLen is the plat_collection_len extern for a Set receiver.
func SetLen(args []value.Value) (value.Value, error) {
	s, err := asSet(args[0])
	if err != nil {
		return value.Value{}, err
	}

	s.mux.RLock()
	defer s.mux.RUnlock()

	return value.Int(int64(len(s.items))), nil
}

// SetUnion is the plat_set_union extern.
func SetUnion(args []value.Value) (value.Value, error) {
	return setCombine(args, func(inA, inB bool) bool { return inA || inB })
}

// SetIntersection is the plat_set_intersection extern.
func SetIntersection(args []value.Value) (value.Value, error) {
	return setCombine(args, func(inA, inB bool) bool { return inA && inB })
}

// SetDifference is the plat_set_difference extern: members of args[0] not
// in args[1].
func SetDifference(args []value.Value) (value.Value, error) {
	return setCombine(args, func(inA, inB bool) bool { return inA && !inB })
}

func setCombine(args []value.Value, keep func(inA, inB bool) bool) (value.Value, error) {
	a, err := asSet(args[0])
	if err != nil {
		return value.Value{}, err
	}

	b, err := asSet(args[1])
	if err != nil {
		return value.Value{}, err
	}

	a.mux.RLock()
	b.mux.RLock()
	defer b.mux.RUnlock()
	defer a.mux.RUnlock()

	out := make(map[string]value.Value)

	for k, v := range a.items {
		_, inB := b.items[k]
		if keep(true, inB) {
			out[k] = v
		}
	}

	for k, v := range b.items {
		if _, inA := a.items[k]; inA {
			continue
		}

		if keep(false, true) {
			out[k] = v
		}
	}

	return value.MakeRef(&Set{items: out}), nil
}

// SetIsSubset is the plat_set_is_subset extern: reports whether args[0]
// is a subset of args[1].
func SetIsSubset(args []value.Value) (value.Value, error) {
	a, err := asSet(args[0])
	if err != nil {
		return value.Value{}, err
	}

	b, err := asSet(args[1])
	if err != nil {
		return value.Value{}, err
	}

	a.mux.RLock()
	b.mux.RLock()
	defer b.mux.RUnlock()
	defer a.mux.RUnlock()

	for k := range a.items {
		if _, ok := b.items[k]; !ok {
			return value.Bool(false), nil
		}
	}

	return value.Bool(true), nil
}

// SetIsSuperset is the plat_set_is_superset extern.
func SetIsSuperset(args []value.Value) (value.Value, error) {
	return SetIsSubset([]value.Value{args[1], args[0]})
}

// SetIsDisjoint is the plat_set_is_disjoint extern.
func SetIsDisjoint(args []value.Value) (value.Value, error) {
	a, err := asSet(args[0])
	if err != nil {
		return value.Value{}, err
	}

	b, err := asSet(args[1])
	if err != nil {
		return value.Value{}, err
	}

	a.mux.RLock()
	b.mux.RLock()
	defer b.mux.RUnlock()
	defer a.mux.RUnlock()

	for k := range a.items {
		if _, ok := b.items[k]; ok {
			return value.Bool(false), nil
		}
	}

	return value.Bool(true), nil
}

// SetToString is the plat_set_to_string extern.
func SetToString(args []value.Value) (value.Value, error) {
	s, err := asSet(args[0])
	if err != nil {
		return value.Value{}, err
	}

	return value.Str(s.String()), nil
}
