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

// Dict is the heap layout backing a Dict[K, V] value. Keys are compared
// by dictKey's rendering, matching value.Value's taggable kinds (Bool,
// Int, Float, String); Ref-keyed dicts are out of scope (spec.md §5
// assumes only primitive keys).
type Dict struct {
	mux  sync.RWMutex
	keys map[string]value.Value
	vals map[string]value.Value
}

func dictKey(v value.Value) string {
	return fmt.Sprintf("%d:%s", v.Kind, v.String())
}

func (d *Dict) String() string {
	d.mux.RLock()
	defer d.mux.RUnlock()

	parts := make([]string, 0, len(d.vals))
	for k := range d.vals {
		parts = append(parts, fmt.Sprintf("%s: %s", d.keys[k].String(), d.vals[k].String()))
	}

	return "{" + strings.Join(parts, ", ") + "}"
}

// NewDict is the plat_dict_new extern.
func NewDict(args []value.Value) (value.Value, error) {
	return value.MakeRef(&Dict{keys: make(map[string]value.Value), vals: make(map[string]value.Value)}), nil
}

func asDict(v value.Value) (*Dict, error) {
	d, ok := v.Ref.(*Dict)
	if !ok {
		return nil, fmt.Errorf("collection: value is not a Dict")
	}

	return d, nil
}

// DictGet is the plat_dict_get extern.
func DictGet(args []value.Value) (value.Value, error) {
	d, err := asDict(args[0])
	if err != nil {
		return value.Value{}, err
	}

	d.mux.RLock()
	defer d.mux.RUnlock()

	v, ok := d.vals[dictKey(args[1])]
	if !ok {
		return value.Value{}, fmt.Errorf("collection: key %s not found", args[1].String())
	}

	return v, nil
}

// DictGetOrDefault is the plat_dict_get_or_default extern.
func DictGetOrDefault(args []value.Value) (value.Value, error) {
	d, err := asDict(args[0])
	if err != nil {
		return value.Value{}, err
	}

	d.mux.RLock()
	defer d.mux.RUnlock()

	if v, ok := d.vals[dictKey(args[1])]; ok {
		return v, nil
	}

	return args[2], nil
}

// DictSet is the plat_dict_set extern.
func DictSet(args []value.Value) (value.Value, error) {
	d, err := asDict(args[0])
	if err != nil {
		return value.Value{}, err
	}

	k := dictKey(args[1])

	d.mux.Lock()
	d.keys[k] = args[1]
	d.vals[k] = args[2]
	d.mux.Unlock()

	return value.Void, nil
}

// DictRemove is the plat_dict_remove extern.
func DictRemove(args []value.Value) (value.Value, error) {
	d, err := asDict(args[0])
	if err != nil {
		return value.Value{}, err
	}

	k := dictKey(args[1])

	d.mux.Lock()
	delete(d.keys, k)
	delete(d.vals, k)
	d.mux.Unlock()

	return value.Void, nil
}

// DictClear is the plat_dict_clear extern.
func DictClear(args []value.Value) (value.Value, error) {
	d, err := asDict(args[0])
	if err != nil {
		return value.Value{}, err
	}

	d.mux.Lock()
	d.keys = make(map[string]value.Value)
	d.vals = make(map[string]value.Value)
	d.mux.Unlock()

	return value.Void, nil
}

// DictKeys is the plat_dict_keys extern.
func DictKeys(args []value.Value) (value.Value, error) {
	d, err := asDict(args[0])
	if err != nil {
		return value.Value{}, err
	}

	d.mux.RLock()
	defer d.mux.RUnlock()

	out := make([]value.Value, 0, len(d.keys))
	for _, k := range d.keys {
		out = append(out, k)
	}

	return value.MakeRef(&Array{items: out}), nil
}

// DictValues is the plat_dict_values extern.
func DictValues(args []value.Value) (value.Value, error) {
	d, err := asDict(args[0])
	if err != nil {
		return value.Value{}, err
	}

	d.mux.RLock()
	defer d.mux.RUnlock()

	out := make([]value.Value, 0, len(d.vals))
	for _, v := range d.vals {
		out = append(out, v)
	}

	return value.MakeRef(&Array{items: out}), nil
}

// DictContainsKey is the plat_dict_contains_key extern.
func DictContainsKey(args []value.Value) (value.Value, error) {
	d, err := asDict(args[0])
	if err != nil {
		return value.Value{}, err
	}

	d.mux.RLock()
	defer d.mux.RUnlock()

	_, ok := d.vals[dictKey(args[1])]

	return value.Bool(ok), nil
}

// DictContainsValue is the plat_dict_contains_value extern.
func DictContainsValue(args []value.Value) (value.Value, error) {
	d, err := asDict(args[0])
	if err != nil {
		return value.Value{}, err
	}

	d.mux.RLock()
	defer d.mux.RUnlock()

	for _, v := range d.vals {
		if equal(v, args[1]) {
			return value.Bool(true), nil
		}
	}

	return value.Bool(false), nil
}

// DictMerge is the plat_dict_merge extern: entries of args[1] overwrite
// matching keys of args[0] in a freshly allocated result.
func DictMerge(args []value.Value) (value.Value, error) {
	a, err := asDict(args[0])
	if err != nil {
		return value.Value{}, err
	}

	b, err := asDict(args[1])
	if err != nil {
		return value.Value{}, err
	}

	a.mux.RLock()
	b.mux.RLock()

	keys := make(map[string]value.Value, len(a.keys)+len(b.keys))
	vals := make(map[string]value.Value, len(a.vals)+len(b.vals))

	for k, v := range a.keys {
		keys[k] = v
	}

	for k, v := range a.vals {
		vals[k] = v
	}

	for k, v := range b.keys {
		keys[k] = v
	}

	for k, v := range b.vals {
		vals[k] = v
	}

	b.mux.RUnlock()
	a.mux.RUnlock()

	return value.MakeRef(&Dict{keys: keys, vals: vals}), nil
}

// DictLen is the plat_collection_len extern for a Dict receiver.
func DictLen(args []value.Value) (value.Value, error) {
	d, err := asDict(args[0])
	if err != nil {
		return value.Value{}, err
	}

	d.mux.RLock()
	defer d.mux.RUnlock()

	return value.Int(int64(len(d.vals))), nil
}

// DictToString is the plat_dict_to_string extern.
func DictToString(args []value.Value) (value.Value, error) {
	d, err := asDict(args[0])
	if err != nil {
		return value.Value{}, err
	}

	return value.Str(d.String()), nil
}
