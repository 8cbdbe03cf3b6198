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

	"github.com/plat-lang/platc/pkg/runtime/value"
)

// Range is the heap layout backing an `a..b`/`a..=b` range expression used
// as a for-loop iterable in expression position (pkg/codegen lowers the
// common `for (x in lo..hi)` case directly into a counting loop instead;
// Range only needs to exist for a range value that escapes into a
// variable or is passed around before iteration).
type Range struct {
	Lo, Hi    int64
	Inclusive bool
}

func (r *Range) len() int64 {
	n := r.Hi - r.Lo
	if r.Inclusive {
		n++
	}

	if n < 0 {
		return 0
	}

	return n
}

// NewRange is the plat_range_new extern.
func NewRange(args []value.Value) (value.Value, error) {
	return value.MakeRef(&Range{Lo: args[0].I, Hi: args[1].I, Inclusive: args[2].Truthy()}), nil
}

// CollectionLen is the plat_collection_len extern, dispatching on the
// receiver's runtime type (spec.md §5 gives every built-in collection a
// uniform indexed-access surface).
func CollectionLen(args []value.Value) (value.Value, error) {
	switch v := args[0].Ref.(type) {
	case *Array:
		return Count(args)
	case *Dict:
		return DictLen(args)
	case *Set:
		return SetLen(args)
	case *Range:
		return value.Int(v.len()), nil
	default:
		return value.Value{}, fmt.Errorf("collection: value has no length")
	}
}

// CollectionGet is the plat_collection_get extern, dispatching on the
// receiver's runtime type.
func CollectionGet(args []value.Value) (value.Value, error) {
	switch v := args[0].Ref.(type) {
	case *Array:
		return Get(args)
	case *Dict:
		return DictGet(args)
	case *Range:
		idx := args[1].I
		if idx < 0 || idx >= v.len() {
			return value.Value{}, fmt.Errorf("collection: index %d out of range", idx)
		}

		return value.Int(v.Lo + idx), nil
	default:
		return value.Value{}, fmt.Errorf("collection: value does not support indexed get")
	}
}

// CollectionSet is the plat_collection_set extern, dispatching on the
// receiver's runtime type.
func CollectionSet(args []value.Value) (value.Value, error) {
	switch args[0].Ref.(type) {
	case *Array:
		return ArraySet(args)
	case *Dict:
		return DictSet(args)
	default:
		return value.Value{}, fmt.Errorf("collection: value does not support indexed assignment")
	}
}
