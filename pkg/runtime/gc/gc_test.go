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
package gc

import (
	"testing"

	"github.com/plat-lang/platc/pkg/runtime/value"
)

func TestHeapAllocCounts(t *testing.T) {
	h := NewHeap()

	h.Alloc(8)
	h.Alloc(16)
	h.AllocAtomic(4)

	stats := h.Stats()
	if stats.Allocs != 2 {
		t.Fatalf("Allocs = %d, want 2", stats.Allocs)
	}

	if stats.AtomicAllocs != 1 {
		t.Fatalf("AtomicAllocs = %d, want 1", stats.AtomicAllocs)
	}
}

func TestHeapCollectReturnsStats(t *testing.T) {
	h := NewHeap()
	h.Alloc(1)

	stats := h.Collect()
	if stats.Allocs != 1 {
		t.Fatalf("Allocs after Collect = %d, want 1", stats.Allocs)
	}
}

func TestExternsRoundTrip(t *testing.T) {
	h := NewHeap()
	externs := h.Externs()

	if _, err := externs["plat_gc_alloc"]([]value.Value{value.Int(1)}); err != nil {
		t.Fatalf("plat_gc_alloc: %v", err)
	}

	v, err := externs["plat_gc_stats"](nil)
	if err != nil {
		t.Fatalf("plat_gc_stats: %v", err)
	}

	if v.Ref == nil {
		t.Fatal("plat_gc_stats returned no value")
	}
}
