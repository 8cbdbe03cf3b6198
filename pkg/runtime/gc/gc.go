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

// Package gc implements the plat_gc_alloc/plat_gc_alloc_atomic/plat_gc_collect
// ABI entry points spec.md §4 names. Native Plat owns a mark-sweep
// collector over its packed-word heap; this implementation instead hosts
// every Plat value as a regular Go value under the host Go runtime's own
// garbage collector, so Heap is bookkeeping (allocation counters, an
// explicit Collect hook) rather than a from-scratch collector — writing
// one here would just race the real one for no benefit.
package gc

import (
	"runtime"
	"sync/atomic"

	"github.com/plat-lang/platc/pkg/runtime/value"
)

// Heap tracks allocation counts for plat_gc_stats and exposes an explicit
// collection trigger for plat_gc_collect.
type Heap struct {
	allocs      int64
	atomicAllocs int64
}

// NewHeap constructs an empty allocation tracker.
func NewHeap() *Heap { return &Heap{} }

// Alloc is the plat_gc_alloc extern: every Plat heap allocation (enum/class
// instances, collections, closures) that may itself hold further Ref
// values passes through here so Stats stays meaningful.
func (h *Heap) Alloc(size int64) {
	atomic.AddInt64(&h.allocs, 1)
}

// AllocAtomic is the plat_gc_alloc_atomic extern: an allocation the
// collector can treat as pointer-free (plain numeric/string buffers).
func (h *Heap) AllocAtomic(size int64) {
	atomic.AddInt64(&h.atomicAllocs, 1)
}

// Collect is the plat_gc_collect extern: forces a collection cycle on the
// host Go runtime and returns the stats snapshot taken just after.
func (h *Heap) Collect() Stats {
	runtime.GC()
	return h.Stats()
}

// Stats is the plat_gc_stats extern's return shape.
type Stats struct {
	Allocs       int64
	AtomicAllocs int64
	HeapBytes    uint64
}

// Stats snapshots the tracker's counters plus the host runtime's current
// heap size.
func (h *Heap) Stats() Stats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return Stats{
		Allocs:       atomic.LoadInt64(&h.allocs),
		AtomicAllocs: atomic.LoadInt64(&h.atomicAllocs),
		HeapBytes:    m.HeapAlloc,
	}
}

// Externs builds h's alloc/collect/stats entry points as plain extern
// functions ready for pkg/runtime's registry.
func (h *Heap) Externs() map[string]func(args []value.Value) (value.Value, error) {
	return map[string]func(args []value.Value) (value.Value, error){
		"plat_gc_alloc": func(args []value.Value) (value.Value, error) {
			h.Alloc(args[0].I)
			return value.Void, nil
		},
		"plat_gc_alloc_atomic": func(args []value.Value) (value.Value, error) {
			h.AllocAtomic(args[0].I)
			return value.Void, nil
		},
		"plat_gc_collect": func(args []value.Value) (value.Value, error) {
			h.Collect()
			return value.Void, nil
		},
		"plat_gc_stats": func(args []value.Value) (value.Value, error) {
			s := h.Stats()
			return value.MakeRef(&s), nil
		},
	}
}
