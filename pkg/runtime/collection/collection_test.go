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
	"testing"

	"github.com/plat-lang/platc/pkg/runtime/value"
)

func newTestArray(t *testing.T) value.Value {
	t.Helper()

	a, err := NewArray(nil)
	if err != nil {
		t.Fatalf("NewArray: %v", err)
	}

	return a
}

func TestArrayAppendAndGet(t *testing.T) {
	a := newTestArray(t)

	if _, err := Append([]value.Value{a, value.Int(1)}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	if _, err := Append([]value.Value{a, value.Int(2)}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := Get([]value.Value{a, value.Int(1)})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if got.I != 2 {
		t.Fatalf("Get(1) = %d, want 2", got.I)
	}
}

func TestArrayRemoveAtOutOfRange(t *testing.T) {
	a := newTestArray(t)

	if _, err := RemoveAt([]value.Value{a, value.Int(0)}); err == nil {
		t.Fatal("expected out-of-range error, got nil")
	}
}

func TestArrayContainsAndIndexOf(t *testing.T) {
	a := newTestArray(t)
	Append([]value.Value{a, value.Str("x")})
	Append([]value.Value{a, value.Str("y")})

	got, err := Contains([]value.Value{a, value.Str("y")})
	if err != nil || !got.Truthy() {
		t.Fatalf("Contains(y) = %v, %v, want true", got, err)
	}

	idx, err := IndexOf([]value.Value{a, value.Str("z")})
	if err != nil || idx.I != -1 {
		t.Fatalf("IndexOf(z) = %v, %v, want -1", idx, err)
	}
}

func TestDictSetGetAndMerge(t *testing.T) {
	d1, _ := NewDict(nil)
	d2, _ := NewDict(nil)

	DictSet([]value.Value{d1, value.Str("a"), value.Int(1)})
	DictSet([]value.Value{d2, value.Str("a"), value.Int(2)})
	DictSet([]value.Value{d2, value.Str("b"), value.Int(3)})

	merged, err := DictMerge([]value.Value{d1, d2})
	if err != nil {
		t.Fatalf("DictMerge: %v", err)
	}

	a, err := DictGet([]value.Value{merged, value.Str("a")})
	if err != nil || a.I != 2 {
		t.Fatalf("merged[a] = %v, %v, want 2", a, err)
	}

	b, err := DictGet([]value.Value{merged, value.Str("b")})
	if err != nil || b.I != 3 {
		t.Fatalf("merged[b] = %v, %v, want 3", b, err)
	}
}

func TestSetUnionIntersectionDifference(t *testing.T) {
	s1, _ := NewSet(nil)
	s2, _ := NewSet(nil)

	SetAdd([]value.Value{s1, value.Int(1)})
	SetAdd([]value.Value{s1, value.Int(2)})
	SetAdd([]value.Value{s2, value.Int(2)})
	SetAdd([]value.Value{s2, value.Int(3)})

	union, _ := SetUnion([]value.Value{s1, s2})
	n, _ := SetLen([]value.Value{union})
	if n.I != 3 {
		t.Fatalf("union len = %d, want 3", n.I)
	}

	inter, _ := SetIntersection([]value.Value{s1, s2})
	n, _ = SetLen([]value.Value{inter})
	if n.I != 1 {
		t.Fatalf("intersection len = %d, want 1", n.I)
	}

	diff, _ := SetDifference([]value.Value{s1, s2})
	n, _ = SetLen([]value.Value{diff})
	if n.I != 1 {
		t.Fatalf("difference len = %d, want 1", n.I)
	}
}

func TestStringParseHelpers(t *testing.T) {
	ok, err := StrParseInt([]value.Value{value.Str("42")})
	if err != nil {
		t.Fatalf("StrParseInt: %v", err)
	}

	e, _ := ok.Ref.(*value.Enum)
	if e == nil || e.Variant != "Ok" || e.Fields[0].I != 42 {
		t.Fatalf("StrParseInt(42) = %v, want Ok(42)", ok)
	}

	bad, err := StrParseInt([]value.Value{value.Str("nope")})
	if err != nil {
		t.Fatalf("StrParseInt: %v", err)
	}

	e, _ = bad.Ref.(*value.Enum)
	if e == nil || e.Variant != "Err" {
		t.Fatalf("StrParseInt(nope) = %v, want Err(...)", bad)
	}
}

func TestStringPadAndCase(t *testing.T) {
	padded, _ := StrPadStart([]value.Value{value.Str("7"), value.Int(3), value.Str("0")})
	if padded.S != "007" {
		t.Fatalf("StrPadStart = %q, want 007", padded.S)
	}

	upper, _ := StrToUpper([]value.Value{value.Str("abc")})
	if upper.S != "ABC" {
		t.Fatalf("StrToUpper = %q, want ABC", upper.S)
	}
}

func TestRangeCollectionLenAndGet(t *testing.T) {
	r, err := NewRange([]value.Value{value.Int(0), value.Int(5), value.Bool(false)})
	if err != nil {
		t.Fatalf("NewRange: %v", err)
	}

	n, err := CollectionLen([]value.Value{r})
	if err != nil || n.I != 5 {
		t.Fatalf("CollectionLen = %v, %v, want 5", n, err)
	}

	v, err := CollectionGet([]value.Value{r, value.Int(2)})
	if err != nil || v.I != 2 {
		t.Fatalf("CollectionGet(2) = %v, %v, want 2", v, err)
	}
}
