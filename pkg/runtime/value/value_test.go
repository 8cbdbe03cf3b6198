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
package value

import "testing"

func TestTruthy(t *testing.T) {
	if !Bool(true).Truthy() {
		t.Error("Bool(true).Truthy() = false, want true")
	}

	if Bool(false).Truthy() {
		t.Error("Bool(false).Truthy() = true, want false")
	}

	if Int(1).Truthy() {
		t.Error("Int(1).Truthy() = true, want false (Int is not a condition type)")
	}
}

func TestStringRendersEachKind(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Void, "void"},
		{Bool(true), "true"},
		{Int(42), "42"},
		{Float(1.5), "1.5"},
		{Str("hi"), "hi"},
	}

	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("Value{%v}.String() = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestEnumString(t *testing.T) {
	e := &Enum{Type: "Option", Variant: "None", Discriminant: VariantHash("None")}

	v := MakeRef(e)
	if got, want := v.String(), "Option::None"; got != want {
		t.Errorf("MakeRef(enum).String() = %q, want %q", got, want)
	}
}
