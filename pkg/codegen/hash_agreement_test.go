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
package codegen

import "testing"

// TestVariantHashKnownVectors checks the same known vectors as
// pkg/runtime/value's enumhash_test.go: both copies of VariantHash have to
// agree on every input, since codegen computes a variant's discriminant at
// compile time and runtime/value recomputes it (or receives it embedded)
// at execution time.
func TestVariantHashKnownVectors(t *testing.T) {
	tests := []struct {
		name string
		want uint32
	}{
		{"", 0},
		{"A", 65},
	}

	for _, tt := range tests {
		if got := variantHash(tt.name); got != tt.want {
			t.Errorf("variantHash(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestVariantHashDistinguishesNames(t *testing.T) {
	if variantHash("Some") == variantHash("None") {
		t.Error("variantHash(\"Some\") == variantHash(\"None\"), want distinct discriminants")
	}
}
