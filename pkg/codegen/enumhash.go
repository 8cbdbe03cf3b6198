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

// variantHash computes an enum variant's runtime discriminant:
// h(name) = sum(b_i * 31^(n-1-i)) mod 2^32. This is a deliberate verbatim
// copy of pkg/runtime/value's VariantHash (see that function's doc
// comment): codegen lowers down to the object/runtime boundary and must
// never import back up into runtime/value, so the one piece of logic the
// two packages share is duplicated rather than factored out. hash_agreement_test.go
// asserts this copy produces the exact same fixed vectors as runtime/value's.
func variantHash(name string) uint32 {
	var h uint32

	for i := 0; i < len(name); i++ {
		h = h*31 + uint32(name[i])
	}

	return h
}
