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

// VariantHash computes an enum variant's runtime discriminant:
// h(name) = sum(b_i * 31^(n-1-i)) mod 2^32, per spec.md §3's "Enum
// variant discriminants" invariant. pkg/codegen/enumhash.go carries an
// identical copy of this function — the two packages must never import
// one another (codegen lowers to the object/runtime boundary, it does not
// sit below runtime/value), so the one genuinely shared piece of logic
// between them is duplicated verbatim rather than factored into a third
// package neither would otherwise need. pkg/codegen's hash_agreement_test
// and this package's enumhash_test both assert on the same fixed vectors
// to catch any future drift between the two copies.
func VariantHash(name string) uint32 {
	var h uint32

	for i := 0; i < len(name); i++ {
		h = h*31 + uint32(name[i])
	}

	return h
}
