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
package object

// JumpIfTrue transfers control to Target when register Cond is truthy,
// the mirror image of JumpIfFalse. pkg/codegen uses it to short-circuit
// `or` without re-testing a negated condition.
type JumpIfTrue struct {
	Cond   int
	Target uint
}

func (i *JumpIfTrue) Execute(pc uint, m Machine) (uint, error) {
	if m.Reg(i.Cond).Truthy() {
		return i.Target, nil
	}

	return pc + 1, nil
}

func (i *JumpIfTrue) Terminal() bool { return false }
