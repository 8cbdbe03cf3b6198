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

import (
	"fmt"

	"github.com/plat-lang/platc/pkg/runtime/value"
)

// EnumDiscriminant reads an enum value's variant discriminant into Dst, for
// match-expression dispatch.
type EnumDiscriminant struct{ Dst, Src int }

func (i *EnumDiscriminant) Execute(pc uint, m Machine) (uint, error) {
	e, ok := m.Reg(i.Src).Ref.(*value.Enum)
	if !ok {
		return 0, fmt.Errorf("EnumDiscriminant: register %d is not an enum", i.Src)
	}

	m.SetReg(i.Dst, value.Int(int64(e.Discriminant)))

	return pc + 1, nil
}

func (i *EnumDiscriminant) Terminal() bool { return false }

// EnumField reads field Index of an enum value into Dst, binding a match
// arm's field pattern.
type EnumField struct {
	Dst, Src int
	Index    int
}

func (i *EnumField) Execute(pc uint, m Machine) (uint, error) {
	e, ok := m.Reg(i.Src).Ref.(*value.Enum)
	if !ok {
		return 0, fmt.Errorf("EnumField: register %d is not an enum", i.Src)
	}

	if i.Index < 0 || i.Index >= len(e.Fields) {
		return 0, fmt.Errorf("EnumField: index %d out of range for variant %s", i.Index, e.Variant)
	}

	m.SetReg(i.Dst, e.Fields[i.Index])

	return pc + 1, nil
}

func (i *EnumField) Terminal() bool { return false }
