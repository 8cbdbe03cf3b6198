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

// MethodCall invokes Method virtually on the class instance held in
// register Recv, which is passed as the callee's implicit self argument
// ahead of Args.
type MethodCall struct {
	Dst    int
	Recv   int
	Method string
	Args   []int
}

func (i *MethodCall) Execute(pc uint, m Machine) (uint, error) {
	recv := m.Reg(i.Recv)

	inst, ok := recv.Ref.(*value.Instance)
	if !ok {
		return 0, fmt.Errorf("MethodCall: register %d is not a class instance", i.Recv)
	}

	args := make([]value.Value, len(i.Args)+1)
	args[0] = recv

	for j, r := range i.Args {
		args[j+1] = m.Reg(r)
	}

	result, err := m.CallMethod(inst.Class, i.Method, args)
	if err != nil {
		return 0, err
	}

	if i.Dst >= 0 {
		m.SetReg(i.Dst, result)
	}

	return pc + 1, nil
}

func (i *MethodCall) Terminal() bool { return false }
