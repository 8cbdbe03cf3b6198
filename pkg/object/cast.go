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
	"strconv"
	"strings"

	"github.com/plat-lang/platc/pkg/runtime/value"
)

// Cast converts Src to the primitive family named by Target ("Int",
// "Float", "String", "Bool" — width suffixes like Int32 are stripped by
// pkg/codegen before building this instruction, since the runtime value
// representation does not distinguish integer widths).
type Cast struct {
	Dst, Src int
	Target   string
}

func (i *Cast) Execute(pc uint, m Machine) (uint, error) {
	v := m.Reg(i.Src)

	var out value.Value

	switch {
	case strings.HasPrefix(i.Target, "Int"):
		switch v.Kind {
		case value.KindFloat:
			out = value.Int(int64(v.F))
		case value.KindString:
			n, err := strconv.ParseInt(strings.TrimSpace(v.S), 10, 64)
			if err != nil {
				return 0, fmt.Errorf("cast: %q is not an integer", v.S)
			}

			out = value.Int(n)
		case value.KindBool:
			out = value.Int(v.I)
		default:
			out = v
		}
	case strings.HasPrefix(i.Target, "Float"):
		switch v.Kind {
		case value.KindInt:
			out = value.Float(float64(v.I))
		case value.KindString:
			f, err := strconv.ParseFloat(strings.TrimSpace(v.S), 64)
			if err != nil {
				return 0, fmt.Errorf("cast: %q is not a float", v.S)
			}

			out = value.Float(f)
		default:
			out = v
		}
	case i.Target == "String":
		out = value.Str(v.String())
	case i.Target == "Bool":
		out = value.Bool(v.Truthy() || v.I != 0)
	default:
		out = v
	}

	m.SetReg(i.Dst, out)

	return pc + 1, nil
}

func (i *Cast) Terminal() bool { return false }
