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

import (
	"errors"
	"fmt"
)

// TrapKind distinguishes the handful of conditions that abort a running
// program outright, as opposed to an ordinary internal error or a
// Result::Err value handled entirely within the program.
type TrapKind int

const (
	// DivideByZero is raised by an integer "/" or "%" with a zero
	// right-hand side.
	DivideByZero TrapKind = iota
	// OutOfMemory names an out-of-memory trap; no code path in this
	// runtime raises it, since pkg/runtime/gc has no allocation ceiling.
	OutOfMemory
	// AssertFailed is raised by a failed plat_assert call.
	AssertFailed
)

func (k TrapKind) String() string {
	switch k {
	case DivideByZero:
		return "division by zero"
	case OutOfMemory:
		return "out of memory"
	case AssertFailed:
		return "assertion failed"
	default:
		return "trap"
	}
}

// Trap is the error type for the small set of runtime conditions that
// abort program execution. Grounded on the teacher's sexp.SyntaxError: a
// minimal struct implementing error with a typed accessor callers can
// switch on, rather than a bare fmt.Errorf string. Lives in pkg/runtime/
// value (not the higher pkg/runtime package) so pkg/object's instruction
// set can raise one directly without an import cycle back through
// pkg/interp.
type Trap struct {
	Kind    TrapKind
	Message string
}

// NewTrap constructs a Trap of the given kind with msg appended to the
// kind's default description.
func NewTrap(kind TrapKind, msg string) *Trap {
	return &Trap{Kind: kind, Message: msg}
}

// Error implements the error interface.
func (t *Trap) Error() string {
	if t.Message == "" {
		return t.Kind.String()
	}

	return fmt.Sprintf("%s: %s", t.Kind.String(), t.Message)
}

// AsTrap reports whether err is or wraps a *Trap, returning it if so.
// pkg/interp.Call wraps every instruction error with %w as it unwinds, so
// this unwraps through that chain rather than asserting err's exact type.
func AsTrap(err error) (*Trap, bool) {
	var t *Trap
	ok := errors.As(err, &t)

	return t, ok
}
