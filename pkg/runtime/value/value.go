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

// Package value implements Plat's runtime value representation: a tagged
// union over the primitive types plus a Ref slot for heap-allocated enum
// instances, class instances, and collections. Native Plat compiles a
// value down to a packed tagged i64; since this implementation hosts
// values on the Go heap under the Go GC instead (see pkg/runtime/gc's
// doc comment for why), Value is a small tagged struct rather than a
// literal bit-packed word — the tag discipline and the enum/class layouts
// it carries are otherwise identical to the native design in spec.md §3.
package value

import "fmt"

// Kind identifies which field of a Value is meaningful.
type Kind int

// Value kinds.
const (
	KindVoid Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindRef // Enum, *Instance, or a runtime/collection handle
)

// Value is Plat's single runtime value representation.
type Value struct {
	Kind Kind
	I    int64
	F    float64
	S    string
	Ref  interface{}
}

// Void is the value produced by statement-position expressions.
var Void = Value{Kind: KindVoid}

// Bool constructs a boolean value.
func Bool(b bool) Value {
	var i int64
	if b {
		i = 1
	}

	return Value{Kind: KindBool, I: i}
}

// Int constructs an integer value (Int8/16/32/64 all share this
// representation; width is a compile-time-only distinction enforced by
// pkg/sema).
func Int(i int64) Value { return Value{Kind: KindInt, I: i} }

// Float constructs a floating-point value.
func Float(f float64) Value { return Value{Kind: KindFloat, F: f} }

// Str constructs a string value.
func Str(s string) Value { return Value{Kind: KindString, S: s} }

// MakeRef constructs a heap-reference value wrapping an arbitrary runtime
// object (an *Enum, *Instance, or a pkg/runtime/collection handle).
func MakeRef(v interface{}) Value { return Value{Kind: KindRef, Ref: v} }

// Truthy reports whether v is suitable as an `if`/`while` condition or
// short-circuit `and`/`or` operand.
func (v Value) Truthy() bool {
	return v.Kind == KindBool && v.I != 0
}

// String renders v for print/toString and debugging.
func (v Value) String() string {
	switch v.Kind {
	case KindVoid:
		return "void"
	case KindBool:
		return fmt.Sprintf("%t", v.I != 0)
	case KindInt:
		return fmt.Sprintf("%d", v.I)
	case KindFloat:
		return fmt.Sprintf("%g", v.F)
	case KindString:
		return v.S
	case KindRef:
		if s, ok := v.Ref.(interface{ String() string }); ok {
			return s.String()
		}

		return fmt.Sprintf("%v", v.Ref)
	default:
		return "<invalid>"
	}
}

// Enum is the heap layout of an enum instance: its variant's
// name/discriminant (spec.md §3's "Enum heap layout") and its field
// values in declaration order.
type Enum struct {
	Type         string
	Variant      string
	Discriminant uint32
	Fields       []Value
}

func (e *Enum) String() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s::%s", e.Type, e.Variant)
	}

	return fmt.Sprintf("%s::%s(...)", e.Type, e.Variant)
}

// Instance is the heap layout of a class instance: its runtime class name
// (used for virtual dispatch against the owning Module's ClassLayout) and
// its fields in inherited-then-own order.
type Instance struct {
	Class  string
	Fields map[string]Value
}

func (i *Instance) String() string {
	return fmt.Sprintf("%s{...}", i.Class)
}

// ResultOk and ResultErr build the Result<T, String> enum value the
// runtime's fallible externs (string parsing, file/network I/O) return,
// per spec.md §5's "every fallible runtime operation returns a Result"
// convention.
func ResultOk(v Value) Value {
	return MakeRef(&Enum{Type: "Result", Variant: "Ok", Discriminant: VariantHash("Ok"), Fields: []Value{v}})
}

// ResultErr builds the Err(message) case of a Result<T, String>.
func ResultErr(message string) Value {
	return MakeRef(&Enum{Type: "Result", Variant: "Err", Discriminant: VariantHash("Err"), Fields: []Value{Str(message)}})
}
