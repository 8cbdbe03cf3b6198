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
package scheduler

import (
	"fmt"

	"github.com/plat-lang/platc/pkg/runtime/value"
)

// Runtime binds a scheduler to the interpreter's Call so spawned tasks
// can re-enter the same object.Module, and tracks the single implicit
// top-level scope every spawn not inside an explicit `concurrent` block
// joins into before the program exits.
type Runtime struct {
	invoke Invoke
	root   *Scope
}

// NewRuntime constructs a scheduler runtime bound to invoke (normally
// (*interp.Interp).Call).
func NewRuntime(invoke Invoke) *Runtime {
	return &Runtime{invoke: invoke, root: NewScope()}
}

// Join waits for every task spawned outside of an explicit scope, for use
// at program exit.
func (r *Runtime) Join() error { return r.root.Join() }

// Externs builds r's plat_scheduler_*/plat_scope_*/plat_channel_* entry
// points as plain extern functions.
func (r *Runtime) Externs() map[string]func(args []value.Value) (value.Value, error) {
	return map[string]func(args []value.Value) (value.Value, error){
		"plat_scheduler_spawn": func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return value.Value{}, fmt.Errorf("scheduler: spawn requires a function name")
			}

			t := r.root.Spawn(r.invoke, args[0].S, args[1:])

			return value.MakeRef(t), nil
		},
		// plat_scheduler_spawn_into spawns into an explicit *Scope (args[0])
		// a `concurrent { ... }` block opened, rather than the implicit
		// top-level scope plat_scheduler_spawn always targets — so the task
		// is joined when that block's plat_scope_exit runs, not at program
		// exit.
		"plat_scheduler_spawn_into": func(args []value.Value) (value.Value, error) {
			if len(args) < 2 {
				return value.Value{}, fmt.Errorf("scheduler: spawn_into requires a scope and a function name")
			}

			s, ok := args[0].Ref.(*Scope)
			if !ok {
				return value.Value{}, fmt.Errorf("scheduler: value is not a Scope")
			}

			t := s.Spawn(r.invoke, args[1].S, args[2:])

			return value.MakeRef(t), nil
		},
		"plat_task_join": func(args []value.Value) (value.Value, error) {
			t, ok := args[0].Ref.(*Task)
			if !ok {
				return value.Value{}, fmt.Errorf("scheduler: value is not a Task")
			}

			return t.Join()
		},
		"plat_scope_enter": func(args []value.Value) (value.Value, error) {
			return value.MakeRef(NewScope()), nil
		},
		"plat_scope_exit": func(args []value.Value) (value.Value, error) {
			s, ok := args[0].Ref.(*Scope)
			if !ok {
				return value.Value{}, fmt.Errorf("scheduler: value is not a Scope")
			}

			if err := s.Join(); err != nil {
				return value.ResultErr(err.Error()), nil
			}

			return value.ResultOk(value.Void), nil
		},
		"plat_channel_new": func(args []value.Value) (value.Value, error) {
			capacity := 0
			if len(args) > 0 {
				capacity = int(args[0].I)
			}

			return value.MakeRef(NewChannel(capacity)), nil
		},
		"plat_channel_send": func(args []value.Value) (value.Value, error) {
			c, ok := args[0].Ref.(*Channel)
			if !ok {
				return value.Value{}, fmt.Errorf("scheduler: value is not a Channel")
			}

			if err := c.Send(args[1]); err != nil {
				return value.ResultErr(err.Error()), nil
			}

			return value.ResultOk(value.Void), nil
		},
		"plat_channel_recv": func(args []value.Value) (value.Value, error) {
			c, ok := args[0].Ref.(*Channel)
			if !ok {
				return value.Value{}, fmt.Errorf("scheduler: value is not a Channel")
			}

			v, ok := c.Recv()
			if !ok {
				return value.ResultErr("channel closed"), nil
			}

			return value.ResultOk(v), nil
		},
		"plat_channel_close": func(args []value.Value) (value.Value, error) {
			c, ok := args[0].Ref.(*Channel)
			if !ok {
				return value.Value{}, fmt.Errorf("scheduler: value is not a Channel")
			}

			c.Close()

			return value.Void, nil
		},
	}
}
