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
	"errors"
	"testing"

	"github.com/plat-lang/platc/pkg/runtime/value"
)

func TestScopeSpawnAndJoin(t *testing.T) {
	s := NewScope()

	invoke := func(name string, args []value.Value) (value.Value, error) {
		return value.Int(args[0].I * 2), nil
	}

	task := s.Spawn(invoke, "double", []value.Value{value.Int(21)})

	result, err := task.Join()
	if err != nil {
		t.Fatalf("Join: %v", err)
	}

	if result.I != 42 {
		t.Fatalf("Join result = %d, want 42", result.I)
	}

	if err := s.Join(); err != nil {
		t.Fatalf("Scope.Join: %v", err)
	}
}

func TestScopeJoinPropagatesFirstError(t *testing.T) {
	s := NewScope()
	boom := errors.New("boom")

	invoke := func(name string, args []value.Value) (value.Value, error) {
		return value.Value{}, boom
	}

	s.Spawn(invoke, "fail", nil)

	if err := s.Join(); err == nil {
		t.Fatal("expected Scope.Join to propagate the task's error")
	}
}

func TestChannelSendRecvClose(t *testing.T) {
	c := NewChannel(1)

	if err := c.Send(value.Int(7)); err != nil {
		t.Fatalf("Send: %v", err)
	}

	v, ok := c.Recv()
	if !ok || v.I != 7 {
		t.Fatalf("Recv = %v, %v, want 7, true", v, ok)
	}

	c.Close()

	if err := c.Send(value.Int(1)); err == nil {
		t.Fatal("expected Send on closed channel to fail")
	}

	if _, ok := c.Recv(); ok {
		t.Fatal("expected Recv on closed, drained channel to report !ok")
	}
}

func TestRuntimeExternsSpawnAndJoin(t *testing.T) {
	var invoked string

	invoke := func(name string, args []value.Value) (value.Value, error) {
		invoked = name
		return value.Int(1), nil
	}

	rt := NewRuntime(invoke)
	externs := rt.Externs()

	handle, err := externs["plat_scheduler_spawn"]([]value.Value{value.Str("task_fn")})
	if err != nil {
		t.Fatalf("plat_scheduler_spawn: %v", err)
	}

	result, err := externs["plat_task_join"]([]value.Value{handle})
	if err != nil {
		t.Fatalf("plat_task_join: %v", err)
	}

	if result.I != 1 {
		t.Fatalf("joined result = %d, want 1", result.I)
	}

	if invoked != "task_fn" {
		t.Fatalf("invoked = %q, want task_fn", invoked)
	}
}
