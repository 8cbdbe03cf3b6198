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

// Package scheduler implements Plat's structured-concurrency primitives:
// `spawn` tasks, `concurrent` scopes, and typed channels, per spec.md §7.
// The original runtime spec describes a work-stealing M:N scheduler over
// OS threads (crossbeam-deque-style); this implementation deliberately
// reaches for Go's own M:N goroutine scheduler instead of reimplementing
// one; a Task is a goroutine that stores its result and then closes a done
// channel, and a Scope is a mutex-guarded list of the Tasks it spawned.
// There is no worker pool, work stealing or task cancellation. Idiomatic Go over a literal port, not a missing
// feature: the host runtime already solves the scheduling problem the
// original hand-rolls.
package scheduler

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/plat-lang/platc/pkg/runtime/value"
)

// Invoke calls a named (possibly synthetic, codegen-generated spawn-body)
// function — supplied by pkg/interp, since the scheduler itself has no
// notion of an object.Module.
type Invoke func(name string, args []value.Value) (value.Value, error)

// Task is one spawned unit of work.
type Task struct {
	done   chan struct{}
	result value.Value
	err    error
}

// Join blocks until the task completes and returns its result.
func (t *Task) Join() (value.Value, error) {
	<-t.done
	return t.result, t.err
}

func (t *Task) String() string { return "Task" }

// Scope is a `concurrent { ... }` structured-concurrency region: every
// Task spawned while it is open is joined when the scope exits, so a
// panic or early return can never leak a still-running task past the
// block that created it.
type Scope struct {
	mux   sync.Mutex
	tasks []*Task
}

// NewScope opens a scope (plat_scope_enter).
func NewScope() *Scope {
	log.Debug("scope enter")
	return &Scope{}
}

// Spawn launches fn(args) on its own goroutine, tracked by this scope, and
// returns a handle immediately.
func (s *Scope) Spawn(invoke Invoke, name string, args []value.Value) *Task {
	t := &Task{done: make(chan struct{})}

	s.mux.Lock()
	s.tasks = append(s.tasks, t)
	s.mux.Unlock()

	go func() {
		defer close(t.done)
		t.result, t.err = invoke(name, args)
	}()

	return t
}

// Join waits for every task spawned in this scope (plat_scope_exit) and
// returns the first error encountered, if any.
func (s *Scope) Join() error {
	s.mux.Lock()
	tasks := s.tasks
	s.mux.Unlock()

	log.WithField("workers", len(tasks)).Debug("scope exit")

	var first error

	for _, t := range tasks {
		if _, err := t.Join(); err != nil && first == nil {
			first = err
		}
	}

	return first
}

// Channel is a buffered (capacity > 0) or unbuffered typed channel (spec.md §7's
// Channel[T]); Plat values flow through it untyped at this layer, since
// pkg/sema already enforces the element type at compile time.
type Channel struct {
	ch     chan value.Value
	closed chan struct{}
	once   sync.Once
}

// NewChannel constructs a channel with the given buffer capacity (0 for
// unbuffered/synchronous).
func NewChannel(capacity int) *Channel {
	return &Channel{ch: make(chan value.Value, capacity), closed: make(chan struct{})}
}

func (c *Channel) String() string { return "Channel" }

// Send delivers v, blocking if the channel is full, and returns an error
// if the channel has been closed.
func (c *Channel) Send(v value.Value) error {
	select {
	case <-c.closed:
		return fmt.Errorf("scheduler: send on closed channel")
	default:
	}

	select {
	case c.ch <- v:
		return nil
	case <-c.closed:
		return fmt.Errorf("scheduler: send on closed channel")
	}
}

// Recv blocks for the next value; ok is false once the channel is closed
// and drained.
func (c *Channel) Recv() (v value.Value, ok bool) {
	v, ok = <-c.ch
	return v, ok
}

// Close closes the channel; further Sends fail and Recv drains remaining
// buffered values before reporting !ok.
func (c *Channel) Close() {
	c.once.Do(func() {
		close(c.closed)
		close(c.ch)
	})
}
