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

// Package io implements Plat's file, directory, environment, time,
// random, and TCP externs, per spec.md §5. Every operation that can fail
// returns a Result<T, String> rather than a Go error, mirroring how the
// language surface itself reports failure; only a malformed call (wrong
// argument count/kind) surfaces as a genuine Go error, which pkg/interp
// treats as an unrecoverable host-level fault.
package io

import (
	"fmt"
	"math/rand"
	"net"
	"os"
	"sync"
	"time"

	"github.com/plat-lang/platc/pkg/runtime/collection"
	"github.com/plat-lang/platc/pkg/runtime/value"
)

// Table is a file-descriptor/TCP-handle table, grounded on the teacher's
// pkg/mmap/file.go's single-resource-per-handle ownership model,
// generalized to multiple resource kinds behind one handle space.
type Table struct {
	mux     sync.Mutex
	next    int64
	files   map[int64]*os.File
	conns   map[int64]net.Conn
	listens map[int64]net.Listener
}

// NewTable constructs an empty handle table.
func NewTable() *Table {
	return &Table{files: make(map[int64]*os.File), conns: make(map[int64]net.Conn), listens: make(map[int64]net.Listener)}
}

func (t *Table) allocHandle() int64 {
	t.mux.Lock()
	defer t.mux.Unlock()

	t.next++

	return t.next
}

// FileOpen is the plat_file_open extern: mode is "r", "w", or "a".
func (t *Table) FileOpen(args []value.Value) (value.Value, error) {
	path, mode := args[0].S, args[1].S

	var (
		f   *os.File
		err error
	)

	switch mode {
	case "r":
		f, err = os.Open(path)
	case "w":
		f, err = os.Create(path)
	case "a":
		f, err = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	default:
		return value.ResultErr(fmt.Sprintf("unknown file mode %q", mode)), nil
	}

	if err != nil {
		return value.ResultErr(err.Error()), nil
	}

	h := t.allocHandle()

	t.mux.Lock()
	t.files[h] = f
	t.mux.Unlock()

	return value.ResultOk(value.Int(h)), nil
}

func (t *Table) file(h int64) (*os.File, error) {
	t.mux.Lock()
	defer t.mux.Unlock()

	f, ok := t.files[h]
	if !ok {
		return nil, fmt.Errorf("io: no open file for handle %d", h)
	}

	return f, nil
}

// FileRead is the plat_file_read extern: reads the whole file at the
// handle's path, from its start, as a string.
func (t *Table) FileRead(args []value.Value) (value.Value, error) {
	f, err := t.file(args[0].I)
	if err != nil {
		return value.Value{}, err
	}

	data, err := os.ReadFile(f.Name())
	if err != nil {
		return value.ResultErr(err.Error()), nil
	}

	return value.ResultOk(value.Str(string(data))), nil
}

// FileWrite is the plat_file_write extern.
func (t *Table) FileWrite(args []value.Value) (value.Value, error) {
	f, err := t.file(args[0].I)
	if err != nil {
		return value.Value{}, err
	}

	if _, err := f.WriteString(args[1].S); err != nil {
		return value.ResultErr(err.Error()), nil
	}

	return value.ResultOk(value.Void), nil
}

// FileClose is the plat_file_close extern.
func (t *Table) FileClose(args []value.Value) (value.Value, error) {
	f, err := t.file(args[0].I)
	if err != nil {
		return value.Value{}, err
	}

	t.mux.Lock()
	delete(t.files, args[0].I)
	t.mux.Unlock()

	if err := f.Close(); err != nil {
		return value.ResultErr(err.Error()), nil
	}

	return value.ResultOk(value.Void), nil
}

// FileExists is the plat_file_exists extern.
func FileExists(args []value.Value) (value.Value, error) {
	_, err := os.Stat(args[0].S)
	return value.Bool(err == nil), nil
}

// FileRemove is the plat_file_remove extern.
func FileRemove(args []value.Value) (value.Value, error) {
	if err := os.Remove(args[0].S); err != nil {
		return value.ResultErr(err.Error()), nil
	}

	return value.ResultOk(value.Void), nil
}

// DirCreate is the plat_dir_create extern.
func DirCreate(args []value.Value) (value.Value, error) {
	if err := os.MkdirAll(args[0].S, 0o755); err != nil {
		return value.ResultErr(err.Error()), nil
	}

	return value.ResultOk(value.Void), nil
}

// DirList is the plat_dir_list extern.
func DirList(args []value.Value) (value.Value, error) {
	entries, err := os.ReadDir(args[0].S)
	if err != nil {
		return value.ResultErr(err.Error()), nil
	}

	names := make([]value.Value, len(entries))
	for i, e := range entries {
		names[i] = value.Str(e.Name())
	}

	return value.ResultOk(collection.FromSlice(names)), nil
}

// SymlinkCreate is the plat_symlink_create extern.
func SymlinkCreate(args []value.Value) (value.Value, error) {
	if err := os.Symlink(args[0].S, args[1].S); err != nil {
		return value.ResultErr(err.Error()), nil
	}

	return value.ResultOk(value.Void), nil
}

// EnvGet is the plat_env_get extern.
func EnvGet(args []value.Value) (value.Value, error) {
	v, ok := os.LookupEnv(args[0].S)
	if !ok {
		return value.ResultErr(fmt.Sprintf("environment variable %q is not set", args[0].S)), nil
	}

	return value.ResultOk(value.Str(v)), nil
}

// TimeNowUnixMillis is the plat_time_now_millis extern.
func TimeNowUnixMillis(args []value.Value) (value.Value, error) {
	return value.Int(time.Now().UnixMilli()), nil
}

// RandomInt is the plat_random_int extern: a uniform integer in [lo, hi).
func RandomInt(args []value.Value) (value.Value, error) {
	lo, hi := args[0].I, args[1].I
	if hi <= lo {
		return value.Value{}, fmt.Errorf("io: random_int requires hi > lo")
	}

	return value.Int(lo + rand.Int63n(hi-lo)), nil
}

// RandomFloat is the plat_random_float extern: a uniform float in [0, 1).
func RandomFloat(args []value.Value) (value.Value, error) {
	return value.Float(rand.Float64()), nil
}

// TCPListen is the plat_tcp_listen extern.
func (t *Table) TCPListen(args []value.Value) (value.Value, error) {
	ln, err := net.Listen("tcp", args[0].S)
	if err != nil {
		return value.ResultErr(err.Error()), nil
	}

	h := t.allocHandle()

	t.mux.Lock()
	t.listens[h] = ln
	t.mux.Unlock()

	return value.ResultOk(value.Int(h)), nil
}

// TCPAccept is the plat_tcp_accept extern; blocks until a connection
// arrives.
func (t *Table) TCPAccept(args []value.Value) (value.Value, error) {
	t.mux.Lock()
	ln, ok := t.listens[args[0].I]
	t.mux.Unlock()

	if !ok {
		return value.Value{}, fmt.Errorf("io: no listener for handle %d", args[0].I)
	}

	conn, err := ln.Accept()
	if err != nil {
		return value.ResultErr(err.Error()), nil
	}

	h := t.allocHandle()

	t.mux.Lock()
	t.conns[h] = conn
	t.mux.Unlock()

	return value.ResultOk(value.Int(h)), nil
}

// TCPDial is the plat_tcp_dial extern.
func (t *Table) TCPDial(args []value.Value) (value.Value, error) {
	conn, err := net.Dial("tcp", args[0].S)
	if err != nil {
		return value.ResultErr(err.Error()), nil
	}

	h := t.allocHandle()

	t.mux.Lock()
	t.conns[h] = conn
	t.mux.Unlock()

	return value.ResultOk(value.Int(h)), nil
}

func (t *Table) conn(h int64) (net.Conn, error) {
	t.mux.Lock()
	defer t.mux.Unlock()

	c, ok := t.conns[h]
	if !ok {
		return nil, fmt.Errorf("io: no open connection for handle %d", h)
	}

	return c, nil
}

// TCPSend is the plat_tcp_send extern.
func (t *Table) TCPSend(args []value.Value) (value.Value, error) {
	c, err := t.conn(args[0].I)
	if err != nil {
		return value.Value{}, err
	}

	if _, err := c.Write([]byte(args[1].S)); err != nil {
		return value.ResultErr(err.Error()), nil
	}

	return value.ResultOk(value.Void), nil
}

// TCPRecv is the plat_tcp_recv extern: reads up to args[1] bytes.
func (t *Table) TCPRecv(args []value.Value) (value.Value, error) {
	c, err := t.conn(args[0].I)
	if err != nil {
		return value.Value{}, err
	}

	buf := make([]byte, args[1].I)

	n, err := c.Read(buf)
	if err != nil {
		return value.ResultErr(err.Error()), nil
	}

	return value.ResultOk(value.Str(string(buf[:n]))), nil
}

// TCPClose is the plat_tcp_close extern.
func (t *Table) TCPClose(args []value.Value) (value.Value, error) {
	c, err := t.conn(args[0].I)
	if err != nil {
		return value.Value{}, err
	}

	t.mux.Lock()
	delete(t.conns, args[0].I)
	t.mux.Unlock()

	if err := c.Close(); err != nil {
		return value.ResultErr(err.Error()), nil
	}

	return value.ResultOk(value.Void), nil
}

// Print is the plat_io_print extern.
func Print(args []value.Value) (value.Value, error) {
	fmt.Println(args[0].String())
	return value.Void, nil
}
