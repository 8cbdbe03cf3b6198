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
package io

import (
	"path/filepath"
	"testing"

	"github.com/plat-lang/platc/pkg/runtime/collection"
	"github.com/plat-lang/platc/pkg/runtime/value"
)

func resultOf(t *testing.T) func(v value.Value, err error) *value.Enum {
	return func(v value.Value, err error) *value.Enum {
		t.Helper()

		if err != nil {
			t.Fatalf("unexpected host error: %v", err)
		}

		e, ok := v.Ref.(*value.Enum)
		if !ok {
			t.Fatalf("expected a Result enum, got %v", v)
		}

		return e
	}
}

func TestFileWriteReadClose(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greeting.txt")

	tbl := NewTable()

	opened := resultOf(t)(tbl.FileOpen([]value.Value{value.Str(path), value.Str("w")}))
	if opened.Variant != "Ok" {
		t.Fatalf("FileOpen(w) = %v", opened)
	}

	handle := opened.Fields[0]

	wrote := resultOf(t)(tbl.FileWrite([]value.Value{handle, value.Str("hello")}))
	if wrote.Variant != "Ok" {
		t.Fatalf("FileWrite = %v", wrote)
	}

	if _, err := tbl.FileClose([]value.Value{handle}); err != nil {
		t.Fatalf("FileClose: %v", err)
	}

	reopened := resultOf(t)(tbl.FileOpen([]value.Value{value.Str(path), value.Str("r")}))
	readHandle := reopened.Fields[0]

	read := resultOf(t)(tbl.FileRead([]value.Value{readHandle}))
	if read.Variant != "Ok" || read.Fields[0].S != "hello" {
		t.Fatalf("FileRead = %v, want Ok(hello)", read)
	}
}

func TestFileOpenUnknownMode(t *testing.T) {
	tbl := NewTable()

	res := resultOf(t)(tbl.FileOpen([]value.Value{value.Str("/tmp/whatever"), value.Str("x")}))
	if res.Variant != "Err" {
		t.Fatalf("FileOpen with bad mode = %v, want Err", res)
	}
}

func TestDirCreateAndList(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")

	created := resultOf(t)(DirCreate([]value.Value{value.Str(sub)}))
	if created.Variant != "Ok" {
		t.Fatalf("DirCreate = %v", created)
	}

	tbl := NewTable()
	tbl.FileOpen([]value.Value{value.Str(filepath.Join(sub, "a.txt")), value.Str("w")})

	listed := resultOf(t)(DirList([]value.Value{value.Str(sub)}))
	if listed.Variant != "Ok" {
		t.Fatalf("DirList = %v", listed)
	}

	n, err := collection.CollectionLen([]value.Value{listed.Fields[0]})
	if err != nil {
		t.Fatalf("len of listing: %v", err)
	}

	if n.I != 1 {
		t.Fatalf("listing length = %d, want 1", n.I)
	}
}

func TestFileExistsAndRemove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")

	tbl := NewTable()
	tbl.FileOpen([]value.Value{value.Str(path), value.Str("w")})

	exists, err := FileExists([]value.Value{value.Str(path)})
	if err != nil || !exists.Truthy() {
		t.Fatalf("FileExists = %v, %v, want true", exists, err)
	}

	removed := resultOf(t)(FileRemove([]value.Value{value.Str(path)}))
	if removed.Variant != "Ok" {
		t.Fatalf("FileRemove = %v", removed)
	}

	exists, _ = FileExists([]value.Value{value.Str(path)})
	if exists.Truthy() {
		t.Fatal("expected file to no longer exist after FileRemove")
	}
}
