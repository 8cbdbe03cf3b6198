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

// Package runtime assembles pkg/runtime/{collection,gc,io,scheduler}'s
// extern entry points into the single table pkg/interp.Interp dispatches
// object.CallExtern against, mirroring how the teacher's cmd/assemble
// wires pkg/asm's instruction set to pkg/asm/insn's concrete ops.
package runtime

import (
	"github.com/plat-lang/platc/pkg/interp"
	"github.com/plat-lang/platc/pkg/runtime/collection"
	"github.com/plat-lang/platc/pkg/runtime/gc"
	"github.com/plat-lang/platc/pkg/runtime/io"
	"github.com/plat-lang/platc/pkg/runtime/scheduler"
	"github.com/plat-lang/platc/pkg/runtime/value"
)

// Runtime owns every stateful runtime resource (the GC tracker, the
// file/socket handle table, the task scheduler) an object.Module's
// externs are bound against.
type Runtime struct {
	Heap      *gc.Heap
	Files     *io.Table
	Scheduler *scheduler.Runtime
}

// New constructs a Runtime whose scheduler re-enters call (normally
// (*interp.Interp).Call) to run a spawned task's body.
func New(call scheduler.Invoke) *Runtime {
	return &Runtime{
		Heap:      gc.NewHeap(),
		Files:     io.NewTable(),
		Scheduler: scheduler.NewRuntime(call),
	}
}

// Externs builds the full plat_* extern table an interp.Interp dispatches
// against.
func (r *Runtime) Externs() map[string]interp.Extern {
	out := make(map[string]interp.Extern)

	for name, fn := range collectionExterns() {
		out[name] = fn
	}

	for name, fn := range ioExterns(r.Files) {
		out[name] = fn
	}

	for name, fn := range r.Heap.Externs() {
		out[name] = fn
	}

	for name, fn := range r.Scheduler.Externs() {
		out[name] = fn
	}

	out["plat_assert"] = assertExtern

	return out
}

// assertExtern is the plat_assert ABI entry: args[0] is the condition,
// an optional args[1] is the message shown on failure. A failing assert
// aborts the program (spec.md's error taxonomy lists it alongside
// division-by-zero and OOM), so it returns a *value.Trap rather than an
// ordinary error.
func assertExtern(args []value.Value) (value.Value, error) {
	if args[0].Truthy() {
		return value.Void, nil
	}

	msg := ""
	if len(args) > 1 {
		msg = args[1].String()
	}

	return value.Value{}, value.NewTrap(value.AssertFailed, msg)
}

func collectionExterns() map[string]interp.Extern {
	return map[string]interp.Extern{
		"plat_array_new":         collection.NewArray,
		"plat_array_append":      collection.Append,
		"plat_array_insert_at":   collection.InsertAt,
		"plat_array_remove_at":   collection.RemoveAt,
		"plat_array_clear":       collection.Clear,
		"plat_array_contains":    collection.Contains,
		"plat_array_index_of":    collection.IndexOf,
		"plat_array_count":       collection.Count,
		"plat_array_slice":       collection.Slice,
		"plat_array_concat":      collection.Concat,
		"plat_array_all_truthy":  collection.AllTruthy,
		"plat_array_any_truthy":  collection.AnyTruthy,
		"plat_array_to_string":   collection.ToString,
		"plat_dict_new":            collection.NewDict,
		"plat_dict_get":            collection.DictGet,
		"plat_dict_get_or_default": collection.DictGetOrDefault,
		"plat_dict_set":            collection.DictSet,
		"plat_dict_remove":         collection.DictRemove,
		"plat_dict_clear":          collection.DictClear,
		"plat_dict_keys":           collection.DictKeys,
		"plat_dict_values":         collection.DictValues,
		"plat_dict_contains_key":   collection.DictContainsKey,
		"plat_dict_contains_value": collection.DictContainsValue,
		"plat_dict_merge":          collection.DictMerge,
		"plat_dict_to_string":      collection.DictToString,
		"plat_set_new":          collection.NewSet,
		"plat_set_add":          collection.SetAdd,
		"plat_set_remove":       collection.SetRemove,
		"plat_set_contains":     collection.SetContains,
		"plat_set_clear":        collection.SetClear,
		"plat_set_union":        collection.SetUnion,
		"plat_set_intersection": collection.SetIntersection,
		"plat_set_difference":   collection.SetDifference,
		"plat_set_is_subset":    collection.SetIsSubset,
		"plat_set_is_superset":  collection.SetIsSuperset,
		"plat_set_is_disjoint":  collection.SetIsDisjoint,
		"plat_set_to_string":    collection.SetToString,
		"plat_string_length":           collection.StrLength,
		"plat_string_concat":           collection.StrConcat,
		"plat_string_contains":         collection.StrContains,
		"plat_string_starts_with":      collection.StrStartsWith,
		"plat_string_ends_with":        collection.StrEndsWith,
		"plat_string_trim":             collection.StrTrim,
		"plat_string_trim_start":       collection.StrTrimStart,
		"plat_string_trim_end":         collection.StrTrimEnd,
		"plat_string_replace":          collection.StrReplace,
		"plat_string_replace_all":      collection.StrReplaceAll,
		"plat_string_split":            collection.StrSplit,
		"plat_string_is_alpha":         collection.StrIsAlpha,
		"plat_string_is_numeric":       collection.StrIsNumeric,
		"plat_string_is_alphanumeric":  collection.StrIsAlphanumeric,
		"plat_string_parse_int":        collection.StrParseInt,
		"plat_string_parse_float":      collection.StrParseFloat,
		"plat_string_parse_bool":       collection.StrParseBool,
		"plat_string_pad_start":        collection.StrPadStart,
		"plat_string_pad_end":          collection.StrPadEnd,
		"plat_string_repeat":           collection.StrRepeat,
		"plat_string_to_upper":         collection.StrToUpper,
		"plat_string_to_lower":         collection.StrToLower,
		"plat_string_index_of":         collection.StrIndexOf,
		"plat_range_new":       collection.NewRange,
		"plat_collection_len":  collection.CollectionLen,
		"plat_collection_get":  collection.CollectionGet,
		"plat_collection_set":  collection.CollectionSet,
	}
}

func ioExterns(files *io.Table) map[string]interp.Extern {
	return map[string]interp.Extern{
		"plat_io_print":       io.Print,
		"plat_file_open":      files.FileOpen,
		"plat_file_read":      files.FileRead,
		"plat_file_write":     files.FileWrite,
		"plat_file_close":     files.FileClose,
		"plat_file_exists":    io.FileExists,
		"plat_file_remove":    io.FileRemove,
		"plat_dir_create":     io.DirCreate,
		"plat_dir_list":       io.DirList,
		"plat_symlink_create": io.SymlinkCreate,
		"plat_env_get":        io.EnvGet,
		"plat_time_now_millis": io.TimeNowUnixMillis,
		"plat_random_int":     io.RandomInt,
		"plat_random_float":   io.RandomFloat,
		"plat_tcp_listen":     files.TCPListen,
		"plat_tcp_accept":     files.TCPAccept,
		"plat_tcp_dial":       files.TCPDial,
		"plat_tcp_send":       files.TCPSend,
		"plat_tcp_recv":       files.TCPRecv,
		"plat_tcp_close":      files.TCPClose,
	}
}
