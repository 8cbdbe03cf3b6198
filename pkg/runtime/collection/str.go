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
package collection

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/plat-lang/platc/pkg/runtime/value"
)

// StrLength is the plat_string_length extern, counting Unicode code
// points rather than bytes.
func StrLength(args []value.Value) (value.Value, error) {
	return value.Int(int64(utf8.RuneCountInString(args[0].S))), nil
}

// StrConcat is the plat_string_concat extern.
func StrConcat(args []value.Value) (value.Value, error) {
	return value.Str(args[0].S + args[1].S), nil
}

// StrContains is the plat_string_contains extern.
func StrContains(args []value.Value) (value.Value, error) {
	return value.Bool(strings.Contains(args[0].S, args[1].S)), nil
}

// StrStartsWith is the plat_string_starts_with extern.
func StrStartsWith(args []value.Value) (value.Value, error) {
	return value.Bool(strings.HasPrefix(args[0].S, args[1].S)), nil
}

// StrEndsWith is the plat_string_ends_with extern.
func StrEndsWith(args []value.Value) (value.Value, error) {
	return value.Bool(strings.HasSuffix(args[0].S, args[1].S)), nil
}

// StrTrim is the plat_string_trim extern.
func StrTrim(args []value.Value) (value.Value, error) { return value.Str(strings.TrimSpace(args[0].S)), nil }

// StrTrimStart is the plat_string_trim_start extern.
func StrTrimStart(args []value.Value) (value.Value, error) {
	return value.Str(strings.TrimLeft(args[0].S, " \t\n\r")), nil
}

// StrTrimEnd is the plat_string_trim_end extern.
func StrTrimEnd(args []value.Value) (value.Value, error) {
	return value.Str(strings.TrimRight(args[0].S, " \t\n\r")), nil
}

// StrReplace is the plat_string_replace extern: replaces the first match.
func StrReplace(args []value.Value) (value.Value, error) {
	return value.Str(strings.Replace(args[0].S, args[1].S, args[2].S, 1)), nil
}

// StrReplaceAll is the plat_string_replace_all extern.
func StrReplaceAll(args []value.Value) (value.Value, error) {
	return value.Str(strings.ReplaceAll(args[0].S, args[1].S, args[2].S)), nil
}

// StrSplit is the plat_string_split extern, returning a List[String].
func StrSplit(args []value.Value) (value.Value, error) {
	parts := strings.Split(args[0].S, args[1].S)

	items := make([]value.Value, len(parts))
	for i, p := range parts {
		items[i] = value.Str(p)
	}

	return value.MakeRef(&Array{items: items}), nil
}

// StrIsAlpha is the plat_string_is_alpha extern.
func StrIsAlpha(args []value.Value) (value.Value, error) {
	return value.Bool(allRunes(args[0].S, unicode.IsLetter)), nil
}

// StrIsNumeric is the plat_string_is_numeric extern.
func StrIsNumeric(args []value.Value) (value.Value, error) {
	return value.Bool(allRunes(args[0].S, unicode.IsDigit)), nil
}

// StrIsAlphanumeric is the plat_string_is_alphanumeric extern.
func StrIsAlphanumeric(args []value.Value) (value.Value, error) {
	return value.Bool(allRunes(args[0].S, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	})), nil
}

func allRunes(s string, pred func(rune) bool) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !pred(r) {
			return false
		}
	}

	return true
}

// StrParseInt is the plat_string_parse_int extern.
func StrParseInt(args []value.Value) (value.Value, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(args[0].S), 10, 64)
	if err != nil {
		return value.ResultErr("not an integer: " + args[0].S), nil
	}

	return value.ResultOk(value.Int(n)), nil
}

// StrParseFloat is the plat_string_parse_float extern.
func StrParseFloat(args []value.Value) (value.Value, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(args[0].S), 64)
	if err != nil {
		return value.ResultErr("not a float: " + args[0].S), nil
	}

	return value.ResultOk(value.Float(f)), nil
}

// StrParseBool is the plat_string_parse_bool extern.
func StrParseBool(args []value.Value) (value.Value, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(args[0].S))
	if err != nil {
		return value.ResultErr("not a bool: " + args[0].S), nil
	}

	return value.ResultOk(value.Bool(b)), nil
}

// StrPadStart is the plat_string_pad_start extern.
func StrPadStart(args []value.Value) (value.Value, error) {
	return value.Str(pad(args[0].S, int(args[1].I), args[2].S, true)), nil
}

// StrPadEnd is the plat_string_pad_end extern.
func StrPadEnd(args []value.Value) (value.Value, error) {
	return value.Str(pad(args[0].S, int(args[1].I), args[2].S, false)), nil
}

func pad(s string, width int, with string, start bool) string {
	if with == "" {
		with = " "
	}

	need := width - utf8.RuneCountInString(s)
	if need <= 0 {
		return s
	}

	var b strings.Builder
	for b.Len() < need*len(with) {
		b.WriteString(with)
	}

	padding := []rune(b.String())[:need]

	if start {
		return string(padding) + s
	}

	return s + string(padding)
}

// StrRepeat is the plat_string_repeat extern.
func StrRepeat(args []value.Value) (value.Value, error) {
	n := int(args[1].I)
	if n < 0 {
		n = 0
	}

	return value.Str(strings.Repeat(args[0].S, n)), nil
}

// StrToUpper is the plat_string_to_upper extern.
func StrToUpper(args []value.Value) (value.Value, error) { return value.Str(strings.ToUpper(args[0].S)), nil }

// StrToLower is the plat_string_to_lower extern.
func StrToLower(args []value.Value) (value.Value, error) { return value.Str(strings.ToLower(args[0].S)), nil }

// StrIndexOf is the plat_string_index_of extern; returns -1 when absent.
func StrIndexOf(args []value.Value) (value.Value, error) {
	return value.Int(int64(strings.Index(args[0].S, args[1].S))), nil
}
