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
package sema

import (
	"testing"

	"github.com/plat-lang/platc/pkg/diag"
	"github.com/plat-lang/platc/pkg/parser"
	"github.com/plat-lang/platc/pkg/source"
)

func checkSource(t *testing.T, text string) []*diag.Diagnostic {
	t.Helper()

	file := source.NewFile("app.plat", []byte(text))

	prog, perr := parser.Parse(file)
	if perr != nil {
		t.Fatalf("parser.Parse() returned error: %v", perr)
	}

	return CheckProgram("app", prog)
}

func hasCode(errs []*diag.Diagnostic, code string) bool {
	for _, e := range errs {
		if e.Code == code {
			return true
		}
	}

	return false
}

func TestMissingMainIsError(t *testing.T) {
	errs := checkSource(t, "fn helper() { return; }\n")
	if !hasCode(errs, "E102") {
		t.Errorf("CheckProgram() = %v, want an E102 missing-main diagnostic", errs)
	}
}

func TestDuplicateFunctionIsError(t *testing.T) {
	errs := checkSource(t, "fn main() { return; }\nfn main() { return; }\n")
	if !hasCode(errs, "E100") {
		t.Errorf("CheckProgram() = %v, want an E100 duplicate-definition diagnostic", errs)
	}
}

func TestUndefinedNameIsError(t *testing.T) {
	errs := checkSource(t, "fn main() { let x: Int32 = y; return; }\n")
	if !hasCode(errs, "E109") {
		t.Errorf("CheckProgram() = %v, want an E109 undefined-name diagnostic", errs)
	}
}

func TestAssignToImmutableIsError(t *testing.T) {
	errs := checkSource(t, "fn main() { let x: Int32 = 1; x = 2; return; }\n")
	if !hasCode(errs, "E115") {
		t.Errorf("CheckProgram() = %v, want an E115 immutable-assignment diagnostic", errs)
	}
}

func TestWellFormedProgramHasNoErrors(t *testing.T) {
	errs := checkSource(t, "fn main() { var x: Int32 = 1; x = 2; print(value = x); return; }\n")
	if len(errs) != 0 {
		t.Errorf("CheckProgram() = %v, want no diagnostics", errs)
	}
}

func TestMatchWithoutCatchAllOrFullCoverageIsError(t *testing.T) {
	errs := checkSource(t, `
enum Option {
	Some(Int32),
	None,
}

fn main() {
	let o: Option = Option::Some(value = 1);
	let r: Int32 = match (o) {
		Option::Some(v: Int32) => v,
	};
	return;
}
`)
	if !hasCode(errs, "E124") {
		t.Errorf("CheckProgram() = %v, want an E124 non-exhaustive-match diagnostic", errs)
	}
}
