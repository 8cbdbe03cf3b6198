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

// Package driver wires pkg/resolver, pkg/sema, and pkg/codegen into the
// single pipeline cmd/platc's build/run subcommands share: load the module
// graph, type-check every module in dependency order, then lower each into
// one combined object.Module an interp.Interp can execute. It is the
// in-process equivalent of the teacher's CompileSourceFiles helper
// (pkg/cmd/zkc/util.go), generalized from one field-typed IR to Plat's
// module graph.
package driver

import (
	"os"
	"runtime"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/plat-lang/platc/pkg/codegen"
	"github.com/plat-lang/platc/pkg/diag"
	"github.com/plat-lang/platc/pkg/object"
	"github.com/plat-lang/platc/pkg/resolver"
	"github.com/plat-lang/platc/pkg/sema"
)

// workerCount returns how many modules Compile lowers concurrently,
// read from PLAT_WORKERS if set and positive, defaulting to
// runtime.NumCPU() (one lowering goroutine per available core, since
// lowering is CPU-bound tree-walking with no I/O wait).
func workerCount() int {
	if n, err := strconv.Atoi(os.Getenv("PLAT_WORKERS")); err == nil && n > 0 {
		return n
	}

	return runtime.NumCPU()
}

// Compile loads every ".plat" file under root, type-checks each module, and
// (only if no diagnostic has error severity) lowers it into a single
// merged object.Module. Diagnostics from every module are returned
// together so a caller can report them all at once; a non-nil error means
// the module graph itself could not be built (I/O failure, path mismatch,
// circular `use`) or lowering failed, which is always fatal and reported
// separately from per-module diagnostics.
func Compile(root string) (*object.Module, []*diag.Diagnostic, error) {
	graph, err := resolver.Load(root)
	if err != nil {
		return nil, nil, err
	}

	order, err := graph.Order()
	if err != nil {
		return nil, nil, err
	}

	log.WithField("order", order).Debug("module compile order")

	var (
		diags   []*diag.Diagnostic
		checked = make(map[string]*sema.Module, len(order))
	)

	for _, path := range order {
		m := graph.Lookup(path)

		mod, buildErrs := sema.BuildModule(path, m.Prog)
		errs := sema.Check(mod, m.Prog, buildErrs)

		diags = append(diags, errs...)
		checked[path] = mod
	}

	diags = append(diags, sema.CheckEntryPoint(checked)...)

	if hasError(diags) {
		return nil, diags, nil
	}

	jobs := make(map[string]codegen.Job, len(order))
	for _, path := range order {
		m := graph.Lookup(path)
		jobs[path] = codegen.Job{Path: path, Mod: checked[path], Prog: m.Prog}
	}

	workers := workerCount()

	log.WithField("workers", workers).Debug("lowering modules")

	merged, err := codegen.BuildAll(root, order, jobs, workers)
	if err != nil {
		return nil, nil, err
	}

	return merged, diags, nil
}

func hasError(diags []*diag.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == diag.SeverityError {
			return true
		}
	}

	return false
}
