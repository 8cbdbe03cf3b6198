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
package codegen

import (
	"fmt"

	"github.com/plat-lang/platc/pkg/ast"
	"github.com/plat-lang/platc/pkg/object"
	"github.com/plat-lang/platc/pkg/sema"
)

// Job is one type-checked module ready to lower.
type Job struct {
	Path string
	Mod  *sema.Module
	Prog *ast.Program
}

// BuildAll lowers every job across a bounded pool of worker goroutines and
// merges the results into a single object.Module, following the same
// wave-dispatch-then-collect shape as the teacher's
// pkg/ir/builder/parallel.go (ParallelTraceExpansion): workers do the
// CPU-bound lowering lock-free, and only the merge into the shared
// object.Module's Functions/Classes/Enums maps is serialized, by running
// entirely on the goroutine draining the results channel. Lowering one
// module never reads another module's sema.Module or object.Module — by
// the time BuildAll runs, every module's symbol table has already been
// resolved against the whole program — so the only shared state between
// workers is the bounded semaphore limiting how many run at once.
//
// order fixes the merge order (and therefore which module's definition
// wins a same-name collision), matching the sequential behavior this
// replaces; it does not constrain which order jobs execute in.
func BuildAll(root string, order []string, jobs map[string]Job, workers int) (*object.Module, error) {
	if workers < 1 {
		workers = 1
	}

	type result struct {
		path    string
		lowered *object.Module
		err     error
	}

	sem := make(chan struct{}, workers)
	results := make(chan result, len(order))

	for _, path := range order {
		job := jobs[path]

		sem <- struct{}{}

		go func(job Job) {
			defer func() { <-sem }()

			lowered, err := Lower(job.Mod, job.Prog)
			results <- result{path: job.Path, lowered: lowered, err: err}
		}(job)
	}

	byPath := make(map[string]result, len(order))
	for range order {
		r := <-results
		byPath[r.path] = r
	}

	merged := object.NewModule(root)

	for _, path := range order {
		r := byPath[path]
		if r.err != nil {
			return nil, fmt.Errorf("lowering %s: %w", path, r.err)
		}

		for name, fn := range r.lowered.Functions {
			merged.Functions[name] = fn
		}

		for name, cls := range r.lowered.Classes {
			merged.Classes[name] = cls
		}

		for name, en := range r.lowered.Enums {
			merged.Enums[name] = en
		}
	}

	return merged, nil
}
