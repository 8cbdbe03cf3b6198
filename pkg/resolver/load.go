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
package resolver

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/plat-lang/platc/pkg/parser"
	"github.com/plat-lang/platc/pkg/source"
)

// StdlibRoot returns the filesystem root of the Plat standard library, read
// from the PLAT_STDLIB environment variable. An empty string means no
// stdlib root is configured; `use`s of stdlib modules will fail to
// resolve.
func StdlibRoot() string {
	return os.Getenv("PLAT_STDLIB")
}

// Load walks root for ".plat" files, parses each one, validates its
// declared module path against its location, and assembles a dependency
// Graph. Search roots (the project root and, if set, PLAT_STDLIB) are
// recorded so an unresolved `use` can report where it looked.
func Load(root string) (*Graph, error) {
	searchRoots := []string{root}
	if std := StdlibRoot(); std != "" {
		searchRoots = append(searchRoots, std)
	}

	graph := NewGraph()

	for _, searchRoot := range searchRoots {
		if err := loadRoot(searchRoot, graph); err != nil {
			return nil, err
		}
	}

	if err := checkUses(graph, searchRoots); err != nil {
		return nil, err
	}

	return graph, nil
}

func loadRoot(root string, graph *Graph) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || !strings.HasSuffix(path, ".plat") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		text, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		file := source.NewFile(path, text)

		prog, diagErr := parser.Parse(file)
		if diagErr != nil {
			return diagErr
		}

		if pathErr := CheckPath(path, rel, prog); pathErr != nil {
			return pathErr
		}

		modPath := ModuleFromFilePath(rel)

		var uses []string
		for _, u := range prog.Uses {
			uses = append(uses, strings.Join(u.Path, "::"))
		}

		graph.Add(&Module{Path: modPath, File: path, Uses: uses, Prog: prog})

		return nil
	})
}

// checkUses confirms every `use`d module path resolved against some loaded
// module, returning a *ModuleNotFound naming the roots that were searched.
func checkUses(graph *Graph, searchRoots []string) error {
	for _, m := range graph.modules {
		for _, use := range m.Uses {
			if graph.Lookup(use) == nil {
				return &ModuleNotFound{Path: use, Searched: searchRoots}
			}
		}
	}

	return nil
}
