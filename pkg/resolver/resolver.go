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

// Package resolver builds the inter-module dependency graph from each
// file's `mod`/`use` declarations, validates file-path/module-path
// agreement, orders modules for compilation, and caches lowered object
// code keyed by module path and source mtime, per spec.md §5.
package resolver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/plat-lang/platc/pkg/ast"
)

// PathMismatch reports that a file's `mod` declaration does not match the
// module path implied by its location on disk.
type PathMismatch struct {
	Declared string
	Expected string
	File     string
}

func (e *PathMismatch) Error() string {
	return fmt.Sprintf("%s: module declares path %q, but its location on disk implies %q", e.File, e.Declared, e.Expected)
}

// ModuleNotFound reports that a `use` declaration could not be resolved
// against any search root.
type ModuleNotFound struct {
	Path     string
	Searched []string
}

func (e *ModuleNotFound) Error() string {
	return fmt.Sprintf("module %q not found (searched: %s)", e.Path, strings.Join(e.Searched, ", "))
}

// DuplicateDefinition reports that the same top-level item is declared more
// than once within a module.
type DuplicateDefinition struct {
	Item      string
	Locations []string
}

func (e *DuplicateDefinition) Error() string {
	return fmt.Sprintf("%q is defined more than once: %s", e.Item, strings.Join(e.Locations, ", "))
}

// CircularDependency reports a cycle discovered while ordering modules for
// compilation.
type CircularDependency struct {
	Cycle []string
}

func (e *CircularDependency) Error() string {
	return fmt.Sprintf("circular module dependency: %s", strings.Join(e.Cycle, " -> "))
}

// Module is one parsed source file together with its resolved module path
// and the paths it `use`s.
type Module struct {
	Path string // e.g. "app::math"
	File string // path on disk
	Uses []string
	Prog *ast.Program
}

// PathToModule converts a `::`-joined module path to the relative file path
// the compiler expects it to live at: "app::math" -> "app/math.plat".
func PathToModule(path string) string {
	return strings.ReplaceAll(path, "::", "/") + ".plat"
}

// ModuleFromFilePath derives the module path a source file must declare,
// given its path relative to a compilation root: "app/math.plat" ->
// "app::math". Per spec.md §4.3, a "main" stem is dropped rather than
// appended, so "a/b/main.plat" derives "a::b" (and a root-level
// "main.plat" derives the empty path, the root module itself).
func ModuleFromFilePath(relPath string) string {
	trimmed := strings.TrimSuffix(relPath, ".plat")

	dir, stem := "", trimmed
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		dir, stem = trimmed[:idx], trimmed[idx+1:]
	}

	if stem == "main" {
		return strings.ReplaceAll(dir, "/", "::")
	}

	return strings.ReplaceAll(trimmed, "/", "::")
}

// CheckPath validates that a parsed file's declared `mod` path (if any)
// matches the path implied by its location relative to root, returning a
// *PathMismatch when they disagree.
func CheckPath(file string, relPath string, prog *ast.Program) error {
	expected := ModuleFromFilePath(relPath)

	if prog.Module == nil {
		return nil
	}

	declared := strings.Join(prog.Module.Path, "::")
	if declared != expected {
		return &PathMismatch{Declared: declared, Expected: expected, File: file}
	}

	return nil
}

// Graph is a dependency graph over module paths, built from each module's
// `use` declarations.
type Graph struct {
	modules map[string]*Module
	edges   map[string][]string
}

// NewGraph constructs an empty dependency graph.
func NewGraph() *Graph {
	return &Graph{modules: make(map[string]*Module), edges: make(map[string][]string)}
}

// Add registers a module and its dependency edges in the graph.
func (g *Graph) Add(m *Module) {
	g.modules[m.Path] = m
	g.edges[m.Path] = append([]string(nil), m.Uses...)
}

// Lookup returns the registered module for a path, or nil.
func (g *Graph) Lookup(path string) *Module {
	return g.modules[path]
}

// color marks a node's state during the three-color DFS used by Order.
type color int

const (
	white color = iota // unvisited
	gray               // on the current DFS stack
	black              // fully processed
)

// Order returns module paths in a valid topological compile order (every
// module appears after all modules it depends on), using recursive
// three-color depth-first search to both detect cycles and produce the
// ordering, per spec.md §5's "Dependency graph" invariant.
func (g *Graph) Order() ([]string, error) {
	var (
		colors = make(map[string]color, len(g.modules))
		order  = make([]string, 0, len(g.modules))
		stack  []string
	)

	names := make([]string, 0, len(g.modules))
	for name := range g.modules {
		names = append(names, name)
	}

	// Map iteration order is randomized per run; sort so two resolver runs
	// over the same file set always pick the same DFS roots and therefore
	// produce the same order for modules with no dependency relationship
	// (spec.md §8 testable property #4).
	sort.Strings(names)

	for _, start := range names {
		if colors[start] != white {
			continue
		}

		if err := g.visit(start, colors, &order, &stack); err != nil {
			return nil, err
		}
	}

	return order, nil
}

func (g *Graph) visit(name string, colors map[string]color, order *[]string, stack *[]string) error {
	colors[name] = gray
	*stack = append(*stack, name)

	for _, dep := range g.edges[name] {
		switch colors[dep] {
		case white:
			if err := g.visit(dep, colors, order, stack); err != nil {
				return err
			}
		case gray:
			cycle := append(append([]string(nil), (*stack)...), dep)
			return &CircularDependency{Cycle: cycle}
		case black:
			// already ordered
		}
	}

	colors[name] = black
	*stack = (*stack)[:len(*stack)-1]
	*order = append(*order, name)

	return nil
}
