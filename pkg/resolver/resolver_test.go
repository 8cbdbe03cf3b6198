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
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestPathToModuleAndBack(t *testing.T) {
	tests := []struct {
		modPath string
		relPath string
	}{
		{"app", "app.plat"},
		{"app::math", "app/math.plat"},
		{"app::util::strings", "app/util/strings.plat"},
	}

	for _, tt := range tests {
		if got := PathToModule(tt.modPath); got != tt.relPath {
			t.Errorf("PathToModule(%q) = %q, want %q", tt.modPath, got, tt.relPath)
		}

		if got := ModuleFromFilePath(tt.relPath); got != tt.modPath {
			t.Errorf("ModuleFromFilePath(%q) = %q, want %q", tt.relPath, got, tt.modPath)
		}
	}
}

func TestModuleFromFilePathDropsMainStem(t *testing.T) {
	tests := []struct {
		relPath string
		modPath string
	}{
		{"main.plat", ""},
		{"a/main.plat", "a"},
		{"a/b/main.plat", "a::b"},
	}

	for _, tt := range tests {
		if got := ModuleFromFilePath(tt.relPath); got != tt.modPath {
			t.Errorf("ModuleFromFilePath(%q) = %q, want %q", tt.relPath, got, tt.modPath)
		}
	}
}

func TestOrderSimpleChain(t *testing.T) {
	g := NewGraph()
	g.Add(&Module{Path: "a", Uses: []string{"b"}})
	g.Add(&Module{Path: "b", Uses: []string{"c"}})
	g.Add(&Module{Path: "c"})

	order, err := g.Order()
	if err != nil {
		t.Fatalf("Order() returned error: %v", err)
	}

	pos := make(map[string]int, len(order))
	for i, name := range order {
		pos[name] = i
	}

	if pos["c"] > pos["b"] || pos["b"] > pos["a"] {
		t.Errorf("Order() = %v, want c before b before a", order)
	}
}

func TestOrderDetectsCycle(t *testing.T) {
	g := NewGraph()
	g.Add(&Module{Path: "a", Uses: []string{"b"}})
	g.Add(&Module{Path: "b", Uses: []string{"a"}})

	_, err := g.Order()

	var cycleErr *CircularDependency
	if !errors.As(err, &cycleErr) {
		t.Fatalf("Order() error = %v, want *CircularDependency", err)
	}
}

func TestOrderDiamond(t *testing.T) {
	g := NewGraph()
	g.Add(&Module{Path: "top", Uses: []string{"left", "right"}})
	g.Add(&Module{Path: "left", Uses: []string{"bottom"}})
	g.Add(&Module{Path: "right", Uses: []string{"bottom"}})
	g.Add(&Module{Path: "bottom"})

	order, err := g.Order()
	if err != nil {
		t.Fatalf("Order() returned error: %v", err)
	}

	pos := make(map[string]int, len(order))
	for i, name := range order {
		pos[name] = i
	}

	if pos["bottom"] > pos["left"] || pos["bottom"] > pos["right"] || pos["left"] > pos["top"] || pos["right"] > pos["top"] {
		t.Errorf("Order() = %v, want bottom before left/right before top", order)
	}
}

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cache, err := NewCache(dir)
	if err != nil {
		t.Fatalf("NewCache() returned error: %v", err)
	}

	if cache.IsCached("app::math", time.Now()) {
		t.Error("IsCached() = true for an uncached module, want false")
	}

	if err := cache.Put("app::math", []byte("object bytes")); err != nil {
		t.Fatalf("Put() returned error: %v", err)
	}

	if !cache.IsCached("app::math", time.Now().Add(-time.Hour)) {
		t.Error("IsCached() = false right after Put(), want true")
	}

	got, err := cache.Get("app::math")
	if err != nil {
		t.Fatalf("Get() returned error: %v", err)
	}

	if string(got) != "object bytes" {
		t.Errorf("Get() = %q, want %q", got, "object bytes")
	}

	if err := cache.Invalidate("app::math"); err != nil {
		t.Fatalf("Invalidate() returned error: %v", err)
	}

	if cache.IsCached("app::math", time.Now()) {
		t.Error("IsCached() = true after Invalidate(), want false")
	}
}

func TestCacheInvalidatedByNewerSource(t *testing.T) {
	dir := t.TempDir()

	cache, err := NewCache(dir)
	if err != nil {
		t.Fatalf("NewCache() returned error: %v", err)
	}

	if err := cache.Put("app::math", []byte("stale")); err != nil {
		t.Fatalf("Put() returned error: %v", err)
	}

	future := time.Now().Add(time.Hour)
	if cache.IsCached("app::math", future) {
		t.Error("IsCached() = true for an object older than the source, want false")
	}
}

func TestCacheEqualMtimeIsNotCached(t *testing.T) {
	dir := t.TempDir()

	cache, err := NewCache(dir)
	if err != nil {
		t.Fatalf("NewCache() returned error: %v", err)
	}

	if err := cache.Put("app::math", []byte("object bytes")); err != nil {
		t.Fatalf("Put() returned error: %v", err)
	}

	same := time.Now()
	if err := os.Chtimes(cache.objectPath("app::math"), same, same); err != nil {
		t.Fatalf("Chtimes() returned error: %v", err)
	}

	if cache.IsCached("app::math", same) {
		t.Error("IsCached() = true for an object with the same mtime as its source, want false (must be strictly newer)")
	}
}

func TestCheckPathMismatch(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "math.plat"), []byte("mod wrong::name;\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() returned error: %v", err)
	}

	_, err := Load(dir)

	var mismatch *PathMismatch
	if !errors.As(err, &mismatch) {
		t.Fatalf("Load() error = %v, want *PathMismatch", err)
	}
}

func TestLoadResolvesUses(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "main.plat"), []byte("use missing::thing;\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() returned error: %v", err)
	}

	_, err := Load(dir)

	var notFound *ModuleNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("Load() error = %v, want *ModuleNotFound", err)
	}
}
