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
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Cache is a thread-safe, mtime-validated store of lowered object code
// keyed by module path, backed by a directory on disk. Concurrent access
// is protected by an RWMutex, following the teacher's SharedHeap pattern
// (pkg/util/collection/pool) of a read-locked fast path over a
// write-locked miss path.
type Cache struct {
	root string
	mux  sync.RWMutex
	hits map[string]time.Time // module path -> time of its last Put
}

// NewCache opens (creating if necessary) an object-file cache rooted at
// dir.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return &Cache{root: dir, hits: make(map[string]time.Time)}, nil
}

// objectPath returns the on-disk path for a module's cached object file:
// "app::math" -> "<root>/app-math.o".
func (c *Cache) objectPath(modulePath string) string {
	name := strings.ReplaceAll(modulePath, "::", "-")
	return filepath.Join(c.root, name+".o")
}

// IsCached reports whether a valid, up-to-date cached object exists for
// modulePath given the source file's current modification time. spec.md
// §4.3 requires the cached object's mtime to be strictly newer than the
// source's; an equal mtime (same-second writes, coarse filesystem
// timestamp resolution) is treated as stale so a just-edited source file
// is never mistaken for already having a fresh object.
func (c *Cache) IsCached(modulePath string, sourceModTime time.Time) bool {
	c.mux.RLock()
	defer c.mux.RUnlock()

	info, err := os.Stat(c.objectPath(modulePath))
	if err != nil {
		log.WithField("module", modulePath).Debug("object cache miss: no cached object")
		return false
	}

	if !info.ModTime().After(sourceModTime) {
		log.WithField("module", modulePath).Debug("object cache miss: cached object is stale")
		return false
	}

	log.WithField("module", modulePath).Debug("object cache hit")

	return true
}

// Get reads the cached object bytes for modulePath.
func (c *Cache) Get(modulePath string) ([]byte, error) {
	c.mux.RLock()
	defer c.mux.RUnlock()

	return os.ReadFile(c.objectPath(modulePath))
}

// Put writes object bytes for modulePath into the cache.
func (c *Cache) Put(modulePath string, object []byte) error {
	c.mux.Lock()
	defer c.mux.Unlock()

	c.hits[modulePath] = time.Now()

	log.WithField("module", modulePath).Debug("object cache put")

	return os.WriteFile(c.objectPath(modulePath), object, 0o644)
}

// Invalidate removes a single module's cached object, forcing the next
// build to recompile it.
func (c *Cache) Invalidate(modulePath string) error {
	c.mux.Lock()
	defer c.mux.Unlock()

	delete(c.hits, modulePath)

	err := os.Remove(c.objectPath(modulePath))
	if os.IsNotExist(err) {
		return nil
	}

	return err
}

// ClearAll removes every cached object under the cache root.
func (c *Cache) ClearAll() error {
	c.mux.Lock()
	defer c.mux.Unlock()

	entries, err := os.ReadDir(c.root)
	if err != nil {
		return err
	}

	c.hits = make(map[string]time.Time)

	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".o") {
			if err := os.Remove(filepath.Join(c.root, e.Name())); err != nil {
				return err
			}
		}
	}

	return nil
}
