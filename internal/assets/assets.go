// Package assets handles game asset loading and caching.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sync"
)

// ErrNotFound is returned when an asset does not exist.
var ErrNotFound = errors.New("asset not found")

// Manager handles asset loading from a data directory.
type Manager struct {
	fsys  fs.FS
	cache *Cache[string, []byte]
	mu    sync.RWMutex
}

// NewManager creates an asset manager rooted at dir.
func NewManager(dir string) *Manager {
	return NewManagerFS(os.DirFS(dir))
}

// NewManagerFS creates an asset manager over fsys.
func NewManagerFS(fsys fs.FS) *Manager {
	return &Manager{
		fsys:  fsys,
		cache: NewCache[string, []byte](),
	}
}

// Load loads a file. Paths are slash separated and relative to the root.
func (m *Manager) Load(name string) ([]byte, error) {
	name = path.Clean(name)
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	m.mu.RLock()
	fsys := m.fsys
	m.mu.RUnlock()
	if fsys == nil {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}

	data, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	m.cache.Set(name, data)
	return data, nil
}

// Open opens a file for streaming, bypassing the cache.
func (m *Manager) Open(name string) (fs.File, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.fsys == nil {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	f, err := m.fsys.Open(path.Clean(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return f, err
}

// Stats returns byte cache statistics.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Close releases the root and drops cached data.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fsys = nil
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache[K comparable, V any] struct {
	data map[K]V
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		data: make(map[K]V),
	}
}

// Get retrieves an item from cache.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return v, ok
}

// Set stores an item in cache.
func (c *Cache[K, V]) Set(key K, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = v
}

// Len returns the number of cached items.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Each calls fn for every cached item.
func (c *Cache[K, V]) Each(fn func(K, V)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for k, v := range c.data {
		fn(k, v)
	}
}

// Clear clears the cache.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[K]V)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache[K, V]) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
