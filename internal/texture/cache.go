package texture

import (
	"image"
	"path/filepath"
	"sync"
)

// Resolver resolves a texture path to a decoded RGBA image.
type Resolver interface {
	Resolve(path string) *image.NRGBA
}

// Cache is a concurrency-safe texture cache keyed by cleaned file path.
// A failed load is cached as nil so missing textures are only probed once.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
}

type cacheEntry struct {
	img *image.NRGBA
}

// NewCache creates an empty texture cache.
func NewCache() *Cache {
	return &Cache{items: make(map[string]*cacheEntry)}
}

// Resolve loads and caches a texture by path. Returns nil if the file is
// missing or undecodable.
func (c *Cache) Resolve(path string) *image.NRGBA {
	if path == "" {
		return nil
	}
	path = filepath.Clean(path)

	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.img
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	img, _ := Load(path)

	// Write lock with double-check
	c.mu.Lock()
	if entry, exists := c.items[path]; exists {
		c.mu.Unlock()
		return entry.img
	}
	c.items[path] = &cacheEntry{img: img}
	c.mu.Unlock()

	return img
}
