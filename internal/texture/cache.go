package texture

import (
	"image"
	"log/slog"
	"path/filepath"
	"sync"
)

// Resolver resolves a texture path to a decoded image.
type Resolver interface {
	Resolve(path string) *image.NRGBA
}

// Cache is a concurrency-safe texture cache keyed by cleaned path. Relative
// paths are resolved against Root.
type Cache struct {
	Root  string
	FlipY bool

	mu    sync.RWMutex
	items map[string]*image.NRGBA
}

// NewCache creates an empty cache rooted at root.
func NewCache(root string, flipY bool) *Cache {
	return &Cache{
		Root:  root,
		FlipY: flipY,
		items: make(map[string]*image.NRGBA),
	}
}

// Resolve loads and caches a texture. A failed load is logged once and
// cached as nil so later lookups do not hit the disk again.
func (c *Cache) Resolve(path string) *image.NRGBA {
	if path == "" {
		return nil
	}
	if !filepath.IsAbs(path) && c.Root != "" {
		path = filepath.Join(c.Root, path)
	}
	path = filepath.Clean(path)

	c.mu.RLock()
	img, ok := c.items[path]
	c.mu.RUnlock()
	if ok {
		return img
	}

	img, err := Load(path, c.FlipY)
	if err != nil {
		slog.Warn("texture failed to load", "path", path, "err", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.items[path]; ok {
		return existing
	}
	c.items[path] = img
	return img
}

// Len returns the number of cached entries, failed loads included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
