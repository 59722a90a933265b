package graphics

import (
	"sync"

	"scenery/internal/logging"

	"go.uber.org/zap"
)

// TextureCache shares textures by path. A path that failed once is
// remembered and not retried.
type TextureCache struct {
	mu       sync.RWMutex
	textures map[string]*Texture
	failed   map[string]error
	load     func(path string) (*Texture, error)
}

func NewTextureCache() *TextureCache {
	return newTextureCache(LoadTexture)
}

func newTextureCache(load func(string) (*Texture, error)) *TextureCache {
	return &TextureCache{
		textures: make(map[string]*Texture),
		failed:   make(map[string]error),
		load:     load,
	}
}

// Get returns the cached texture for path, loading it on first use.
func (c *TextureCache) Get(path string) (*Texture, error) {
	c.mu.RLock()
	if tex, ok := c.textures[path]; ok {
		c.mu.RUnlock()
		return tex, nil
	}
	if err, ok := c.failed[path]; ok {
		c.mu.RUnlock()
		return nil, err
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double check locking
	if tex, ok := c.textures[path]; ok {
		return tex, nil
	}
	if err, ok := c.failed[path]; ok {
		return nil, err
	}

	tex, err := c.load(path)
	if err != nil {
		logging.L().Warn("texture not loaded", zap.String("path", path), zap.Error(err))
		c.failed[path] = err
		return nil, err
	}
	c.textures[path] = tex
	return tex, nil
}

// Len is the number of successfully loaded textures.
func (c *TextureCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.textures)
}

// Dispose deletes every cached texture and forgets failures.
func (c *TextureCache) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.textures {
		t.Dispose()
	}
	c.textures = make(map[string]*Texture)
	c.failed = make(map[string]error)
}
