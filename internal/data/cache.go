package data

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"sync"
	"time"
)

// CacheEntry is one rendered image kept in memory.
type CacheEntry struct {
	PNG       []byte
	ExpiresAt time.Time
}

// RenderCache keeps recently rendered PNGs keyed by their inputs.
// Rendering is deterministic, so identical requests can share one image.
type RenderCache struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
	ttl   time.Duration
	now   func() time.Time
}

var globalCache *RenderCache
var cacheOnce sync.Once

// GetCache returns the process-wide cache, or nil when RENDER_CACHE=off.
// RENDER_CACHE_TTL overrides the default one hour TTL.
func GetCache() *RenderCache {
	if os.Getenv("RENDER_CACHE") == "off" {
		return nil
	}

	cacheOnce.Do(func() {
		ttl := 1 * time.Hour
		if ttlStr := os.Getenv("RENDER_CACHE_TTL"); ttlStr != "" {
			if parsed, err := time.ParseDuration(ttlStr); err == nil {
				ttl = parsed
			}
		}
		globalCache = NewRenderCache(ttl)
		go globalCache.cleanup()
	})

	return globalCache
}

// NewRenderCache creates a cache without the background cleanup loop.
func NewRenderCache(ttl time.Duration) *RenderCache {
	return &RenderCache{
		store: make(map[string]*CacheEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get retrieves a cached image if available and not expired.
func (c *RenderCache) Get(key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[key]
	if !exists {
		return nil, false
	}
	if c.now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.PNG, true
}

func (c *RenderCache) Set(key string, png []byte) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &CacheEntry{
		PNG:       png,
		ExpiresAt: c.now().Add(c.ttl),
	}
}

func (c *RenderCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

func (c *RenderCache) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*CacheEntry)
}

func (c *RenderCache) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for key, entry := range c.store {
		if now.After(entry.ExpiresAt) {
			delete(c.store, key)
		}
	}
}

func (c *RenderCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.evictExpired()
	}
}

// GenerateCacheKey hashes any JSON-serializable request description.
func GenerateCacheKey(parts ...any) (string, error) {
	raw, err := json.Marshal(parts)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(raw)
	return hex.EncodeToString(hash[:]), nil
}
