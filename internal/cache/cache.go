package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/praxal/teasergen/internal/model"
)

// Cache stores raw bytes under opaque keys with per-entry TTL
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from a URL
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "teasergen:v1:" + hex.EncodeToString(hash[:])
}

// New builds a cache from config: memory-only when no directory is
// configured, memory backed by disk otherwise. Returns nil when caching
// is disabled; callers treat a nil cache as a permanent miss.
func New(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return nil
	}
	mem := NewMemoryCache(cfg.TTL, 10*time.Minute)
	if cfg.Dir == "" {
		return mem
	}
	return &tieredCache{memory: mem, disk: NewDiskCache(cfg.Dir, cfg.TTL)}
}

// tieredCache checks memory first and promotes disk hits
type tieredCache struct {
	memory Cache
	disk   Cache
}

func (c *tieredCache) Get(key string) ([]byte, bool) {
	if val, found := c.memory.Get(key); found {
		return val, true
	}
	if val, found := c.disk.Get(key); found {
		c.memory.Set(key, val, 0)
		return val, true
	}
	return nil, false
}

func (c *tieredCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return c.disk.Set(key, value, ttl)
}

func (c *tieredCache) Delete(key string) error {
	c.memory.Delete(key)
	return c.disk.Delete(key)
}

func (c *tieredCache) Clear() error {
	c.memory.Clear()
	return c.disk.Clear()
}
