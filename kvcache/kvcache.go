// Package kvcache is the subject for the caching lessons: a byte cache
// with TTL semantics behind a small interface, a Redis implementation, an
// in-memory implementation with an injectable clock, and a typed JSON
// layer with cache-aside loading on top.
//
// The memory cache is not only a test double. Expiry logic is identical in
// both implementations, so the unit lessons drive TTL behavior through a
// fake clock while the Redis lessons, gated on TEST_REDIS_ADDR, verify the
// same contract against a real server.
package kvcache

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrCacheMiss is returned when a key is absent or has expired.
var ErrCacheMiss = errors.New("cache miss")

// Cache defines the interface for caching operations.
type Cache interface {
	// Get retrieves a value from the cache.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache. A non-positive ttl means the entry
	// never expires.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache.
	Delete(ctx context.Context, key string) error

	// Exists checks if a key exists in the cache.
	Exists(ctx context.Context, key string) (bool, error)

	// Ping checks if the cache is healthy.
	Ping(ctx context.Context) error

	// Close closes the cache connection.
	Close() error
}

// MemoryCache implements Cache with an in-process map.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	value []byte
	// expiresAt zero means the entry never expires.
	expiresAt time.Time
}

// NewMemoryCache creates an empty MemoryCache on the real clock.
func NewMemoryCache() *MemoryCache {
	return NewMemoryCacheWithClock(time.Now)
}

// NewMemoryCacheWithClock creates a MemoryCache that reads time from now,
// so tests control when entries expire.
func NewMemoryCacheWithClock(now func() time.Time) *MemoryCache {
	if now == nil {
		now = time.Now
	}
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     now,
	}
}

var _ Cache = (*MemoryCache)(nil)

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, ErrCacheMiss
	}
	if c.expired(entry) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, ErrCacheMiss
	}

	// The cache owns its bytes; callers get a copy they may mutate.
	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, nil
}

// Set stores a value in the cache.
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	entry := memoryEntry{value: make([]byte, len(value))}
	copy(entry.value, value)
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
	return nil
}

// Delete removes a value from the cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Exists checks if a key exists in the cache.
func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.expired(entry) {
		return false, nil
	}
	return true, nil
}

// Ping checks if the cache is healthy. A MemoryCache always is.
func (c *MemoryCache) Ping(ctx context.Context) error {
	return nil
}

// Close closes the cache.
func (c *MemoryCache) Close() error {
	return nil
}

// Len reports how many entries are stored, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *MemoryCache) expired(entry memoryEntry) bool {
	return !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt)
}
