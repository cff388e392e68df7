package kvcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Profile is the domain object the typed layer caches.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Plan      string    `json:"plan"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoadFunc fetches a profile from the source of truth on a cache miss.
type LoadFunc func(ctx context.Context, id string) (Profile, error)

// ProfileCache provides profile-specific caching on top of a byte Cache.
// It owns the key schema and the JSON encoding, so callers deal only in
// Profile values.
type ProfileCache struct {
	cache      Cache
	keyPrefix  string
	defaultTTL time.Duration
}

// NewProfileCache creates a profile cache. An empty keyPrefix defaults to
// "profile:" and a zero defaultTTL to one hour.
func NewProfileCache(cache Cache, keyPrefix string, defaultTTL time.Duration) *ProfileCache {
	if keyPrefix == "" {
		keyPrefix = "profile:"
	}
	if defaultTTL == 0 {
		defaultTTL = time.Hour
	}
	return &ProfileCache{
		cache:      cache,
		keyPrefix:  keyPrefix,
		defaultTTL: defaultTTL,
	}
}

// Get retrieves a profile from cache by ID.
func (c *ProfileCache) Get(ctx context.Context, id string) (Profile, error) {
	data, err := c.cache.Get(ctx, c.key(id))
	if err != nil {
		return Profile{}, err
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("unmarshaling cached profile: %w", err)
	}
	return p, nil
}

// Set stores a profile with the default TTL.
func (c *ProfileCache) Set(ctx context.Context, p Profile) error {
	return c.SetWithTTL(ctx, p, c.defaultTTL)
}

// SetWithTTL stores a profile with a specific TTL.
func (c *ProfileCache) SetWithTTL(ctx context.Context, p Profile, ttl time.Duration) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling profile: %w", err)
	}
	return c.cache.Set(ctx, c.key(p.ID), data, ttl)
}

// Delete removes a profile from cache.
func (c *ProfileCache) Delete(ctx context.Context, id string) error {
	return c.cache.Delete(ctx, c.key(id))
}

// GetOrLoad implements cache-aside: a hit returns the cached profile, a
// miss calls load and writes the result back. A failed write-back is not a
// failed read; the freshly loaded profile is returned either way.
func (c *ProfileCache) GetOrLoad(ctx context.Context, id string, load LoadFunc) (Profile, error) {
	p, err := c.Get(ctx, id)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		return Profile{}, err
	}

	p, err = load(ctx, id)
	if err != nil {
		return Profile{}, fmt.Errorf("loading profile %s: %w", id, err)
	}

	_ = c.Set(ctx, p)
	return p, nil
}

func (c *ProfileCache) key(id string) string {
	return c.keyPrefix + id
}
