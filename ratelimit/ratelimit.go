// Package ratelimit provides a token bucket rate limiter. It is the
// subject of the second deterministic-time lesson: the limiter takes its
// clock as a function value, so tests replay any timing scenario without
// sleeping.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Result contains the outcome of a rate limit check.
type Result struct {
	Allowed    bool          // Whether the request is allowed
	Remaining  int           // Tokens left after this check
	RetryAfter time.Duration // Time until the next token (if blocked)
	Limit      int           // The configured burst capacity
}

// Limiter defines the rate limiting interface.
type Limiter interface {
	// Allow checks whether a request from the given identifier may
	// proceed, consuming one token if so.
	Allow(ctx context.Context, identifier string) (*Result, error)

	// Reset clears the state for an identifier.
	Reset(ctx context.Context, identifier string) error
}

// Config holds token bucket configuration.
type Config struct {
	Capacity    int           // Burst size; buckets start full
	RefillEvery time.Duration // Time to mint one token
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		Capacity:    100,
		RefillEvery: time.Second,
	}
}

// TokenBucket is an in-memory token bucket limiter keyed by identifier.
// Buckets refill lazily on access, so there is no background goroutine.
type TokenBucket struct {
	config Config
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

// bucket tracks one identifier. lastRefill marks the mint time of the most
// recent token, so partial progress toward the next token is never lost.
type bucket struct {
	tokens     int
	lastRefill time.Time
}

var _ Limiter = (*TokenBucket)(nil)

// NewTokenBucket creates a limiter. A nil now falls back to time.Now, and
// non-positive config fields fall back to DefaultConfig.
func NewTokenBucket(cfg Config, now func() time.Time) *TokenBucket {
	def := DefaultConfig()
	if cfg.Capacity <= 0 {
		cfg.Capacity = def.Capacity
	}
	if cfg.RefillEvery <= 0 {
		cfg.RefillEvery = def.RefillEvery
	}
	if now == nil {
		now = time.Now
	}

	return &TokenBucket{
		config:  cfg,
		now:     now,
		buckets: make(map[string]*bucket),
	}
}

// Allow checks whether a request from the given identifier may proceed.
func (t *TokenBucket) Allow(ctx context.Context, identifier string) (*Result, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()

	b, ok := t.buckets[identifier]
	if !ok {
		b = &bucket{tokens: t.config.Capacity, lastRefill: now}
		t.buckets[identifier] = b
	}

	t.refill(b, now)

	if b.tokens == 0 {
		return &Result{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: b.lastRefill.Add(t.config.RefillEvery).Sub(now),
			Limit:      t.config.Capacity,
		}, nil
	}

	b.tokens--
	return &Result{
		Allowed:   true,
		Remaining: b.tokens,
		Limit:     t.config.Capacity,
	}, nil
}

// Reset clears the state for an identifier. The next request sees a full
// bucket.
func (t *TokenBucket) Reset(ctx context.Context, identifier string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.buckets, identifier)
	return nil
}

// refill mints the tokens earned since lastRefill, capped at capacity.
func (t *TokenBucket) refill(b *bucket, now time.Time) {
	elapsed := now.Sub(b.lastRefill)
	if elapsed < t.config.RefillEvery {
		return
	}

	minted := int(elapsed / t.config.RefillEvery)
	if b.tokens+minted >= t.config.Capacity {
		b.tokens = t.config.Capacity
		b.lastRefill = now
		return
	}

	b.tokens += minted
	// Advance by whole tokens only; the remainder keeps accruing.
	b.lastRefill = b.lastRefill.Add(time.Duration(minted) * t.config.RefillEvery)
}
