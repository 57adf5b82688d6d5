package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// TokenBucket is an in-process Limiter with one token bucket per key.
// The bucket refills one token every window/requests and holds at most requests tokens.
// A bucket idle for a whole window is full again, so it is dropped on the next sweep.
type TokenBucket struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	every     rate.Limit
	requests  int
	window    time.Duration
	now       func() time.Time
	lastSweep time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastUsed time.Time
}

// TokenBucketOption configures a TokenBucket.
type TokenBucketOption func(*TokenBucket)

// WithNow sets the time source, tests use it to move through windows without sleeping.
func WithNow(now func() time.Time) TokenBucketOption {
	return func(b *TokenBucket) {
		b.now = now
	}
}

// NewTokenBucket creates a TokenBucket admitting requests per window for each key.
func NewTokenBucket(requests int, window time.Duration, opts ...TokenBucketOption) (*TokenBucket, error) {
	if requests <= 0 || window <= 0 {
		return nil, ErrInvalidQuota
	}

	b := &TokenBucket{
		buckets:  make(map[string]*bucket),
		every:    rate.Every(window / time.Duration(requests)),
		requests: requests,
		window:   window,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b, nil
}

// Allow takes one token from the bucket of key.
func (b *TokenBucket) Allow(_ context.Context, key string) error {
	key = normalizeKey(key)
	now := b.now()

	if !b.bucketFor(key, now).AllowN(now, 1) {
		return throttled(key, b.requests, b.window)
	}

	return nil
}

// Tracked returns the number of keys that currently hold a bucket.
func (b *TokenBucket) Tracked() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.buckets)
}

func (b *TokenBucket) bucketFor(key string, now time.Time) *rate.Limiter {
	b.mu.Lock()
	defer b.mu.Unlock()

	if now.Sub(b.lastSweep) >= b.window {
		b.sweep(now)
	}

	entry, ok := b.buckets[key]
	if !ok {
		entry = &bucket{limiter: rate.NewLimiter(b.every, b.requests)}
		b.buckets[key] = entry
	}

	entry.lastUsed = now

	return entry.limiter
}

// sweep expects b.mu to be held.
func (b *TokenBucket) sweep(now time.Time) {
	for key, entry := range b.buckets {
		if now.Sub(entry.lastUsed) >= b.window {
			delete(b.buckets, key)
		}
	}

	b.lastSweep = now
}
