// Package cache stores converted chart artifacts between runs.
//
// Rasterising through rsvg-convert is the slowest step of a render, and the
// same SVG always converts to the same bytes, so the CLI keeps PNG and PDF
// output keyed by a hash of the SVG and the conversion arguments.
//
// Two implementations are provided:
//   - [FileCache]: one JSON entry per key under a directory (CLI default)
//   - [NullCache]: never stores anything (--no-cache)
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// DefaultTTL bounds how long converted artifacts are kept.
const DefaultTTL = 7 * 24 * time.Hour

// GetOrCompute returns the cached value for key or computes, stores and
// returns it. Cache read and write failures degrade to recomputation; only
// errors from compute are returned.
func GetOrCompute(ctx context.Context, c Cache, key string, ttl time.Duration, compute func() ([]byte, error)) (data []byte, hit bool, err error) {
	if c == nil {
		c = NewNullCache()
	}
	if data, ok, err := c.Get(ctx, key); err == nil && ok {
		return data, true, nil
	}
	data, err = compute()
	if err != nil {
		return nil, false, err
	}
	_ = c.Set(ctx, key, data, ttl)
	return data, false, nil
}
