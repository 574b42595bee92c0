// Package cache abstracts the key/value store backing the price cache.
// Entries carry a TTL and expire server-side; an expired or missing key is
// reported as ErrCacheMiss so callers can fall through to the live source.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache: key not found")

// Store is the minimal cache surface the price resolver needs. Implementations
// must be safe for concurrent use; values are written wholesale and never
// partially mutated.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error
}
