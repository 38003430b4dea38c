// Package cache provides a small byte cache used for auxiliary render
// assets, chiefly the downloaded fallback font. Entries are opaque byte
// blobs with an optional TTL.
//
// The cache is strictly an optimization: every caller must behave correctly
// on a miss, and concurrent writers racing to populate the same key are
// acceptable because recomputing an entry is idempotent.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte blobs by key.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was present
	// and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
