// Package cache stores finished search results so that repeating a search
// over the same schedule and settings is instant.
//
// A result is addressed by the hash of the schedule file and the fingerprint
// of the settings that shape the search (see [Keyer]). Three backends are
// provided:
//
//   - [FileCache]: JSON files under the user cache directory
//   - [RedisCache]: a shared Redis instance
//   - [NullCache]: stores nothing, used for --no-cache
//
// Wrap any backend with [Instrument] to report hits and misses through
// [observability.Cache].
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key. A miss is reported as ok=false with a
	// nil error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}
