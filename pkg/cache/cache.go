// Package cache stores validation reports keyed by a hash of their input.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: a shared Redis instance, for the API server
//   - [NullCache]: never stores anything, for --no-cache and tests
//
// Keys come from a [Keyer], so callers never build key strings by hand and
// a [ScopedKeyer] can isolate tenants sharing one backend.
package cache

import (
	"context"
	"time"
)

// TTLReport is the default lifetime of a cached report.
const TTLReport = 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
