// Package cache provides key/value caching for computed layouts.
//
// Layout is deterministic for a given graph and option set, so its JSON
// output can be reused across CLI runs and API requests. The package offers
// three backends behind one [Cache] interface:
//
//   - [NullCache]: disables caching
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [RedisCache]: shared cache for multi-instance API deployments
//
// Keys come from a [Keyer]; [DefaultKeyer] hashes the graph and every option
// that changes the result, and [ScopedKeyer] adds a namespace prefix.
//
// Cache failures never fail a layout. Callers treat errors as misses.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values with an optional TTL.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default TTLs.
const (
	// TTLLayout is how long computed layouts stay cached.
	TTLLayout = 7 * 24 * time.Hour

	// TTLGrid is how long grid previews stay cached.
	TTLGrid = 30 * 24 * time.Hour
)
