// Package cache stores computed arrangements and intersection results.
//
// Building an arrangement of many lines is quadratic in the number of lines,
// so the CLI and the HTTP server cache encoded results keyed by a hash of the
// scene that produced them.
//
// # Backends
//
//   - [NullCache] never stores anything.
//   - [FileCache] keeps one JSON file per entry under a directory (CLI).
//   - [RedisCache] keeps entries in Redis (server).
//
// # Keys
//
// Keys are produced by a [Keyer]. [DefaultKeyer] hashes the scene content and
// the build options; [ScopedKeyer] prefixes keys for namespace isolation.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
//
// Get reports a miss with ok == false and a nil error. A ttl of zero stores
// the entry without expiry. Implementations are safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Expiry of cached artifacts. Results are pure functions of their keys, so
// the TTLs only bound disk and memory use.
const (
	TTLArrangement   = 7 * 24 * time.Hour
	TTLIntersections = 7 * 24 * time.Hour
	TTLRender        = 24 * time.Hour
)
