// Package cache provides byte-level caching for built diagram payloads and
// proxied images.
//
// Three backends implement the same interface:
//   - FileCache: directory-backed, for the CLI
//   - RedisCache: shared cache for multi-instance server deployments
//   - NullCache: disabled caching
//
// Keys are content-addressed: the dataset hash and the full build options
// participate in every diagram key, so a changed dataset or filter never
// serves a stale payload.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default TTLs per payload class.
const (
	// ElementsTTL bounds how long a built diagram payload is reused.
	ElementsTTL = time.Hour

	// ImageTTL bounds how long proxied image bytes are reused.
	ImageTTL = 24 * time.Hour
)
