// Package cache provides byte-oriented caches for derived data.
//
// phrasenet caches one thing: text extracted from uploaded documents, keyed
// by a hash of the file contents. Analysis graphs and token streams are
// never cached; every request is annotated and linked afresh.
//
// Backends:
//   - [FileCache]: files under a directory, for the CLI
//   - [RedisCache]: a Redis server, for API deployments with several replicas
//   - [NullCache]: stores nothing, for tests and --no-cache
//
// [Instrument] wraps any backend so hits, misses, and writes reach
// observability.Cache.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is the lifetime of extracted text entries.
const DefaultTTL = 7 * 24 * time.Hour

// Cache stores opaque values by key.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// ExtractKey returns the key for text extracted from a document with the
	// given content hash and MIME type.
	ExtractKey(contentHash, mimeType string) string
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ExtractKey implements [Keyer].
func (DefaultKeyer) ExtractKey(contentHash, mimeType string) string {
	return hashKey("extract", contentHash, mimeType)
}
