// Package cache stores computed layouts and rendered artifacts.
//
// # Overview
//
// Rendering a graph is deterministic: the same graph, style and options
// always produce the same bytes. The pipeline therefore keys layouts by a
// hash of the graph plus the layout options, and artifacts by a hash of the
// layout plus the render options, and keeps both in a [Cache].
//
// # Backends
//
//   - [NullCache]: stores nothing; used with --no-cache and in tests.
//   - [FileCache]: one JSON file per entry under a directory; the CLI default.
//   - [RedisCache]: a shared cache for the HTTP server, enabled with
//     COLGRAPH_REDIS_URL. Transient network failures are retried with
//     [RetryWithBackoff].
//
// # Keys
//
// A [Keyer] builds keys. [DefaultKeyer] hashes the option structs with
// SHA-256; [ScopedKeyer] adds a namespace prefix.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiration. All implementations are
// safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Default expirations for cached entries.
const (
	LayoutTTL   = 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)
