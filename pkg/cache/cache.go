// Package cache stores the intermediate and final products of a toldot
// render pass: loaded datasets, computed layouts and rendered artifacts.
//
// Every backend implements [Cache]. Keys come from a [Keyer] so that the
// pipeline, the CLI and the HTTP server agree on what identifies an entry:
//
//	c := cache.NewMemoryCache(cache.TTLLayout, time.Minute)
//	k := cache.NewDefaultKeyer()
//	key := k.LayoutKey(datasetHash, cache.LayoutKeyOpts{PxPerYear: 2})
//
// Backends:
//
//   - [NullCache]: never stores anything (--no-cache)
//   - [FileCache]: JSON entry files under ~/.cache/toldot
//   - [MemoryCache]: in-process map with expiry, used by the server
//   - [RedisCache]: shared cache for several server replicas
//   - [LayeredCache]: a fast front cache backed by a slower one
//
// Use [Open] to build a backend from a configuration string.
package cache

import (
	"context"
	"time"
)

// Default time-to-live per stage. Datasets change upstream, layouts and
// artifacts are pure functions of their keys.
const (
	TTLDataset  = 1 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry. A miss is reported as
// (nil, false, nil); errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by backends that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}
