package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Open builds a cache from a backend description:
//
//	""  or "none"      NullCache
//	"memory"           MemoryCache
//	"redis://..."      RedisCache fronted by a MemoryCache
//	"file:DIR" or DIR  FileCache
func Open(ctx context.Context, backend string) (Cache, error) {
	switch {
	case backend == "" || backend == "none":
		return NewNullCache(), nil
	case backend == "memory":
		return NewMemoryCache(TTLDataset, 10*time.Minute), nil
	case strings.HasPrefix(backend, "redis://"), strings.HasPrefix(backend, "rediss://"):
		rc, err := NewRedisCache(ctx, backend)
		if err != nil {
			return nil, err
		}
		return NewLayeredCache(NewMemoryCache(time.Minute, 5*time.Minute), rc, time.Minute), nil
	default:
		dir := strings.TrimPrefix(backend, "file:")
		fc, err := NewFileCache(dir)
		if err != nil {
			return nil, fmt.Errorf("open file cache: %w", err)
		}
		return fc, nil
	}
}
