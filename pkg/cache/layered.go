package cache

import (
	"context"
	"errors"
	"time"
)

// LayeredCache checks a fast front cache before a slower back cache and
// promotes back hits to the front.
type LayeredCache struct {
	front    Cache
	back     Cache
	frontTTL time.Duration
}

// NewLayeredCache combines front and back. Promoted entries live frontTTL
// in the front cache.
func NewLayeredCache(front, back Cache, frontTTL time.Duration) *LayeredCache {
	return &LayeredCache{front: front, back: back, frontTTL: frontTTL}
}

func (c *LayeredCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if data, ok, err := c.front.Get(ctx, key); err == nil && ok {
		return data, true, nil
	}
	data, ok, err := c.back.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	_ = c.front.Set(ctx, key, data, c.frontTTL)
	return data, true, nil
}

func (c *LayeredCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	frontTTL := c.frontTTL
	if ttl > 0 && ttl < frontTTL {
		frontTTL = ttl
	}
	if err := c.front.Set(ctx, key, data, frontTTL); err != nil {
		return err
	}
	return c.back.Set(ctx, key, data, ttl)
}

func (c *LayeredCache) Delete(ctx context.Context, key string) error {
	return errors.Join(c.front.Delete(ctx, key), c.back.Delete(ctx, key))
}

// Clear clears both layers that support it and reports the back layer count.
func (c *LayeredCache) Clear(ctx context.Context) (int, error) {
	var errs []error
	if cl, ok := c.front.(Clearer); ok {
		if _, err := cl.Clear(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	n := 0
	if cl, ok := c.back.(Clearer); ok {
		var err error
		if n, err = cl.Clear(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return n, errors.Join(errs...)
}

func (c *LayeredCache) Close() error {
	return errors.Join(c.front.Close(), c.back.Close())
}

var (
	_ Cache   = (*LayeredCache)(nil)
	_ Clearer = (*LayeredCache)(nil)
)
