// Package cache stores upstream responses that change rarely (reciter and
// tafsir listings, daily prayer times).
package cache

import (
	"context"
	"errors"
	"time"
)

var ErrCacheMiss = errors.New("cache miss")

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

// NopCache never stores anything. Used when no Redis is configured.
type NopCache struct{}

func (NopCache) Get(context.Context, string) ([]byte, error) {
	return nil, ErrCacheMiss
}

func (NopCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}
