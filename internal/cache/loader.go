package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// loadTimeout bounds a shared load once it is detached from its callers.
const loadTimeout = 30 * time.Second

// Loader fronts a Cache: hits are served directly, concurrent misses for the
// same key share one load. Cache failures are logged and never fail a request.
type Loader struct {
	cache  Cache
	group  singleflight.Group
	logger *zap.Logger
}

func NewLoader(c Cache, log *zap.Logger) *Loader {
	if c == nil {
		c = NopCache{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{cache: c, logger: log}
}

func (l *Loader) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	data, err := l.cache.Get(ctx, key)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		l.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}

	// The shared load outlives any one caller; each caller stops waiting on
	// its own context.
	ch := l.group.DoChan(key, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()
		return l.load(loadCtx, key, ttl, load)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Refresh loads and stores key regardless of what is cached.
func (l *Loader) Refresh(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) error {
	_, err := l.load(ctx, key, ttl, load)
	return err
}

func (l *Loader) load(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	data, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if err := l.cache.Set(ctx, key, data, ttl); err != nil {
		l.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return data, nil
}

// Fetch is GetOrLoad for JSON-encodable values.
func Fetch[T any](ctx context.Context, l *Loader, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var out T

	data, err := l.GetOrLoad(ctx, key, ttl, encoded(load))
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		// a stale entry from an older layout; go to the source
		l.logger.Warn("cache entry undecodable", zap.String("key", key), zap.Error(err))
		return load(ctx)
	}
	return out, nil
}

// Warm is Refresh for JSON-encodable values.
func Warm[T any](ctx context.Context, l *Loader, key string, ttl time.Duration, load func(context.Context) (T, error)) error {
	return l.Refresh(ctx, key, ttl, encoded(load))
}

func encoded[T any](load func(context.Context) (T, error)) func(context.Context) ([]byte, error) {
	return func(ctx context.Context) ([]byte, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(v)
	}
}
