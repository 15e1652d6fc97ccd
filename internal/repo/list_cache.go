package repo

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"cutconnect/internal/core/cache"
)

// ListCache memoizes list queries in Redis. Keys embed the collection's
// write generation, so an insert makes every earlier entry unreachable.
type ListCache struct {
	c   *cache.Cache
	ttl time.Duration
	log *zap.Logger
}

func NewListCache(c *cache.Cache, ttl time.Duration, l *zap.Logger) *ListCache {
	if c == nil {
		return nil
	}
	return &ListCache{c: c, ttl: ttl, log: l}
}

func (lc *ListCache) invalidate(ctx context.Context, collection string) {
	if lc == nil {
		return
	}
	if err := lc.c.Bump(ctx, collection); err != nil {
		lc.log.Warn("cache invalidate failed", zap.String("collection", collection), zap.Error(err))
	}
}

func cachedList[T any](ctx context.Context, lc *ListCache, collection, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	if lc == nil {
		return load(ctx)
	}
	gen, err := lc.c.Generation(ctx, collection)
	if err != nil {
		lc.log.Warn("cache unavailable, reading store", zap.String("collection", collection), zap.Error(err))
		return load(ctx)
	}
	full := fmt.Sprintf("%s:%d:%s", collection, gen, key)
	out, err := cache.GetOrLoadJSON(lc.c, ctx, full, lc.ttl, load)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
