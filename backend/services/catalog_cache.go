package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"techguide/backend/progress"
)

const catalogCacheKey = "techguide:catalog:v1"

// RedisCatalogCache keeps the serialized catalog under a single key.
// Redis failures degrade to cache misses.
type RedisCatalogCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCatalogCache(rdb *redis.Client, ttl time.Duration) *RedisCatalogCache {
	return &RedisCatalogCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCatalogCache) Get(ctx context.Context) (progress.Catalog, bool) {
	var catalog progress.Catalog
	raw, err := c.rdb.Get(ctx, catalogCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("catalog cache read failed")
		}
		return catalog, false
	}
	if err := json.Unmarshal(raw, &catalog); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("catalog cache entry corrupt")
		return catalog, false
	}
	return catalog, true
}

func (c *RedisCatalogCache) Set(ctx context.Context, catalog progress.Catalog) {
	raw, err := json.Marshal(catalog)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("catalog cache encode failed")
		return
	}
	if err := c.rdb.Set(ctx, catalogCacheKey, raw, c.ttl).Err(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("catalog cache write failed")
	}
}

func (c *RedisCatalogCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, catalogCacheKey).Err(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("catalog cache invalidate failed")
	}
}

// NewRedisClient connects and pings; it returns an error rather than a
// half-usable client.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}
