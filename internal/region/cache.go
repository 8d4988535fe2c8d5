package region

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var ErrCacheMiss = errors.New("cache miss")

// Cache stores resolved region keys.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// RedisCache keeps region keys in Redis.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	return value, err
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// CachedResolver remembers successful resolutions of the wrapped resolver.
// Cache errors never fail a resolution.
type CachedResolver struct {
	next   Resolver
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedResolver(next Resolver, cache Cache, ttl time.Duration, logger *zap.Logger) *CachedResolver {
	return &CachedResolver{next: next, cache: cache, ttl: ttl, logger: logger}
}

func (r *CachedResolver) Resolve(ctx context.Context, zipCode string) (string, error) {
	zip, err := NormalizePostalCode(zipCode)
	if err != nil {
		return "", err
	}
	key := cacheKey(zip)

	cached, err := r.cache.Get(ctx, key)
	switch {
	case err == nil && cached != "":
		return cached, nil
	case err != nil && !errors.Is(err, ErrCacheMiss):
		r.logger.Warn("region cache read failed", zap.String("zip", zip), zap.Error(err))
	}

	region, err := r.next.Resolve(ctx, zip)
	if err != nil {
		return "", err
	}

	if err := r.cache.Set(ctx, key, region, r.ttl); err != nil {
		r.logger.Warn("region cache write failed", zap.String("zip", zip), zap.Error(err))
	}
	return region, nil
}

func cacheKey(zip string) string {
	return "region:zip:" + zip
}
