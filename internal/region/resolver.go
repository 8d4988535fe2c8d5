package region

import (
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewResolver builds the configured resolver chain. The redis client may be
// nil, in which case caching is skipped.
func NewResolver(cfg *config.RegionConfig, table Table, redisClient *redis.Client, logger *zap.Logger) Resolver {
	if cfg.MockLookup {
		logger.Info("Region lookup disabled, using baseline region", zap.String("baseline", table.Baseline))
		return SkipResolver{}
	}

	var resolver Resolver
	switch cfg.LookupMode {
	case "http":
		if cfg.Endpoint == "" {
			logger.Warn("Region lookup endpoint not configured, falling back to static table")
			resolver = NewStaticResolver(table)
			break
		}
		resolver = NewHTTPResolver(cfg.Endpoint, cfg.Timeout(), cfg.MaxRetries, logger)
	default:
		resolver = NewStaticResolver(table)
	}

	if cfg.CacheEnabled && redisClient != nil {
		resolver = NewCachedResolver(resolver, NewRedisCache(redisClient), cfg.CacheTTLDuration(), logger)
	}

	logger.Info("Region resolver initialized",
		zap.String("mode", cfg.LookupMode),
		zap.Bool("cache", cfg.CacheEnabled && redisClient != nil),
	)
	return resolver
}

// NewRedisClient connects to Redis with the configured pool settings.
func NewRedisClient(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})
}
