package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"group-planner/core/config"
	"group-planner/core/logger"
)

// RedisCache backs the Cache interface with a shared Redis instance
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis using the loaded configuration
func NewRedisCache(cfg config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("RedisCache:NewRedisCache:Ping:Error", "error", err, "addr", cfg.Addr)
		return nil, err
	}

	logger.Info("RedisCache:Connected", "addr", cfg.Addr, "db", cfg.DB)
	return &RedisCache{client: client}, nil
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// Client exposes the underlying connection for components that need it directly
func (r *RedisCache) Client() *redis.Client {
	return r.client
}
