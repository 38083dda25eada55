package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ainaplanass/exam/config"
)

// RedisClient is the subset of go-redis client methods used by Redis.
type RedisClient interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Close() error
}

// Redis stores records as string keys under a prefix.
type Redis struct {
	client RedisClient
	prefix string
}

// OpenRedis connects to the server in cfg and verifies it with PING.
func OpenRedis(ctx context.Context, cfg config.StorageConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Address, err)
	}
	return NewRedisWithClient(client, cfg.Prefix), nil
}

// NewRedisWithClient creates a Redis store over an existing client.
func NewRedisWithClient(client RedisClient, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) Name() string { return "Redis" }

func (r *Redis) Save(ctx context.Context, key, record string) error {
	if err := r.client.Set(ctx, r.prefix+key, record, 0).Err(); err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}

func (r *Redis) Load(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load %q: %w", key, err)
	}
	return v, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
