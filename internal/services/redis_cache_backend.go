package services

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/accademia-digitale/classroom-gateway/internal/domain"
)

// RedisCacheBackend implements CacheBackend on Redis, for deployments with
// more than one gateway instance sharing the response cache.
type RedisCacheBackend struct {
	client *redis.Client
	prefix string
}

// NewRedisCacheBackend connects a Redis-backed cache. The prefix namespaces
// the gateway's keys on a shared server.
func NewRedisCacheBackend(addr, password string, db int, prefix string) *RedisCacheBackend {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisCacheBackend{client: client, prefix: prefix}
}

// Set stores a value with a TTL.
func (r *RedisCacheBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, r.prefix+key, value, ttl).Err()
}

// Get retrieves a value; an absent key is a cache miss.
func (r *RedisCacheBackend) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.NewNotFoundError("CACHE_MISS", "cache miss")
		}
		return nil, err
	}
	return data, nil
}

// Delete removes a key.
func (r *RedisCacheBackend) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}

// Ping checks connectivity to the Redis server.
func (r *RedisCacheBackend) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (r *RedisCacheBackend) Close() error {
	return r.client.Close()
}
