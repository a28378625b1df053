package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/devbush/likewrapped/internal/domain"
	"github.com/devbush/likewrapped/internal/ports"
)

// KeyPrefix namespaces every key this application writes to Redis.
const KeyPrefix = "likewrapped:"

// RedisOptions configures a Redis-backed cache.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// RedisCache stores snapshots in Redis and lets the server expire them.
type RedisCache struct {
	client redis.UniversalClient
}

// NewRedisCache connects to the Redis instance described by opts.
func NewRedisCache(opts RedisOptions) *RedisCache {
	return NewRedisCacheClient(redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}))
}

// NewRedisCacheClient wraps an existing client.
func NewRedisCacheClient(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

// Ping checks that the server is reachable.
func (c *RedisCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func redisKey(key string) string {
	return KeyPrefix + key
}

func (c *RedisCache) Get(ctx context.Context, key string) (*ports.CachedItem, error) {
	data, err := c.client.Get(ctx, redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	if time.Now().After(e.ExpiresAt) {
		return nil, domain.ErrCacheExpired
	}

	return &ports.CachedItem{
		Snapshot:  e.Snapshot,
		CreatedAt: e.CreatedAt,
		ExpiresAt: e.ExpiresAt,
	}, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, item *ports.CachedItem) error {
	ttl := time.Until(item.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(entry{
		Key:       key,
		Snapshot:  item.Snapshot,
		CreatedAt: item.CreatedAt,
		ExpiresAt: item.ExpiresAt,
	})
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, redisKey(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, redisKey(key)).Err()
}

// CleanExpired is a no-op: Redis evicts keys once their TTL elapses.
func (c *RedisCache) CleanExpired(ctx context.Context) (int, error) {
	return 0, nil
}

func (c *RedisCache) Clear(ctx context.Context) error {
	return c.scan(ctx, func(key string) error {
		return c.client.Del(ctx, key).Err()
	})
}

func (c *RedisCache) Stats(ctx context.Context) (int, int64, error) {
	count := 0
	var total int64
	err := c.scan(ctx, func(key string) error {
		n, err := c.client.StrLen(ctx, key).Result()
		if err != nil {
			return err
		}
		count++
		total += n
		return nil
	})
	return count, total, err
}

func (c *RedisCache) scan(ctx context.Context, fn func(key string) error) error {
	iter := c.client.Scan(ctx, 0, KeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := fn(iter.Val()); err != nil {
			return err
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	return nil
}

var _ ports.CacheStore = (*RedisCache)(nil)
