package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	tcerrors "github.com/matzehuels/tablecast/pkg/errors"
)

// RedisCache stores entries in Redis. Expiry is delegated to Redis TTLs.
// Transient Redis failures are retried under [DefaultBackoff]; a miss
// (redis.Nil) is not a failure.
type RedisCache struct {
	client  redis.UniversalClient
	backoff Backoff
}

// NewRedisCache connects to the Redis instance at url
// (redis://[user:pass@]host:port/db or rediss:// for TLS).
// The connection is established lazily on first use.
func NewRedisCache(url string) (Cache, error) {
	if err := tcerrors.ValidateRedisURL(url); err != nil {
		return nil, err
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, tcerrors.Wrap(tcerrors.ErrCodeInvalidInput, err, "parse redis URL")
	}
	return NewRedisCacheFromClient(redis.NewClient(opts)), nil
}

// NewRedisCacheFromClient wraps an existing client. Close closes the client.
func NewRedisCacheFromClient(client redis.UniversalClient) Cache {
	return &RedisCache{client: client, backoff: DefaultBackoff}
}

// Get retrieves a value from the cache.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	var hit bool
	err := c.backoff.Do(ctx, func() error {
		b, err := c.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return Retryable(fmt.Errorf("%w: redis get: %v", ErrNetwork, err))
		}
		data, hit = b, true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return data, hit, nil
}

// Set stores a value in the cache.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.backoff.Do(ctx, func() error {
		if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
			return Retryable(fmt.Errorf("%w: redis set: %v", ErrNetwork, err))
		}
		return nil
	})
}

// Delete removes a value from the cache.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.backoff.Do(ctx, func() error {
		if err := c.client.Del(ctx, key).Err(); err != nil {
			return Retryable(fmt.Errorf("%w: redis del: %v", ErrNetwork, err))
		}
		return nil
	})
}

// Purge deletes every key matching the glob pattern match, such as
// [ArtifactMatch]("bot"), and returns how many were removed. Keys are
// walked with SCAN, so a cluster client only purges the node it talks to.
func (c *RedisCache) Purge(ctx context.Context, match string) (int, error) {
	var cursor uint64
	removed := 0
	for {
		var keys []string
		var next uint64
		err := c.backoff.Do(ctx, func() error {
			var err error
			keys, next, err = c.client.Scan(ctx, cursor, match, 500).Result()
			if err != nil {
				return Retryable(fmt.Errorf("%w: redis scan: %v", ErrNetwork, err))
			}
			return nil
		})
		if err != nil {
			return removed, err
		}

		if len(keys) > 0 {
			err = c.backoff.Do(ctx, func() error {
				n, err := c.client.Del(ctx, keys...).Result()
				if err != nil {
					return Retryable(fmt.Errorf("%w: redis del: %v", ErrNetwork, err))
				}
				removed += int(n)
				return nil
			})
			if err != nil {
				return removed, err
			}
		}

		if cursor = next; cursor == 0 {
			return removed, nil
		}
	}
}

// Close closes the Redis client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ensure RedisCache implements Cache.
var _ Cache = (*RedisCache)(nil)
