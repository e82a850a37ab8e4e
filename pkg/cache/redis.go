package cache

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache implements Cache on a Redis server, for API deployments where
// several instances share computed layouts.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// RedisOptions configures a RedisCache.
type RedisOptions struct {
	// URL is a redis:// or rediss:// connection URL.
	URL string
	// Prefix is prepended to every key.
	Prefix string
	// DialTimeout bounds each connection attempt. Defaults to 5s.
	DialTimeout time.Duration
	// Backoff retries the initial PING. Zero uses DefaultBackoff.
	Backoff Backoff
}

// NewRedisCache connects to Redis and verifies the connection with PING,
// retrying transient network failures with backoff.
func NewRedisCache(ctx context.Context, opts RedisOptions) (*RedisCache, error) {
	ropts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	ropts.DialTimeout = opts.DialTimeout
	if ropts.DialTimeout == 0 {
		ropts.DialTimeout = 5 * time.Second
	}

	backoff := opts.Backoff
	if backoff == (Backoff{}) {
		backoff = DefaultBackoff
	}

	c := NewRedisCacheFromClient(redis.NewClient(ropts), opts.Prefix)
	if err := backoff.Retry(ctx, func() error { return c.Ping(ctx) }); err != nil {
		c.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return c, nil
}

// NewRedisCacheFromClient wraps an existing client.
func NewRedisCacheFromClient(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

// Ping checks the connection. Network failures are retryable.
func (c *RedisCache) Ping(ctx context.Context) error {
	return classify(c.client.Ping(ctx).Err())
}

// Get retrieves a value from Redis.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, classify(err)
	}
	return data, true, nil
}

// Set stores a value in Redis. A zero ttl keeps the key without expiry.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return classify(c.client.Set(ctx, c.prefix+key, data, ttl).Err())
}

// Delete removes a key from Redis.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return classify(c.client.Del(ctx, c.prefix+key).Err())
}

// Close closes the connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// classify marks network-level failures as retryable ErrNetwork.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, redis.ErrClosed) {
		return Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	return err
}

// Ensure RedisCache implements Cache.
var _ Cache = (*RedisCache)(nil)
