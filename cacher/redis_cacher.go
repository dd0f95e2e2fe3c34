package cacher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cyberinferno/nanokit/concat"
	"github.com/redis/go-redis/v9"
)

const (
	lockTTL     = 30 * time.Second
	waitTimeout = 30 * time.Second
)

// Lua scripts only touch the lock if the caller still owns it.
const (
	releaseLockScript = `
		if redis.call("get", KEYS[1]) == ARGV[1] then
			return redis.call("del", KEYS[1])
		else
			return 0
		end
	`
	extendLockScript = `
		if redis.call("get", KEYS[1]) == ARGV[1] then
			return redis.call("pexpire", KEYS[1], ARGV[2])
		else
			return 0
		end
	`
)

// redisCacher is a Redis-backed Cacher. Values are stored as JSON. A SETNX
// lock on "<key>:lock" keeps concurrent processes from fetching the same
// missing key twice; losers poll until the winner publishes the value.
type redisCacher[T any] struct {
	client *redis.Client
}

// NewRedisCacher creates a Redis-based Cacher using client.
//
// Example:
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	baselines := NewRedisCacher[bench.Result](client)
func NewRedisCacher[T any](client *redis.Client) Cacher[T] {
	return &redisCacher[T]{client: client}
}

func lockKeyFor(key string) string {
	return concat.Concat2(key, ":lock")
}

func (c *redisCacher[T]) get(ctx context.Context, key string) (T, bool, error) {
	var result T

	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return result, false, nil
	}
	if err != nil {
		return result, false, fmt.Errorf("redis get error: %w", err)
	}

	if err := json.Unmarshal(val, &result); err != nil {
		return result, false, fmt.Errorf("failed to unmarshal cached value: %w", err)
	}

	return result, true, nil
}

// GetOrFetch implements Cacher. The lock is extended every lockTTL/3 while
// fetchFn runs, and released with an ownership check once the value is stored.
func (c *redisCacher[T]) GetOrFetch(ctx context.Context, key string, ttl time.Duration, fetchFn FetchFunc[T]) (T, error) {
	var zero T

	if val, ok, err := c.get(ctx, key); err != nil || ok {
		return val, err
	}

	lockKey := lockKeyFor(key)
	lockValue := strconv.FormatInt(time.Now().UnixNano(), 10)

	acquired, err := c.client.SetNX(ctx, lockKey, lockValue, lockTTL).Result()
	if err != nil {
		return zero, fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !acquired {
		return c.waitForCache(ctx, key, lockKey, waitTimeout)
	}

	bgCtx := context.Background()
	defer c.client.Eval(bgCtx, releaseLockScript, []string{lockKey}, lockValue)

	extendCtx, cancel := context.WithCancel(bgCtx)
	defer cancel()
	go c.extendLock(extendCtx, lockKey, lockValue, lockTTL)

	result, err := fetchFn(ctx)
	if err != nil {
		return zero, fmt.Errorf("fetch function failed: %w", err)
	}

	if err := c.Set(bgCtx, key, result, ttl); err != nil {
		return zero, err
	}

	return result, nil
}

func (c *redisCacher[T]) extendLock(ctx context.Context, lockKey, lockValue string, ttl time.Duration) {
	ticker := time.NewTicker(ttl / 3)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.client.Eval(ctx, extendLockScript, []string{lockKey}, lockValue, ttl.Milliseconds())
		}
	}
}

// waitForCache polls with exponential backoff (10ms doubling to 500ms) until
// the value shows up, the lock disappears, the timeout passes or ctx ends.
func (c *redisCacher[T]) waitForCache(ctx context.Context, key, lockKey string, timeout time.Duration) (T, error) {
	var zero T

	backoff := 10 * time.Millisecond
	maxBackoff := 500 * time.Millisecond
	deadline := time.Now().Add(timeout)

	for {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		if time.Now().After(deadline) {
			return zero, errors.New("timeout waiting for cache")
		}

		if val, ok, err := c.get(ctx, key); err != nil || ok {
			return val, err
		}

		exists, err := c.client.Exists(ctx, lockKey).Result()
		if err != nil {
			return zero, fmt.Errorf("failed to check lock existence: %w", err)
		}

		if exists == 0 {
			// Lock released between the two reads.
			if val, ok, err := c.get(ctx, key); err != nil || ok {
				return val, err
			}

			return zero, errors.New("fetch operation failed or cache not populated")
		}

		time.Sleep(backoff)
		backoff = min(backoff*2, maxBackoff)
	}
}

// Set implements Cacher.
func (c *redisCacher[T]) Set(ctx context.Context, key string, value T, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache value: %w", err)
	}

	return nil
}

// Delete implements Cacher.
func (c *redisCacher[T]) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete key: %w", err)
	}

	return nil
}

// DeleteByPrefix implements Cacher using SCAN, then one batched DEL.
func (c *redisCacher[T]) DeleteByPrefix(ctx context.Context, prefix string) (int, error) {
	var keys []string

	iter := c.client.Scan(ctx, 0, concat.Concat2(prefix, "*"), 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}

	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("failed to scan keys: %w", err)
	}

	if len(keys) == 0 {
		return 0, nil
	}

	deleted, err := c.client.Del(ctx, keys...).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to delete keys: %w", err)
	}

	return int(deleted), nil
}

// ItemCount implements Cacher. It reports the size of the whole database.
func (c *redisCacher[T]) ItemCount(ctx context.Context) (int, error) {
	count, err := c.client.DBSize(ctx).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get cache size: %w", err)
	}

	return int(count), nil
}
