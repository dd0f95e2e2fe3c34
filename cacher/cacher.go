// Package cacher stores benchmark baselines behind a small generic cache
// interface, with in-memory and Redis implementations.
package cacher

import (
	"context"
	"time"
)

// FetchFunc produces the value to store when GetOrFetch misses.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Cacher caches values of type T by string key. Implementations are safe for
// concurrent use and run at most one FetchFunc at a time per missing key.
type Cacher[T any] interface {
	// GetOrFetch returns the cached value for key, or calls fetchFn, stores
	// its result with the given TTL and returns it.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout control
	//   - key: The cache key to retrieve or set
	//   - ttl: Time-to-live for a fetched value
	//   - fetchFn: Function to produce the value on a miss
	//
	// Returns:
	//   - The cached or fetched value
	//   - An error if retrieval or fetching fails
	GetOrFetch(ctx context.Context, key string, ttl time.Duration, fetchFn FetchFunc[T]) (T, error)

	// Set stores value under key, replacing any existing entry.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout control
	//   - key: The cache key
	//   - value: The value to store
	//   - ttl: Time-to-live for the entry
	//
	// Returns:
	//   - An error if the value could not be stored
	Set(ctx context.Context, key string, value T, ttl time.Duration) error

	// Delete removes a key from the cache.
	Delete(ctx context.Context, key string) error

	// DeleteByPrefix removes every key starting with prefix and reports how
	// many were removed.
	DeleteByPrefix(ctx context.Context, prefix string) (int, error)

	// ItemCount returns the number of items in the cache.
	ItemCount(ctx context.Context) (int, error)
}
