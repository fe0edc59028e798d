// Package cache stores expiring copies of upstream API responses.
// Two backends share the Store interface: an in-process map (the default)
// and Redis (when REDIS_URL is configured, so replicas share one cache).
package cache

import (
	"context"
	"sync"
	"time"
)

// Store is a typed key/value cache with per-entry TTL.
// A miss is reported as ok=false with a nil error; errors are reserved for
// backend failures, which callers treat as misses.
type Store[T any] interface {
	Get(ctx context.Context, key string) (value T, ok bool, err error)
	Set(ctx context.Context, key string, value T, ttl time.Duration) error
}

type entry[T any] struct {
	value  T
	expiry time.Time
}

// Memory is an in-process Store guarded by a RWMutex.
// Expired entries are removed lazily on read and by Sweep.
type Memory[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
	clone   func(T) T
	now     func() time.Time
}

// NewMemory returns an empty Memory store. clone, when non-nil, copies values
// on the way in and out so callers cannot mutate cached slices.
func NewMemory[T any](clone func(T) T) *Memory[T] {
	return &Memory[T]{
		entries: make(map[string]entry[T]),
		clone:   clone,
		now:     time.Now,
	}
}

// Get returns the live value for key.
func (c *Memory[T]) Get(_ context.Context, key string) (T, bool, error) {
	var zero T

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return zero, false, nil
	}
	if !c.now().Before(e.expiry) {
		c.mu.Lock()
		// Re-check: a concurrent Set may have refreshed the entry.
		if cur, ok := c.entries[key]; ok && !c.now().Before(cur.expiry) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return zero, false, nil
	}
	return c.cloneValue(e.value), true, nil
}

// Set stores value for ttl. A non-positive ttl is a no-op.
func (c *Memory[T]) Set(_ context.Context, key string, value T, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	c.mu.Lock()
	c.entries[key] = entry[T]{value: c.cloneValue(value), expiry: c.now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

// Sweep drops every expired entry and returns how many were removed.
func (c *Memory[T]) Sweep() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, e := range c.entries {
		if !now.Before(e.expiry) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// Len is the number of stored entries, expired or not.
func (c *Memory[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Memory[T]) cloneValue(value T) T {
	if c.clone == nil {
		return value
	}
	return c.clone(value)
}

// SetClock replaces the time source. Tests use it to expire entries
// without sleeping.
func (c *Memory[T]) SetClock(now func() time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}
