package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type snapshotEntry[V any] struct {
	value    V
	loadedAt time.Time
}

// snapshotCache keeps whole collections that are small enough to load at once, such as the
// directories, FAQ and legal sections, and reloads them after ttl.
type snapshotCache[K comparable, V any] struct {
	ttl  time.Duration
	now  func() time.Time
	load func(ctx context.Context, key K) (V, error)

	mu      sync.RWMutex
	entries map[K]snapshotEntry[V]
	group   singleflight.Group
}

func newSnapshotCache[K comparable, V any](ttl time.Duration, load func(ctx context.Context, key K) (V, error)) *snapshotCache[K, V] {
	return &snapshotCache[K, V]{
		ttl:     ttl,
		now:     time.Now,
		load:    load,
		entries: make(map[K]snapshotEntry[V]),
	}
}

func (c *snapshotCache[K, V]) cached(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || (c.ttl > 0 && c.now().Sub(entry.loadedAt) >= c.ttl) {
		var zero V
		return zero, false
	}
	return entry.value, true
}

func (c *snapshotCache[K, V]) Get(ctx context.Context, key K) (V, error) {
	if value, ok := c.cached(key); ok {
		return value, nil
	}
	return c.Refresh(ctx, key)
}

// Refresh loads the key even when a fresh snapshot exists. Concurrent callers share a load.
func (c *snapshotCache[K, V]) Refresh(ctx context.Context, key K) (V, error) {
	result, err, _ := c.group.Do(fmt.Sprint(key), func() (any, error) {
		// Every waiter shares this load, so it must not die with the first caller's request.
		value, err := c.load(context.WithoutCancel(ctx), key)
		if err != nil {
			return value, err
		}
		c.mu.Lock()
		c.entries[key] = snapshotEntry[V]{value: value, loadedAt: c.now()}
		c.mu.Unlock()
		return value, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return result.(V), nil
}

func (c *snapshotCache[K, V]) Invalidate(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
