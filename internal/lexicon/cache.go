// internal/lexicon/cache.go
//
// TTL cache in front of any Source.
//
// Characteristics:
//   - Entries are keyed by the exact query parameters (operation, word, kind, max).
//   - Staleness window is the configured TTL, measured with an injected clock.
//   - Only successful lookups are stored; errors pass straight through.
//   - Concurrency-safe: RWMutex guards the map, singleflight collapses identical
//     in-flight queries so concurrent validations share one round trip.
//   - A shared fetch is detached from the caller that started it; a caller whose
//     context ends stops waiting, the others still get the result.

package lexicon

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes Source responses for a fixed time-to-live.
type Cache struct {
	src Source
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry
	group   singleflight.Group
}

type cacheEntry struct {
	value   any
	expires time.Time
}

type verifyResult struct {
	v  Verified
	ok bool
}

// NewCache wraps src. A nil now uses time.Now.
func NewCache(src Source, ttl time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{
		src:     src,
		ttl:     ttl,
		now:     now,
		entries: make(map[string]cacheEntry),
	}
}

// VerifyWord implements Source.
func (c *Cache) VerifyWord(ctx context.Context, word string) (Verified, bool, error) {
	v, err := c.lookup(ctx, "verify|"+word, func(ctx context.Context) (any, error) {
		res, ok, err := c.src.VerifyWord(ctx, word)
		return verifyResult{v: res, ok: ok}, err
	})
	if err != nil {
		return Verified{}, false, err
	}
	r := v.(verifyResult)
	return r.v, r.ok, nil
}

// QueryRelated implements Source.
func (c *Cache) QueryRelated(ctx context.Context, word string, kind RelationKind, max int) ([]Related, error) {
	key := "rel|" + string(kind) + "|" + strconv.Itoa(max) + "|" + word
	v, err := c.lookup(ctx, key, func(ctx context.Context) (any, error) {
		return c.src.QueryRelated(ctx, word, kind, max)
	})
	if err != nil {
		return nil, err
	}
	return v.([]Related), nil
}

// Len reports the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Purge drops expired entries and returns how many were removed.
func (c *Cache) Purge() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

func (c *Cache) lookup(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && c.now().Before(e.expires) {
		return e.value, nil
	}

	// the source's own timeout bounds the detached fetch
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		v, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = cacheEntry{value: v, expires: c.now().Add(c.ttl)}
		c.mu.Unlock()
		return v, nil
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
