package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/mireles/vecino/core"
)

// InMemoryCache implements an in-memory query cache with staleness
// tracking, per-key fetch de-duplication, and subscriber notification.
type InMemoryCache struct {
	entries map[string]*entry // key: QueryKey.ID()
	mu      sync.RWMutex
	group   singleflight.Group
	ttl     time.Duration
	maxSize int
	nextSub int
	genSeq  uint64 // monotonic generation source, never reused across entries

	// counters
	hits      int64
	misses    int64
	sets      int64
	refreshes int64
	evictions int64
}

type entry struct {
	key       core.QueryKey
	value     any
	hasValue  bool
	stale     bool
	gen       uint64 // advanced on every invalidation, drawn from genSeq
	fetchedAt time.Time
	lastErr   error
	fetch     core.FetchFunc // most recent fetcher, used for background refresh
	subs      map[int]func()
}

// NewInMemoryCache creates a new in-memory query cache
func NewInMemoryCache(c core.CacheConfig) *InMemoryCache {
	if c.TTL == 0 {
		c.TTL = 30 * time.Second
	}
	if c.MaxSize == 0 {
		c.MaxSize = 256
	}

	return &InMemoryCache{
		entries: make(map[string]*entry),
		ttl:     c.TTL,
		maxSize: c.MaxSize,
	}
}

// Read returns the cached value for key when fresh, otherwise fetches
// through fn. Concurrent reads of the same key before the first resolves
// share a single fetch. A failed fetch keeps the last good value and
// returns it alongside the error.
func (c *InMemoryCache) Read(ctx context.Context, key core.QueryKey, fn core.FetchFunc) (any, error) {
	id := key.ID()

	c.mu.Lock()
	e := c.ensure(id, key)
	e.fetch = fn
	if e.hasValue && !e.stale && time.Since(e.fetchedAt) <= c.ttl {
		value := e.value
		c.mu.Unlock()
		atomic.AddInt64(&c.hits, 1)
		return value, nil
	}
	c.mu.Unlock()

	atomic.AddInt64(&c.misses, 1)
	return c.fetch(ctx, id, fn)
}

// Peek returns the last-known value without triggering a fetch.
func (c *InMemoryCache) Peek(key core.QueryKey) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key.ID()]
	if !ok || !e.hasValue {
		return nil, false
	}
	return e.value, true
}

// Invalidate marks the entry for key stale. When the entry has live
// subscribers it is re-fetched in the background; the staleness mark
// itself is synchronous. Unknown keys are a no-op.
func (c *InMemoryCache) Invalidate(key core.QueryKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key.ID()]; ok {
		c.invalidateLocked(key.ID(), e)
	}
}

// InvalidateOp marks every entry of the given operation stale,
// regardless of parameters.
func (c *InMemoryCache) InvalidateOp(op string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, e := range c.entries {
		if e.key.Op == op {
			c.invalidateLocked(id, e)
		}
	}
}

// Subscribe registers fn to run after every refresh of key. The returned
// function removes the subscription; notifications never reach removed
// subscribers, even for fetches that resolve later.
func (c *InMemoryCache) Subscribe(key core.QueryKey, fn func()) func() {
	id := key.ID()

	c.mu.Lock()
	e := c.ensure(id, key)
	c.nextSub++
	subID := c.nextSub
	e.subs[subID] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if e, ok := c.entries[id]; ok {
			delete(e.subs, subID)
		}
	}
}

// Clear drops every cached entry and subscription. In-flight fetches
// are detached so late completions cannot repopulate the cache, and
// readers arriving after Clear start fresh fetches.
func (c *InMemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id := range c.entries {
		c.group.Forget(id)
	}
	c.genSeq++
	c.entries = make(map[string]*entry)
}

// Len returns the number of cached entries.
func (c *InMemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns cache statistics
func (c *InMemoryCache) Stats() core.CacheStats {
	return core.CacheStats{
		Hits:      atomic.LoadInt64(&c.hits),
		Misses:    atomic.LoadInt64(&c.misses),
		Sets:      atomic.LoadInt64(&c.sets),
		Refreshes: atomic.LoadInt64(&c.refreshes),
		Evictions: atomic.LoadInt64(&c.evictions),
		Size:      c.Len(),
		TTL:       c.ttl,
	}
}

// ensure returns the entry for id, creating it if needed. Caller holds mu.
func (c *InMemoryCache) ensure(id string, key core.QueryKey) *entry {
	e, ok := c.entries[id]
	if ok {
		return e
	}

	// Simple eviction if full. Subscribed entries stay.
	if len(c.entries) >= c.maxSize {
		for victim, ve := range c.entries {
			if len(ve.subs) > 0 {
				continue
			}
			delete(c.entries, victim)
			atomic.AddInt64(&c.evictions, 1)
			break
		}
	}

	// Seeding from genSeq keeps a recreated entry's generation ahead of
	// any fetch that started against a prior incarnation of the key.
	e = &entry{key: key, gen: c.genSeq, subs: make(map[int]func())}
	c.entries[id] = e
	return e
}

// fetch runs fn through the singleflight group and stores the result.
// The generation snapshot taken before the flight guards ordering: an
// invalidation while the fetch is in flight bumps the entry's
// generation, so the completing fetch is recognized as pre-mutation and
// its result is never stored over the invalidation.
func (c *InMemoryCache) fetch(ctx context.Context, id string, fn core.FetchFunc) (any, error) {
	c.mu.RLock()
	var startGen uint64
	if e, ok := c.entries[id]; ok {
		startGen = e.gen
	}
	c.mu.RUnlock()

	value, err, _ := c.group.Do(id, func() (any, error) {
		return fn(ctx)
	})

	c.mu.Lock()
	e, ok := c.entries[id]
	if !ok {
		// Entry was cleared while the fetch was in flight. Hand the
		// result back without caching it.
		c.mu.Unlock()
		return value, err
	}
	if e.gen != startGen {
		// Invalidated mid-flight. The result predates the mutation;
		// leave the entry stale for the next reader.
		c.mu.Unlock()
		return value, err
	}

	if err != nil {
		e.lastErr = err
		last := e.value
		c.mu.Unlock()
		return last, err
	}

	e.value = value
	e.hasValue = true
	e.stale = false
	e.lastErr = nil
	e.fetchedAt = time.Now()
	subs := snapshotSubs(e)
	c.mu.Unlock()

	atomic.AddInt64(&c.sets, 1)
	for _, notify := range subs {
		notify()
	}
	return value, nil
}

// invalidateLocked marks e stale and schedules a background refresh for
// subscribed entries. Caller holds mu.
func (c *InMemoryCache) invalidateLocked(id string, e *entry) {
	e.stale = true
	c.genSeq++
	e.gen = c.genSeq
	// Detach any in-flight fetch: readers arriving after this point must
	// not join a flight that started before the mutation.
	c.group.Forget(id)
	if len(e.subs) == 0 || e.fetch == nil {
		return
	}

	atomic.AddInt64(&c.refreshes, 1)
	fn := e.fetch
	go func() {
		// The mutation that triggered this refresh has already
		// completed; the refetch runs on its own deadline.
		_, _ = c.fetch(context.Background(), id, fn)
	}()
}

func snapshotSubs(e *entry) []func() {
	subs := make([]func(), 0, len(e.subs))
	for _, fn := range e.subs {
		subs = append(subs, fn)
	}
	return subs
}
