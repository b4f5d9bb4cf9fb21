package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mireles/vecino/core"
)

func countingFetcher(value any) (core.FetchFunc, *int64) {
	var calls int64
	return func(ctx context.Context) (any, error) {
		atomic.AddInt64(&calls, 1)
		return value, nil
	}, &calls
}

func TestReadShouldFetchOnceAndServeFromCache(t *testing.T) {
	c := NewInMemoryCache(core.CacheConfig{TTL: 5 * time.Minute, MaxSize: 100})
	key := core.Key(core.OpIdeasList)
	fetch, calls := countingFetcher([]core.Idea{{ID: 1, Title: "shed"}})

	first, err := c.Read(context.Background(), key, fetch)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	second, err := c.Read(context.Background(), key, fetch)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if atomic.LoadInt64(calls) != 1 {
		t.Errorf("Expected 1 fetch, got %d", atomic.LoadInt64(calls))
	}
	if len(first.([]core.Idea)) != 1 || len(second.([]core.Idea)) != 1 {
		t.Error("Expected both reads to return the cached slice")
	}
}

func TestConcurrentReadsShouldShareOneFetch(t *testing.T) {
	c := NewInMemoryCache(core.CacheConfig{TTL: 5 * time.Minute, MaxSize: 100})
	key := core.Key(core.OpIdeasList)

	var calls int64
	release := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		atomic.AddInt64(&calls, 1)
		<-release
		return "ideas", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Read(context.Background(), key, fetch); err != nil {
				t.Errorf("Read failed: %v", err)
			}
		}()
	}

	// Give both readers time to reach the singleflight gate.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := atomic.LoadInt64(&calls); got != 1 {
		t.Errorf("Expected exactly 1 fetch for concurrent reads, got %d", got)
	}
}

func TestReadAfterTTLShouldRefetch(t *testing.T) {
	c := NewInMemoryCache(core.CacheConfig{TTL: 50 * time.Millisecond, MaxSize: 100})
	key := core.Key(core.OpAlertsList)
	fetch, calls := countingFetcher("alerts")

	c.Read(context.Background(), key, fetch)
	time.Sleep(80 * time.Millisecond)
	c.Read(context.Background(), key, fetch)

	if got := atomic.LoadInt64(calls); got != 2 {
		t.Errorf("Expected refetch after TTL, got %d fetches", got)
	}
}

func TestInvalidateShouldForceRefetchOnNextRead(t *testing.T) {
	c := NewInMemoryCache(core.CacheConfig{TTL: 5 * time.Minute, MaxSize: 100})
	key := core.Key(core.OpIdeasList)

	var calls int64
	fetch := func(ctx context.Context) (any, error) {
		n := atomic.AddInt64(&calls, 1)
		if n == 1 {
			return []string{"old"}, nil
		}
		return []string{"old", "new"}, nil
	}

	c.Read(context.Background(), key, fetch)
	c.Invalidate(key)

	value, err := c.Read(context.Background(), key, fetch)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(value.([]string)) != 2 {
		t.Error("Read after invalidation returned pre-mutation data")
	}
}

func TestInvalidateOpShouldCoverAllParamVariants(t *testing.T) {
	c := NewInMemoryCache(core.CacheConfig{TTL: 5 * time.Minute, MaxSize: 100})
	full := core.Key(core.OpIdeasList)
	limited := core.Key(core.OpIdeasList, "limit", "5")

	fullFetch, fullCalls := countingFetcher("full")
	limitedFetch, limitedCalls := countingFetcher("limited")

	c.Read(context.Background(), full, fullFetch)
	c.Read(context.Background(), limited, limitedFetch)

	c.InvalidateOp(core.OpIdeasList)

	c.Read(context.Background(), full, fullFetch)
	c.Read(context.Background(), limited, limitedFetch)

	if atomic.LoadInt64(fullCalls) != 2 || atomic.LoadInt64(limitedCalls) != 2 {
		t.Errorf("Expected both variants refetched, got %d and %d",
			atomic.LoadInt64(fullCalls), atomic.LoadInt64(limitedCalls))
	}
}

func TestReadAfterInvalidateShouldNotJoinPreMutationFetch(t *testing.T) {
	c := NewInMemoryCache(core.CacheConfig{TTL: 5 * time.Minute, MaxSize: 100})
	key := core.Key(core.OpIdeasList)

	inFlight := make(chan struct{})
	release := make(chan struct{})
	slowDone := make(chan struct{})
	go func() {
		defer close(slowDone)
		c.Read(context.Background(), key, func(ctx context.Context) (any, error) {
			close(inFlight)
			<-release
			return "pre-mutation", nil
		})
	}()
	<-inFlight

	// The mutation completes and invalidates while the old fetch is
	// still in flight.
	c.Invalidate(key)

	value, err := c.Read(context.Background(), key, func(ctx context.Context) (any, error) {
		return "post-mutation", nil
	})
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if value != "post-mutation" {
		t.Fatalf("Read after invalidation returned %q", value)
	}

	// The old fetch completing late must not clobber the fresh value.
	close(release)
	<-slowDone
	if peeked, ok := c.Peek(key); !ok || peeked != "post-mutation" {
		t.Errorf("Late pre-mutation fetch overwrote the cache: %v", peeked)
	}
}

func TestClearShouldDetachInFlightFetch(t *testing.T) {
	c := NewInMemoryCache(core.CacheConfig{TTL: 5 * time.Minute, MaxSize: 100})
	key := core.Key(core.OpUsersMe)

	inFlight := make(chan struct{})
	release := make(chan struct{})
	slowDone := make(chan struct{})
	go func() {
		defer close(slowDone)
		c.Read(context.Background(), key, func(ctx context.Context) (any, error) {
			close(inFlight)
			<-release
			return "previous identity", nil
		})
	}()
	<-inFlight

	c.Clear()

	value, err := c.Read(context.Background(), key, func(ctx context.Context) (any, error) {
		return "current identity", nil
	})
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if value != "current identity" {
		t.Fatalf("Read after Clear returned %q", value)
	}

	close(release)
	<-slowDone
	if peeked, ok := c.Peek(key); !ok || peeked != "current identity" {
		t.Errorf("Late fetch from before Clear overwrote the cache: %v", peeked)
	}
}

func TestInvalidateUnknownKeyShouldBeNoOp(t *testing.T) {
	c := NewInMemoryCache(core.CacheConfig{TTL: 5 * time.Minute, MaxSize: 100})

	// Nothing cached, nobody subscribed. Must not panic or fetch.
	c.Invalidate(core.Key(core.OpUsersList))
	c.InvalidateOp(core.OpUsersList)

	if c.Len() != 0 {
		t.Errorf("Expected empty cache, got %d entries", c.Len())
	}
}

func TestInvalidateShouldRefetchForSubscribers(t *testing.T) {
	c := NewInMemoryCache(core.CacheConfig{TTL: 5 * time.Minute, MaxSize: 100})
	key := core.Key(core.OpExpensesSplits)
	fetch, calls := countingFetcher("splits")

	notified := make(chan struct{}, 4)
	unsub := c.Subscribe(key, func() { notified <- struct{}{} })
	defer unsub()

	c.Read(context.Background(), key, fetch)
	<-notified // initial fetch notification

	c.Invalidate(key)

	select {
	case <-notified:
	case <-time.After(time.Second):
		t.Fatal("Subscriber was not notified after invalidation")
	}
	if got := atomic.LoadInt64(calls); got != 2 {
		t.Errorf("Expected background refetch, got %d fetches", got)
	}
}

func TestUnsubscribedViewShouldNotBeNotified(t *testing.T) {
	c := NewInMemoryCache(core.CacheConfig{TTL: 5 * time.Minute, MaxSize: 100})
	key := core.Key(core.OpAlertsActive)
	fetch, _ := countingFetcher("alerts")

	var fired int64
	unsub := c.Subscribe(key, func() { atomic.AddInt64(&fired, 1) })
	unsub()

	c.Read(context.Background(), key, fetch)
	c.Invalidate(key)
	time.Sleep(50 * time.Millisecond)

	if atomic.LoadInt64(&fired) != 0 {
		t.Error("Unsubscribed callback was invoked")
	}
}

func TestFailedFetchShouldRetainLastGoodValue(t *testing.T) {
	c := NewInMemoryCache(core.CacheConfig{TTL: 5 * time.Minute, MaxSize: 100})
	key := core.Key(core.OpMarketList)

	var calls int64
	fetch := func(ctx context.Context) (any, error) {
		if atomic.AddInt64(&calls, 1) == 1 {
			return "good", nil
		}
		return nil, errors.New("backend down")
	}

	c.Read(context.Background(), key, fetch)
	c.Invalidate(key)

	value, err := c.Read(context.Background(), key, fetch)
	if err == nil {
		t.Fatal("Expected fetch error to surface")
	}
	if value != "good" {
		t.Errorf("Expected last good value retained, got %v", value)
	}

	peeked, ok := c.Peek(key)
	if !ok || peeked != "good" {
		t.Error("Peek should still see the last good value")
	}
}

func TestEvictionShouldSkipSubscribedEntries(t *testing.T) {
	c := NewInMemoryCache(core.CacheConfig{TTL: 5 * time.Minute, MaxSize: 2})

	pinned := core.Key(core.OpUsersMe)
	unsub := c.Subscribe(pinned, func() {})
	defer unsub()

	fetch, _ := countingFetcher("v")
	c.Read(context.Background(), pinned, fetch)
	c.Read(context.Background(), core.Key(core.OpIdeasList), fetch)
	c.Read(context.Background(), core.Key(core.OpAlertsList), fetch)

	if _, ok := c.Peek(pinned); !ok {
		t.Error("Subscribed entry was evicted")
	}
}

func TestStatsShouldCountHitsAndMisses(t *testing.T) {
	c := NewInMemoryCache(core.CacheConfig{TTL: 5 * time.Minute, MaxSize: 100})
	key := core.Key(core.OpIdeasList)
	fetch, _ := countingFetcher("v")

	c.Read(context.Background(), key, fetch)
	c.Read(context.Background(), key, fetch)

	stats := c.Stats()
	if stats.Misses != 1 || stats.Hits != 1 {
		t.Errorf("Expected 1 miss and 1 hit, got %d and %d", stats.Misses, stats.Hits)
	}
	if stats.Size != 1 {
		t.Errorf("Expected size 1, got %d", stats.Size)
	}
}
