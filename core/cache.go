package core

import "time"

// CacheConfig configures query cache behavior
type CacheConfig struct {
	// TTL is how long a cached value counts as fresh. Invalidation
	// marks values stale regardless of age.
	TTL time.Duration
	// MaxSize caps the number of cached entries. Entries with live
	// subscribers are never evicted.
	MaxSize int
}

// CacheStats are simple counters for cache behavior.
// These are intended for diagnostics and monitoring.
type CacheStats struct {
	Hits      int64         `json:"hits"`
	Misses    int64         `json:"misses"`
	Sets      int64         `json:"sets"`
	Refreshes int64         `json:"refreshes"`
	Evictions int64         `json:"evictions"`
	Size      int           `json:"size"`
	TTL       time.Duration `json:"ttl"`
}
