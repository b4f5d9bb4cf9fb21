package core

import (
	"context"
	"net/url"
)

// Ports define interfaces for external dependencies

// ============================================
// TRANSPORT PORT (HTTP)
// ============================================

// Transport performs JSON requests against the backend. Implementations
// attach the current credential to every request; callers never handle
// tokens or headers themselves. out may be nil when the response body is
// not needed.
type Transport interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, query url.Values, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

// ============================================
// CREDENTIAL PORT
// ============================================

// CredentialStore persists the session token between program runs.
// Load returns ErrNoCredential when nothing is stored.
type CredentialStore interface {
	Load() (string, error)
	Store(token string) error
	Clear() error
}

// ============================================
// CACHE PORT
// ============================================

// FetchFunc produces the value for a query key, usually by calling a
// domain API module.
type FetchFunc func(ctx context.Context) (any, error)

// QueryCache caches query results keyed by QueryKey and keeps subscribed
// readers consistent after invalidation.
//
// Read returns the cached value when fresh; otherwise it fetches through
// fn, de-duplicating concurrent fetches for the same key. A failed fetch
// retains the last good value and returns it alongside the error.
//
// Invalidate marks entries stale synchronously; entries with live
// subscribers are re-fetched in the background and subscribers notified.
type QueryCache interface {
	Read(ctx context.Context, key QueryKey, fn FetchFunc) (any, error)
	Peek(key QueryKey) (any, bool)
	Invalidate(key QueryKey)
	InvalidateOp(op string)
	Subscribe(key QueryKey, fn func()) (unsubscribe func())
	Clear()
}

// CacheWithStats extends QueryCache with statistics tracking
type CacheWithStats interface {
	QueryCache
	Stats() CacheStats
}
