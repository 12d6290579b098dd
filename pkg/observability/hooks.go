// Package observability provides hooks for metrics and tracing.
//
// Library code reports events through package-level hook registries; the
// binaries decide what receives them. The default hooks do nothing.
//
// # Architecture
//
//   - Hook interfaces per event category ([ArrangementHooks], [CacheHooks],
//     [HTTPHooks])
//   - No-op default implementations
//   - Registration of custom implementations at startup
//
// [Counters] implements every hook interface by counting events in a
// lock-free map and is what `planar serve` exposes under /metrics.
//
// # Usage
//
//	counters := observability.NewCounters()
//	observability.SetArrangementHooks(counters)
//	observability.SetCacheHooks(counters)
//
// Libraries call hooks to emit events:
//
//	observability.Arrangement().OnBuildStart(ctx, len(lines))
//	// ... insert lines ...
//	observability.Arrangement().OnBuildComplete(ctx, faces, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Arrangement Hooks
// =============================================================================

// ArrangementHooks receives events from arrangement and sweep runs.
type ArrangementHooks interface {
	OnBuildStart(ctx context.Context, lines int)
	OnBuildComplete(ctx context.Context, faces int, duration time.Duration, err error)

	OnSweepStart(ctx context.Context, segments int)
	OnSweepComplete(ctx context.Context, intersections int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	// OnRequest records an incoming request. route is the router pattern, not
	// the raw path.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records a completed request.
	OnResponse(ctx context.Context, method, route string, status int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopArrangementHooks is a no-op implementation of ArrangementHooks.
type NoopArrangementHooks struct{}

func (NoopArrangementHooks) OnBuildStart(context.Context, int)                          {}
func (NoopArrangementHooks) OnBuildComplete(context.Context, int, time.Duration, error) {}
func (NoopArrangementHooks) OnSweepStart(context.Context, int)                          {}
func (NoopArrangementHooks) OnSweepComplete(context.Context, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	arrangementHooks ArrangementHooks = NoopArrangementHooks{}
	cacheHooks       CacheHooks       = NoopCacheHooks{}
	httpHooks        HTTPHooks        = NoopHTTPHooks{}
	hooksMu          sync.RWMutex
)

// SetArrangementHooks registers custom arrangement hooks. A nil h is ignored.
func SetArrangementHooks(h ArrangementHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		arrangementHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Arrangement returns the registered arrangement hooks.
func Arrangement() ArrangementHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return arrangementHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	arrangementHooks = NoopArrangementHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
