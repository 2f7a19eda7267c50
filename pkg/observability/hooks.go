// Package observability lets callers observe pagemarks without pulling a
// metrics or tracing SDK into the libraries.
//
// Three event families are exposed: layout cycles ([LayoutHooks]), cache
// traffic ([CacheHooks]) and served HTTP requests ([HTTPHooks]). Each has a
// no-op implementation that is used until a hook is installed, so library
// code can call the getters unconditionally.
//
// Hooks are process-global. Install them once at startup:
//
//	observability.SetLayoutHooks(&cycleMetrics{})
//	observability.SetCacheHooks(&cacheMetrics{})
//
// A markers.Layout built with markers.WithHooks uses its own hooks instead
// of the global layout hooks.
//
// Emitters look like this:
//
//	observability.Layout().OnCycleStart(ctx)
//	observability.Layout().OnCycleComplete(ctx, markers, dropped, passes, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from marker layout cycles.
type LayoutHooks interface {
	// OnCycleStart is called when a cycle begins, after serialization.
	OnCycleStart(ctx context.Context)

	// OnCycleComplete reports the markers placed, the anchors dropped for a
	// missing container and the relaxation passes used across containers.
	OnCycleComplete(ctx context.Context, markers, dropped, passes int, duration time.Duration)

	// OnCycleCoalesced is called when a trigger was served by a cycle that
	// started after it, so no cycle of its own ran.
	OnCycleCoalesced(ctx context.Context)

	// OnFetchError records a renderer failure.
	OnFetchError(ctx context.Context, err error)
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
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records a completed response.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnCycleStart(context.Context)                                  {}
func (NoopLayoutHooks) OnCycleComplete(context.Context, int, int, int, time.Duration) {}
func (NoopLayoutHooks) OnCycleCoalesced(context.Context)                              {}
func (NoopLayoutHooks) OnFetchError(context.Context, error)                           {}

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

// registry holds the installed hooks. A nil field means no-op.
type registry struct {
	mu     sync.RWMutex
	layout LayoutHooks
	cache  CacheHooks
	http   HTTPHooks
}

var hooks registry

// SetLayoutHooks installs layout hooks. Passing nil restores the no-op.
// Install hooks before the first layout cycle.
func SetLayoutHooks(h LayoutHooks) {
	hooks.mu.Lock()
	hooks.layout = h
	hooks.mu.Unlock()
}

// SetCacheHooks installs cache hooks. Passing nil restores the no-op.
func SetCacheHooks(h CacheHooks) {
	hooks.mu.Lock()
	hooks.cache = h
	hooks.mu.Unlock()
}

// SetHTTPHooks installs HTTP hooks. Passing nil restores the no-op.
func SetHTTPHooks(h HTTPHooks) {
	hooks.mu.Lock()
	hooks.http = h
	hooks.mu.Unlock()
}

// Layout returns the installed layout hooks.
func Layout() LayoutHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	if hooks.layout == nil {
		return NoopLayoutHooks{}
	}
	return hooks.layout
}

// Cache returns the installed cache hooks.
func Cache() CacheHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	if hooks.cache == nil {
		return NoopCacheHooks{}
	}
	return hooks.cache
}

// HTTP returns the installed HTTP hooks.
func HTTP() HTTPHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	if hooks.http == nil {
		return NoopHTTPHooks{}
	}
	return hooks.http
}

// Reset uninstalls every hook. Tests call it in cleanup.
func Reset() {
	hooks.mu.Lock()
	hooks.layout, hooks.cache, hooks.http = nil, nil, nil
	hooks.mu.Unlock()
}
