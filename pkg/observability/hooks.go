// Package observability lets callers attach metrics or tracing to wirechain
// without the library depending on a particular backend.
//
// Three hook families are defined, each with a no-op default:
//
//   - [DecomposeHooks]: graph decomposition and rendering in the pipeline
//   - [CacheHooks]: cache hits, misses and writes
//   - [HTTPHooks]: requests served by the API
//
// Register implementations once at startup, before any work begins:
//
//	func main() {
//	    observability.SetDecomposeHooks(&promHooks{})
//	    observability.SetHTTPHooks(&promHooks{})
//	    // ...
//	}
//
// Library code emits events through the registry accessors:
//
//	observability.Decompose().OnDecomposeStart(ctx, vertices, edges)
package observability

import (
	"context"
	"sync"
	"time"
)

// DecomposeHooks receives events from the decomposition pipeline.
type DecomposeHooks interface {
	OnDecomposeStart(ctx context.Context, vertices, edges int)
	OnDecomposeComplete(ctx context.Context, segments int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the API server.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// NoopDecomposeHooks ignores all events.
type NoopDecomposeHooks struct{}

func (NoopDecomposeHooks) OnDecomposeStart(context.Context, int, int)                          {}
func (NoopDecomposeHooks) OnDecomposeComplete(context.Context, int, time.Duration, error)      {}
func (NoopDecomposeHooks) OnRenderStart(context.Context, string)                               {}
func (NoopDecomposeHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks ignores all events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores all events.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                       {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

var (
	decomposeHooks DecomposeHooks = NoopDecomposeHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	httpHooks      HTTPHooks      = NoopHTTPHooks{}
	hooksMu        sync.RWMutex
)

// SetDecomposeHooks registers decomposition hooks. Nil is ignored.
func SetDecomposeHooks(h DecomposeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		decomposeHooks = h
	}
}

// SetCacheHooks registers cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Decompose returns the registered decomposition hooks.
func Decompose() DecomposeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return decomposeHooks
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
	decomposeHooks = NoopDecomposeHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
