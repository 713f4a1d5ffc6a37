// Package observability provides hooks for metrics and logging.
//
// Instrumentation is optional and backend-agnostic. Libraries call the
// registered hooks; main decides what, if anything, is behind them. The
// defaults are no-ops, so an unconfigured program pays only for an interface
// call.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    m := prometheus.New(registry)
//	    observability.SetSearchHooks(m)
//	    observability.SetCacheHooks(m)
//	    // ... run application
//	}
//
// Libraries emit events through the accessors:
//
//	observability.Search().OnWorkerStart(ctx, worker, len(shard))
//	// ... search ...
//	observability.Search().OnWorkerDone(ctx, worker, processed, elapsed, err)
//
// The Prometheus backend lives in the prometheus subpackage so this package
// stays free of metrics dependencies.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the load → catalog → graph stages.
type PipelineHooks interface {
	// OnLoadComplete fires after flight records have been read.
	OnLoadComplete(ctx context.Context, source string, records int, duration time.Duration, err error)

	// OnCatalogBuilt fires once the catalog is frozen.
	OnCatalogBuilt(ctx context.Context, airports, flights int)

	// OnGraphBuilt fires once every legal connection has been computed.
	OnGraphBuilt(ctx context.Context, flights, edges int, duration time.Duration)
}

// =============================================================================
// Search Hooks
// =============================================================================

// SearchHooks receives events from search workers. Calls arrive concurrently
// from every worker goroutine; implementations must be safe for that.
type SearchHooks interface {
	// OnWorkerStart fires before a worker pops its first plan.
	OnWorkerStart(ctx context.Context, worker, starts int)

	// OnProgress fires periodically with the worker's running totals.
	OnProgress(ctx context.Context, worker int, processed int64, frontier int)

	// OnNewBest fires whenever a worker replaces its best itinerary.
	OnNewBest(ctx context.Context, worker, uniqueDests, days, flights int, duration time.Duration)

	// OnWorkerDone fires when a worker's stack is empty or it was interrupted.
	OnWorkerDone(ctx context.Context, worker int, processed int64, elapsed time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, backend string)
	OnCacheMiss(ctx context.Context, backend string)
	OnCacheSet(ctx context.Context, backend string, size int)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from run-history writes.
type StoreHooks interface {
	OnRunSaved(ctx context.Context, backend string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnCatalogBuilt(context.Context, int, int)                          {}
func (NoopPipelineHooks) OnGraphBuilt(context.Context, int, int, time.Duration)             {}

// NoopSearchHooks is a no-op implementation of SearchHooks.
type NoopSearchHooks struct{}

func (NoopSearchHooks) OnWorkerStart(context.Context, int, int)                        {}
func (NoopSearchHooks) OnProgress(context.Context, int, int64, int)                    {}
func (NoopSearchHooks) OnNewBest(context.Context, int, int, int, int, time.Duration)   {}
func (NoopSearchHooks) OnWorkerDone(context.Context, int, int64, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnRunSaved(context.Context, string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	searchHooks   SearchHooks   = NoopSearchHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	storeHooks    StoreHooks    = NoopStoreHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks. Nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetSearchHooks registers custom search hooks. Nil is ignored.
// Call it before any worker starts.
func SetSearchHooks(h SearchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		searchHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetStoreHooks registers custom store hooks. Nil is ignored.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Search returns the registered search hooks.
func Search() SearchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return searchHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults. Tests use it.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	searchHooks = NoopSearchHooks{}
	cacheHooks = NoopCacheHooks{}
	storeHooks = NoopStoreHooks{}
}
