// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Hooks are plain interfaces bundled in a
// [Hooks] value that callers pass to the pipeline runner and the API server;
// there is no global registry.
//
// # Usage
//
//	hooks := observability.Hooks{Cache: &myCacheMetrics{}}
//	runner := pipeline.NewRunner(cfg, src, c, logger, hooks)
//
// Any nil field falls back to a no-op. [NewLogHooks] logs every event at
// debug level, which is what the CLI uses with --verbose.
package observability

import (
	"context"
	"time"
)

// =============================================================================
// Validation Hooks
// =============================================================================

// ValidationHooks receives events from the batch validation pipeline.
type ValidationHooks interface {
	// Load events
	OnLoadStart(ctx context.Context, dir string)
	OnLoadComplete(ctx context.Context, dir string, rows int, duration time.Duration, err error)

	// OnValidateComplete records one finished validation.
	OnValidateComplete(ctx context.Context, dir string, findings int, duration time.Duration)
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

// HTTPHooks receives events from the API server.
type HTTPHooks interface {
	// OnRequest records an incoming HTTP request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the response status and latency.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopValidationHooks is a no-op implementation of ValidationHooks.
type NoopValidationHooks struct{}

func (NoopValidationHooks) OnLoadStart(context.Context, string) {}
func (NoopValidationHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopValidationHooks) OnValidateComplete(context.Context, string, int, time.Duration) {}

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
// Hook Set
// =============================================================================

// Hooks bundles every hook category.
type Hooks struct {
	Validation ValidationHooks
	Cache      CacheHooks
	HTTP       HTTPHooks
}

// WithDefaults returns h with nil fields replaced by no-ops.
func (h Hooks) WithDefaults() Hooks {
	if h.Validation == nil {
		h.Validation = NoopValidationHooks{}
	}
	if h.Cache == nil {
		h.Cache = NoopCacheHooks{}
	}
	if h.HTTP == nil {
		h.HTTP = NoopHTTPHooks{}
	}
	return h
}
