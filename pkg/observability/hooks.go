// Package observability defines hooks for events in phrasenet: analysis
// stages, annotator loads, cache lookups, and calls to remote annotation
// services.
//
// Libraries call the registered hooks; the defaults do nothing. A binary
// registers implementations once at startup, e.g. [RegisterLogger] to log
// every event at debug level:
//
//	observability.RegisterLogger(logger)
//
// Metrics backends plug in the same way by implementing the interfaces:
//
//	observability.SetPipelineHooks(&prometheusHooks{})
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the analysis pipeline.
type PipelineHooks interface {
	// Annotation events
	OnAnnotateStart(ctx context.Context, annotator string, textLen int)
	OnAnnotateComplete(ctx context.Context, annotator string, tokens int, duration time.Duration, err error)

	// OnStage fires after each graph stage (link, filter, compress) with the
	// size of the graph it produced.
	OnStage(ctx context.Context, stage string, nodes, edges int, duration time.Duration)

	// OnAnalyzeComplete fires once per request.
	OnAnalyzeComplete(ctx context.Context, linking string, duration time.Duration, err error)
}

// =============================================================================
// Annotator Hooks
// =============================================================================

// AnnotatorHooks receives events from the annotator registry.
type AnnotatorHooks interface {
	// OnLoad records an annotator initialization, including reloads.
	OnLoad(ctx context.Context, choice string, duration time.Duration, err error)
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

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnAnnotateStart(context.Context, string, int) {}
func (NoopPipelineHooks) OnAnnotateComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnStage(context.Context, string, int, int, time.Duration)        {}
func (NoopPipelineHooks) OnAnalyzeComplete(context.Context, string, time.Duration, error) {}

// NoopAnnotatorHooks is a no-op implementation of AnnotatorHooks.
type NoopAnnotatorHooks struct{}

func (NoopAnnotatorHooks) OnLoad(context.Context, string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

// registry holds the active hooks. Reads vastly outnumber writes, which
// happen once at startup.
type registry struct {
	mu        sync.RWMutex
	pipeline  PipelineHooks
	annotator AnnotatorHooks
	cache     CacheHooks
	http      HTTPHooks
}

var active = &registry{}

func init() { Reset() }

func set[T any](dst *T, h T) {
	if any(h) == nil {
		return
	}
	active.mu.Lock()
	*dst = h
	active.mu.Unlock()
}

func get[T any](src *T) T {
	active.mu.RLock()
	defer active.mu.RUnlock()
	return *src
}

// SetPipelineHooks registers pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) { set(&active.pipeline, h) }

// SetAnnotatorHooks registers annotator hooks. A nil h is ignored.
func SetAnnotatorHooks(h AnnotatorHooks) { set(&active.annotator, h) }

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) { set(&active.cache, h) }

// SetHTTPHooks registers HTTP client hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) { set(&active.http, h) }

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return get(&active.pipeline) }

// Annotator returns the registered annotator hooks.
func Annotator() AnnotatorHooks { return get(&active.annotator) }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return get(&active.cache) }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return get(&active.http) }

// Reset restores the no-op hooks.
func Reset() {
	active.mu.Lock()
	defer active.mu.Unlock()
	active.pipeline = NoopPipelineHooks{}
	active.annotator = NoopAnnotatorHooks{}
	active.cache = NoopCacheHooks{}
	active.http = NoopHTTPHooks{}
}
