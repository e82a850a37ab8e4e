// Package observability carries instrumentation hooks for the layout
// pipeline, the layout cache and the API server.
//
// Hooks are backend-agnostic and default to no-ops. A binary registers an
// implementation once at startup; [Counters] is the built-in one, holding
// in-process totals that the API serves at GET /stats:
//
//	c := observability.NewCounters()
//	observability.Register(c)
//
// Instrumented code fetches the current hooks at the call site:
//
//	observability.Pipeline().OnLayoutStart(ctx, len(nodes), len(edges))
package observability

import (
	"context"
	"sync"
	"time"
)

// LayoutStats summarizes a finished layout.
type LayoutStats struct {
	Nodes    int // Input nodes
	Placed   int // Nodes that received a slot
	Paths    int // Routed edges
	Issues   int // Non-fatal problems reported
	Capacity int // Grid slot count
}

// PipelineHooks receives events from graph ingest and layout.
type PipelineHooks interface {
	OnIngestComplete(ctx context.Context, source string, nodeCount int, duration time.Duration, err error)
	OnLayoutStart(ctx context.Context, nodeCount, edgeCount int)
	OnLayoutComplete(ctx context.Context, stats LayoutStats, duration time.Duration, err error)
}

// CacheHooks receives cache lookups and writes. keyType is "layout" or
// "grid".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives API requests. route is the matched chi pattern, e.g.
// "/layouts/{id}", not the raw path.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// Hooks implements every hook interface.
type Hooks interface {
	PipelineHooks
	CacheHooks
	HTTPHooks
}

// Noop discards every event.
type Noop struct{}

func (Noop) OnIngestComplete(context.Context, string, int, time.Duration, error) {}
func (Noop) OnLayoutStart(context.Context, int, int)                             {}
func (Noop) OnLayoutComplete(context.Context, LayoutStats, time.Duration, error) {}
func (Noop) OnCacheHit(context.Context, string)                                  {}
func (Noop) OnCacheMiss(context.Context, string)                                 {}
func (Noop) OnCacheSet(context.Context, string, int)                             {}
func (Noop) OnRequest(context.Context, string, string)                           {}
func (Noop) OnResponse(context.Context, string, string, int, time.Duration)      {}

var registry = struct {
	sync.RWMutex
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}{pipeline: Noop{}, cache: Noop{}, http: Noop{}}

// Register installs h for all three hook sets.
func Register(h Hooks) {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

// SetPipelineHooks installs pipeline hooks. nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	registry.Lock()
	registry.pipeline = h
	registry.Unlock()
}

// SetCacheHooks installs cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	registry.Lock()
	registry.cache = h
	registry.Unlock()
}

// SetHTTPHooks installs HTTP hooks. nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h == nil {
		return
	}
	registry.Lock()
	registry.http = h
	registry.Unlock()
}

func Pipeline() PipelineHooks {
	registry.RLock()
	defer registry.RUnlock()
	return registry.pipeline
}

func Cache() CacheHooks {
	registry.RLock()
	defer registry.RUnlock()
	return registry.cache
}

func HTTP() HTTPHooks {
	registry.RLock()
	defer registry.RUnlock()
	return registry.http
}

// Reset restores the no-op hooks.
func Reset() {
	registry.Lock()
	registry.pipeline, registry.cache, registry.http = Noop{}, Noop{}, Noop{}
	registry.Unlock()
}
