package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/radialtree/pkg/cache"
	"github.com/matzehuels/radialtree/pkg/core/radial"
	"github.com/matzehuels/radialtree/pkg/graph"
	"github.com/matzehuels/radialtree/pkg/observability"
)

// Runner encapsulates layout execution with caching.
// Both CLI and API use it so caching behaves the same everywhere.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different inputs.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Layout computes the layout of g, serving it from the cache when the same
// graph was laid out with the same options before.
func (r *Runner) Layout(ctx context.Context, g graph.Graph, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	graphData, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("hash graph: %w", err)
	}
	graphHash := cache.Hash(graphData)
	key := r.Keyer.LayoutKey(graphHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if l, ok := r.cached(ctx, key, "layout"); ok {
			opts.Logger.Debug("layout cache hit", "key", key)
			return &Result{
				Layout:    l,
				GraphHash: graphHash,
				Stats:     statsOf(l, len(g.Edges), 0),
				CacheHit:  true,
			}, nil
		}
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, len(g.Nodes), len(g.Edges))
	res, err := radial.ComputeRecords(g.Nodes, g.RadialEdges(), opts.ToConfig())
	if err != nil {
		observability.Pipeline().OnLayoutComplete(ctx, observability.LayoutStats{Nodes: len(g.Nodes)}, time.Since(start), err)
		return nil, err
	}
	l := graph.FromResult(g, res)
	elapsed := time.Since(start)

	stats := statsOf(l, len(g.Edges), elapsed)
	observability.Pipeline().OnLayoutComplete(ctx, observability.LayoutStats{
		Nodes:    stats.NodeCount,
		Placed:   stats.Placed,
		Paths:    len(l.Paths),
		Issues:   stats.Issues,
		Capacity: stats.Capacity,
	}, elapsed, nil)

	opts.Logger.Info("computed layout",
		"nodes", stats.NodeCount,
		"placed", stats.Placed,
		"paths", len(l.Paths),
		"capacity", stats.Capacity,
		"duration", elapsed)
	for _, is := range res.Issues {
		opts.Logger.Warn("layout issue", "kind", is.Kind, "detail", is.String())
	}

	r.store(ctx, key, "layout", l, cache.TTLLayout)
	return &Result{Layout: l, GraphHash: graphHash, Stats: stats}, nil
}

// Grid computes the empty grid for opts: rings and slots with no nodes.
// The second return value reports a cache hit.
func (r *Runner) Grid(ctx context.Context, opts Options) (graph.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return graph.Layout{}, false, fmt.Errorf("invalid options: %w", err)
	}

	key := r.Keyer.GridKey(opts.GridKeyOpts())
	if !opts.Refresh {
		if l, ok := r.cached(ctx, key, "grid"); ok {
			return l, true, nil
		}
	}

	res, err := radial.Compute(nil, nil, opts.ToConfig())
	if err != nil {
		return graph.Layout{}, false, err
	}
	l := graph.FromResult(graph.Graph{}, res)
	opts.Logger.Debug("built grid", "rings", len(l.Rings), "capacity", l.Geometry.Capacity)

	r.store(ctx, key, "grid", l, cache.TTLGrid)
	return l, false, nil
}

// cached loads a layout from the cache. Errors count as misses.
func (r *Runner) cached(ctx context.Context, key, keyType string) (graph.Layout, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "key", key, "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return graph.Layout{}, false
	}
	l, err := graph.UnmarshalLayout(data)
	if err != nil {
		// Corrupt entries are recomputed and overwritten.
		observability.Cache().OnCacheMiss(ctx, keyType)
		return graph.Layout{}, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return l, true
}

// store writes a layout to the cache. Failures are logged, never returned.
func (r *Runner) store(ctx context.Context, key, keyType string, l graph.Layout, ttl time.Duration) {
	data, err := json.Marshal(l)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func statsOf(l graph.Layout, edges int, d time.Duration) Stats {
	s := Stats{
		NodeCount:  len(l.Nodes),
		EdgeCount:  edges,
		Issues:     len(l.Issues),
		Capacity:   l.Geometry.Capacity,
		LayoutTime: d,
	}
	for _, n := range l.Nodes {
		if n.Placed() {
			s.Placed++
		}
	}
	return s
}
