package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Counters accumulates hook events in memory. It is safe for concurrent use.
type Counters struct {
	started time.Time

	ingests      atomic.Int64
	ingestErrors atomic.Int64
	layouts      atomic.Int64
	layoutErrors atomic.Int64
	partial      atomic.Int64
	nodesPlaced  atomic.Int64
	layoutNanos  atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	cacheBytes   atomic.Int64
	requests     atomic.Int64
	serverErrors atomic.Int64

	mu     sync.Mutex
	routes map[string]int64
}

// NewCounters returns zeroed counters.
func NewCounters() *Counters {
	return &Counters{started: time.Now(), routes: make(map[string]int64)}
}

// Snapshot is a point-in-time copy of Counters.
type Snapshot struct {
	Uptime       time.Duration    `json:"uptime_ns"`
	Ingests      int64            `json:"ingests"`
	IngestErrors int64            `json:"ingest_errors"`
	Layouts      int64            `json:"layouts"`
	LayoutErrors int64            `json:"layout_errors"`
	Partial      int64            `json:"partial_layouts"`
	NodesPlaced  int64            `json:"nodes_placed"`
	LayoutTime   time.Duration    `json:"layout_time_ns"`
	CacheHits    int64            `json:"cache_hits"`
	CacheMisses  int64            `json:"cache_misses"`
	CacheBytes   int64            `json:"cache_bytes_written"`
	Requests     int64            `json:"requests"`
	ServerErrors int64            `json:"server_errors"`
	Routes       map[string]int64 `json:"routes"`
}

// Snapshot copies the current totals.
func (c *Counters) Snapshot() Snapshot {
	c.mu.Lock()
	routes := make(map[string]int64, len(c.routes))
	for k, v := range c.routes {
		routes[k] = v
	}
	c.mu.Unlock()

	return Snapshot{
		Uptime:       time.Since(c.started),
		Ingests:      c.ingests.Load(),
		IngestErrors: c.ingestErrors.Load(),
		Layouts:      c.layouts.Load(),
		LayoutErrors: c.layoutErrors.Load(),
		Partial:      c.partial.Load(),
		NodesPlaced:  c.nodesPlaced.Load(),
		LayoutTime:   time.Duration(c.layoutNanos.Load()),
		CacheHits:    c.cacheHits.Load(),
		CacheMisses:  c.cacheMisses.Load(),
		CacheBytes:   c.cacheBytes.Load(),
		Requests:     c.requests.Load(),
		ServerErrors: c.serverErrors.Load(),
		Routes:       routes,
	}
}

func (c *Counters) OnIngestComplete(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	c.ingests.Add(1)
	if err != nil {
		c.ingestErrors.Add(1)
	}
}

func (c *Counters) OnLayoutStart(context.Context, int, int) {}

// OnLayoutComplete counts a layout as partial when some node went unplaced
// or some edge unrouted.
func (c *Counters) OnLayoutComplete(_ context.Context, st LayoutStats, d time.Duration, err error) {
	c.layouts.Add(1)
	if err != nil {
		c.layoutErrors.Add(1)
		return
	}
	c.nodesPlaced.Add(int64(st.Placed))
	c.layoutNanos.Add(int64(d))
	if st.Placed < st.Nodes {
		c.partial.Add(1)
	}
}

func (c *Counters) OnCacheHit(context.Context, string)  { c.cacheHits.Add(1) }
func (c *Counters) OnCacheMiss(context.Context, string) { c.cacheMisses.Add(1) }

func (c *Counters) OnCacheSet(_ context.Context, _ string, size int) {
	c.cacheBytes.Add(int64(size))
}

func (c *Counters) OnRequest(_ context.Context, method, route string) {
	c.requests.Add(1)
	c.mu.Lock()
	c.routes[method+" "+route]++
	c.mu.Unlock()
}

func (c *Counters) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	if status >= 500 {
		c.serverErrors.Add(1)
	}
}

var _ Hooks = (*Counters)(nil)
