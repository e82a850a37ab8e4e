// Package pkg provides the libraries behind Radialtree radial graph layout.
//
// # Overview
//
// Radialtree places nodes that carry polar coordinates (a radius and an angle
// in data units) onto a grid of concentric rings, one node per slot, and
// routes every edge as a smooth arc that goes the shorter way around the
// circle. The pkg directory is organized into these areas:
//
//  1. [core] - Layout algorithms (projection, grid, slot assignment, routing)
//  2. [graph] - Serialization types for input graphs and computed layouts
//  3. [pipeline] - Orchestration (load → layout → export) with caching
//  4. [cache] and [store] - Layout caching and persistence backends
//
// # Architecture
//
// The data flow through Radialtree:
//
//	Graph file / API request
//	         ↓
//	    [graph] package (decode records and edges)
//	         ↓
//	    [core/radial] package (ingest, grid, assign, route)
//	         ↓
//	    [graph.Layout] (nodes, slots, paths, issues)
//	         ↓
//	    JSON/YAML/DOT output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/radialtree/pkg/core/radial"
//	    "github.com/matzehuels/radialtree/pkg/graph"
//	)
//
//	g, _ := graph.ReadGraphFile("graph.json")
//	cfg := radial.NewConfig(radial.WithSize(800, 800), radial.WithRadii(100, 380))
//	res, _ := radial.ComputeRecords(g.Nodes, g.RadialEdges(), cfg)
//	l := graph.FromResult(g, res)
//
// # Main Packages
//
// [core/polar] - Scales and the polar projector that maps (radius, angle)
// data values onto frame coordinates.
//
// [core/grid] - Builds the concentric ring grid and tracks slot occupancy.
//
// [core/assign] - Greedy nearest-free-slot assignment, in ascending radius
// order.
//
// [core/route] - Shortest angular span with wraparound, arc sampling and
// centripetal Catmull-Rom smoothing.
//
// [core/radial] - Configuration and the end-to-end layout over raw records.
//
// [pipeline] - The layout pipeline shared by CLI and API: option files,
// cache lookup, and export formats.
//
// [cache] - Null, file and Redis caches keyed by graph hash and options.
//
// [store] - Memory, file and MongoDB stores for saved layouts.
//
// [observability] - Hooks for ingest, layout, cache and HTTP events.
//
// [errors] - Coded errors shared by all packages.
//
// # Testing
//
//	go test ./...                        # All tests
//	go test ./pkg/core/...               # Layout algorithms only
//	go test -run Example ./pkg/...       # Examples only
//
// MongoDB store tests run when RADIALTREE_TEST_MONGO_URI is set.
//
// [core]: https://pkg.go.dev/github.com/matzehuels/radialtree/pkg/core
// [core/polar]: https://pkg.go.dev/github.com/matzehuels/radialtree/pkg/core/polar
// [core/grid]: https://pkg.go.dev/github.com/matzehuels/radialtree/pkg/core/grid
// [core/assign]: https://pkg.go.dev/github.com/matzehuels/radialtree/pkg/core/assign
// [core/route]: https://pkg.go.dev/github.com/matzehuels/radialtree/pkg/core/route
// [core/radial]: https://pkg.go.dev/github.com/matzehuels/radialtree/pkg/core/radial
// [graph]: https://pkg.go.dev/github.com/matzehuels/radialtree/pkg/graph
// [graph.Layout]: https://pkg.go.dev/github.com/matzehuels/radialtree/pkg/graph#Layout
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/radialtree/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/radialtree/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/radialtree/pkg/store
// [observability]: https://pkg.go.dev/github.com/matzehuels/radialtree/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/radialtree/pkg/errors
package pkg
