// Package graph provides serialization types for layout input and output.
//
// This package defines the canonical wire format for radialtree data, used
// for input files, API requests and responses, the cache and the layout store.
//
// # Architecture
//
// The package sits at the serialization boundary between the layout engine
// and external formats:
//
//   - [Graph], [Layout]: Serialization types (this package)
//   - pkg/core/radial.Result: Internal layout (grid, assignment, arcs)
//
// Use [FromResult] to turn a computed layout into a [Layout].
//
// # Graph Input
//
// Graphs use a node-link document in JSON or YAML. Nodes are free-form
// records; the identifier, radius and angle fields default to "id", "r" and
// "a" and can be renamed per layout. Edges may be pairs or objects:
//
//	{
//	  "nodes": [
//	    {"id": "a", "r": 1, "a": 0, "label": "Root"},
//	    {"id": "b", "r": 1, "a": 90},
//	    {"id": "c", "r": 2, "a": 180, "meta": {"team": "core"}}
//	  ],
//	  "edges": [["a", "b"], {"from": "b", "to": "c"}]
//	}
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("tree.yaml")         // File → Graph
//	l := graph.FromResult(g, res)                    // radial.Result → Layout
//	graph.WriteLayoutFile(l, "layout.json")          // Layout → File
//	dot := graph.ExportDOT(l)                        // Layout → Graphviz
//
// # Layout Output
//
// A [Layout] carries everything a renderer needs: the grid (rings and slots
// with frame coordinates), every node with its slot or null, every routed
// path as waypoints plus smoothed SVG path data, and the issues that made
// the layout partial.
//
// # Concurrency
//
// All functions are safe for concurrent use on distinct values.
package graph
