// Package radial computes a complete radial tree layout.
//
// # Pipeline
//
// [Compute] chains the layout stages in order:
//
//  1. Derive the radius scale from the observed node radii (or a fixed
//     RadiusExtent) and the angle scale from AngleExtent.
//  2. Build the ring and slot grid between InnerRadius and OuterRadius.
//  3. Snap every node onto its nearest free slot.
//  4. Route each edge as the shorter arc between its endpoint slots.
//
// Each call builds its own grid, so concurrent calls never share state. A
// [Result] is not safe for concurrent mutation but may be read freely.
//
// # Input
//
// Nodes can be supplied directly as [Node] values or ingested from arbitrary
// records with [Ingest] and a set of [Accessors]. [Record] together with
// [FieldAccessors] covers decoded JSON and YAML documents whose fields are
// named by Config.IDValue, Config.RadiusValue and Config.AngleValue.
//
// # Partial results
//
// Running out of slots or meeting an edge to an unknown node does not fail
// the layout. Such nodes and edges are dropped and described in
// Result.Issues; [Result.Partial] reports whether anything was lost.
package radial
