// Package topology decomposes an undirected edge set into maximal polylines.
//
// # Overview
//
// A wireframe overlay drawn edge-by-edge needs one curve primitive per edge.
// Most mesh vertices have exactly two incident wire edges once the overlay is
// thinned, so long runs of edges can be merged into a single polyline. This
// package finds the smallest set of such runs ("segments") for a given graph.
//
// The work happens in four stages:
//
//  1. [NewGraph] builds a vertex→edge incidence table and degree counts.
//  2. [Graph.Kind] classifies each vertex as [Isolated], [Leaf], [Chain] or [Branch].
//  3. [Trace] walks from every Leaf/Branch vertex through Chain vertices,
//     then closes whatever pure cycles remain.
//  4. [Pack] flattens the segments into a CSR-style [Decomposition].
//
// Most callers only need [Decompose]:
//
//	d, err := topology.Decompose(4, []topology.Edge{{0, 1}, {1, 2}, {2, 3}})
//	// d.Indices == [0 1 2 3], d.Offsets == [0]
//
// # Segments
//
// An open segment starts and ends at a Leaf or Branch vertex; every vertex
// in between is a Chain vertex. A closed segment is a cycle made only of
// Chain vertices. It is listed without repeating its start vertex, so the
// consumer must add the edge from the last vertex back to the first.
//
// # Fixed Buffers
//
// [DecomposeInto] supports callers that preallocate output arrays. The
// index buffer needs 2*E slots and the offset buffer E slots; both are
// expected to be filled with [Sentinel] (see [NewBuffers]). Only the valid
// prefix is written and [Trim] recovers it.
//
// # Determinism
//
// Vertices are visited in ascending index order and incident edges in
// ascending edge order, so the same input always yields the same output.
// The decomposition can be cached by a hash of the input.
//
// # Concurrency
//
// All state is allocated per call. Independent calls may run concurrently.
package topology
