// Package pkg provides the core libraries for wirechain edge decomposition.
//
// # Overview
//
// wirechain splits the edges of a mesh, or of any undirected multigraph, into
// maximal polylines. A polyline runs between vertices whose degree is not 2
// and passes through every degree-2 vertex in between; components made only
// of degree-2 vertices become closed loops. Wireframe renderers draw one curve
// per polyline instead of one per edge.
//
// The pkg directory is organized into three areas:
//
//  1. [topology] - Domain logic (graph index, classification, tracing, packing)
//  2. [pipeline] - Orchestration (read → decompose → cache → persist → render)
//  3. Infrastructure ([cache], [store], [config], [observability], [errors])
//
// # Architecture
//
// The typical data flow through wirechain:
//
//	Edge list / face list
//	         ↓
//	    [graphio] and [mesh] packages (decode input, derive face edges)
//	         ↓
//	    [topology] package (build incidence, classify, trace, pack to CSR)
//	         ↓
//	    [pipeline] package (cache lookup, verification, persistence)
//	         ↓
//	    JSON / text / SVG / DOT output
//
// # Quick Start
//
//	import "github.com/matzehuels/wirechain/pkg/topology"
//
//	edges := []topology.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 3}}
//	d, err := topology.Decompose(4, edges)
//	// d.Indices == [0 1 2 3], d.Offsets == [0]
//
// Callers that own their output memory use [topology.DecomposeInto] with
// buffers from [topology.NewBuffers]: 2E vertex slots and E offset slots,
// filled with [topology.Sentinel] past the used prefix.
//
// # Main Packages
//
// [topology] - The decomposition itself. [topology.NewGraph] builds a CSR
// vertex-to-edge index, [topology.Trace] walks open segments from Leaf and
// Branch vertices and then closed cycles, [topology.Pack] and
// [topology.PackInto] lay the result out as vertex_indices/segment_offsets.
// [topology.Verify] checks a result against its graph.
//
// [mesh] - Unique undirected edges from polygon faces.
//
// [graphio] - JSON documents and text edge lists, in and out.
//
// [render] - Graphviz drawings with one color per segment.
//
// [pipeline] - The shared path used by the CLI and the HTTP API: content
// hashing, cache lookup, optional verification, persistence and rendering.
//
// [cache] - File, Redis and null caches keyed by input hash.
//
// [store] - Durable decompositions in memory or MongoDB.
//
// [config] - TOML configuration with environment overrides.
//
// [observability] - Hooks for decomposition, cache and HTTP events.
//
// # Testing
//
//	go test ./...            # All tests
//	go test ./pkg/topology   # Specific package
//	go test -run Example     # Examples only
//
// [topology]: https://pkg.go.dev/github.com/matzehuels/wirechain/pkg/topology
// [mesh]: https://pkg.go.dev/github.com/matzehuels/wirechain/pkg/mesh
// [graphio]: https://pkg.go.dev/github.com/matzehuels/wirechain/pkg/graphio
// [render]: https://pkg.go.dev/github.com/matzehuels/wirechain/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/wirechain/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/wirechain/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/wirechain/pkg/store
// [config]: https://pkg.go.dev/github.com/matzehuels/wirechain/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/wirechain/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/wirechain/pkg/errors
package pkg
