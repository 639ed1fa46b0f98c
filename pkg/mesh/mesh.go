// Package mesh derives wire edges from polygon faces.
//
// Mesh loaders hand out faces, not edges. [EdgesFromFaces] turns a face list
// into the undirected edge list expected by the topology package, with each
// shared edge listed once.
package mesh

import (
	errs "github.com/matzehuels/wirechain/pkg/errors"
	"github.com/matzehuels/wirechain/pkg/topology"
)

// EdgesFromFaces returns the unique undirected edges of the given polygons.
//
// Each face is a closed loop of vertex indices with at least three entries.
// Edges are returned in first-seen order, oriented as (min, max). Repeated
// consecutive indices (degenerate faces) produce no self-loops.
func EdgesFromFaces(faces [][]int) ([]topology.Edge, error) {
	seen := make(map[topology.Edge]struct{})
	var out []topology.Edge

	for fi, f := range faces {
		if len(f) < 3 {
			return nil, errs.New(errs.ErrCodeInvalidArgument, "face %d has %d vertices, need at least 3", fi, len(f))
		}
		for i, a := range f {
			b := f[(i+1)%len(f)]
			if a < 0 || b < 0 {
				return nil, errs.New(errs.ErrCodeInvalidArgument, "face %d references negative vertex index", fi)
			}
			if a == b {
				continue
			}
			e := topology.Edge{U: min(a, b), V: max(a, b)}
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			out = append(out, e)
		}
	}
	return out, nil
}

// VertexCount returns one more than the largest index referenced by faces,
// or 0 for an empty face list.
func VertexCount(faces [][]int) int {
	n := 0
	for _, f := range faces {
		for _, v := range f {
			if v+1 > n {
				n = v + 1
			}
		}
	}
	return n
}
