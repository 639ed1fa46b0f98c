package topology

import (
	errs "github.com/matzehuels/wirechain/pkg/errors"
)

// Edge is an unordered pair of vertex indices.
// U and V may be equal (a self-loop); the same pair may appear more than once.
type Edge struct {
	U, V int
}

// Other returns the endpoint of e opposite to v.
// For a self-loop it returns v itself.
func (e Edge) Other(v int) int {
	if e.U == v {
		return e.V
	}
	return e.U
}

// IsLoop reports whether both endpoints of e are the same vertex.
func (e Edge) IsLoop() bool { return e.U == e.V }

// Graph is an undirected multigraph indexed for edge walks.
//
// Incident edges are stored CSR-style: the edges touching vertex v are
// incidence[start[v]:start[v+1]], in ascending edge index. A self-loop is
// listed twice for its vertex, matching its contribution of 2 to the degree.
//
// A Graph is immutable after [NewGraph] returns and safe for concurrent reads.
type Graph struct {
	vertexCount int
	edges       []Edge
	start       []int
	incidence   []int
}

// NewGraph validates edges against vertexCount and builds the incidence table.
//
// It returns an INVALID_ARGUMENT error if vertexCount is negative or an edge
// endpoint lies outside [0, vertexCount). The edges slice is copied.
func NewGraph(vertexCount int, edges []Edge) (*Graph, error) {
	if vertexCount < 0 {
		return nil, errs.New(errs.ErrCodeInvalidArgument, "vertex count must not be negative, got %d", vertexCount)
	}
	for i, e := range edges {
		if e.U < 0 || e.U >= vertexCount || e.V < 0 || e.V >= vertexCount {
			return nil, errs.New(errs.ErrCodeInvalidArgument,
				"edge %d (%d, %d) references a vertex outside [0, %d)", i, e.U, e.V, vertexCount)
		}
	}

	g := &Graph{
		vertexCount: vertexCount,
		edges:       append([]Edge(nil), edges...),
		start:       make([]int, vertexCount+1),
		incidence:   make([]int, 2*len(edges)),
	}

	// Counting pass: start[v+1] holds the degree of v, then prefix-sum.
	for _, e := range g.edges {
		g.start[e.U+1]++
		g.start[e.V+1]++
	}
	for v := 0; v < vertexCount; v++ {
		g.start[v+1] += g.start[v]
	}

	fill := make([]int, vertexCount)
	copy(fill, g.start[:vertexCount])
	for i, e := range g.edges {
		g.incidence[fill[e.U]] = i
		fill[e.U]++
		g.incidence[fill[e.V]] = i
		fill[e.V]++
	}

	return g, nil
}

// VertexCount returns the number of vertices, including isolated ones.
func (g *Graph) VertexCount() int { return g.vertexCount }

// EdgeCount returns the number of edges, counting duplicates.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Edge returns the edge with index i.
func (g *Graph) Edge(i int) Edge { return g.edges[i] }

// Edges returns a copy of the edge list in input order.
func (g *Graph) Edges() []Edge { return append([]Edge(nil), g.edges...) }

// Degree returns the number of edge endpoints at v. Self-loops count twice.
func (g *Graph) Degree(v int) int { return g.start[v+1] - g.start[v] }

// Incident returns the indices of edges touching v in ascending order.
// The returned slice aliases internal storage and must not be modified.
func (g *Graph) Incident(v int) []int { return g.incidence[g.start[v]:g.start[v+1]] }
