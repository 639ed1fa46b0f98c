package topology

// Stats summarizes a graph and its decomposition.
type Stats struct {
	Vertices   int `json:"vertices"`
	Edges      int `json:"edges"`
	Isolated   int `json:"isolated"`
	Leaves     int `json:"leaves"`
	Chains     int `json:"chains"`
	Branches   int `json:"branches"`
	Components int `json:"components"`

	Segments    int `json:"segments"`
	Open        int `json:"open"`
	Closed      int `json:"closed"`
	LongestEdge int `json:"longest_segment_edges"`

	// Reduction is the average number of edges merged into one segment,
	// i.e. how many curve primitives each segment replaces.
	Reduction float64 `json:"reduction"`
}

// Summarize computes Stats for g and its decomposition d.
func Summarize(g *Graph, d Decomposition) Stats {
	s := Stats{
		Vertices:   g.VertexCount(),
		Edges:      g.EdgeCount(),
		Segments:   d.Len(),
		Components: countComponents(g),
	}

	for v := 0; v < g.VertexCount(); v++ {
		switch g.Kind(v) {
		case Isolated:
			s.Isolated++
		case Leaf:
			s.Leaves++
		case Chain:
			s.Chains++
		case Branch:
			s.Branches++
		}
	}

	for i := 0; i < d.Len(); i++ {
		verts := d.Segment(i)
		closed := d.IsClosed(i)
		if len(d.Closed) == 0 {
			closed = g.Kind(verts[0]) == Chain
		}
		n := len(verts) - 1
		if closed {
			s.Closed++
			n = len(verts)
		} else {
			s.Open++
		}
		if n > s.LongestEdge {
			s.LongestEdge = n
		}
	}

	if s.Segments > 0 {
		s.Reduction = float64(s.Edges) / float64(s.Segments)
	}
	return s
}

// countComponents counts connected components that contain at least one
// edge, using an iterative depth-first search over the incidence table.
func countComponents(g *Graph) int {
	seen := make([]bool, g.VertexCount())
	var stack []int
	count := 0
	for v := 0; v < g.VertexCount(); v++ {
		if seen[v] || g.Degree(v) == 0 {
			continue
		}
		count++
		seen[v] = true
		stack = append(stack[:0], v)
		for len(stack) > 0 {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, e := range g.Incident(u) {
				w := g.Edge(e).Other(u)
				if !seen[w] {
					seen[w] = true
					stack = append(stack, w)
				}
			}
		}
	}
	return count
}
