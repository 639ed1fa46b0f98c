package topology

// Segment is a polyline through the graph.
//
// An open segment lists every vertex from one Leaf/Branch endpoint to the
// other. A closed segment lists a cycle of Chain vertices once each; the edge
// from the last vertex back to Vertices[0] is implied.
type Segment struct {
	Vertices []int
	Closed   bool
}

// EdgeCount returns the number of graph edges consumed by the segment.
func (s Segment) EdgeCount() int {
	if s.Closed {
		return len(s.Vertices)
	}
	return len(s.Vertices) - 1
}

// tracer holds the visitation state of a single Trace call.
type tracer struct {
	g       *Graph
	kinds   []Kind
	visited []bool
	// cursor[v] is the first position in g.Incident(v) that may still hold an
	// unvisited edge. Edges before it are known to be visited.
	cursor []int
}

func newTracer(g *Graph) *tracer {
	return &tracer{
		g:       g,
		kinds:   g.Classify(),
		visited: make([]bool, g.EdgeCount()),
		cursor:  make([]int, g.VertexCount()),
	}
}

// next returns the lowest-index unvisited edge at v, or -1.
func (t *tracer) next(v int) int {
	inc := t.g.Incident(v)
	for t.cursor[v] < len(inc) {
		e := inc[t.cursor[v]]
		if !t.visited[e] {
			return e
		}
		t.cursor[v]++
	}
	return -1
}

// take marks e visited and returns the vertex across it from v.
func (t *tracer) take(e, v int) int {
	t.visited[e] = true
	return t.g.Edge(e).Other(v)
}

// open walks from endpoint v along edge e until it reaches a vertex that is
// not a Chain vertex or has no unvisited edge left.
func (t *tracer) open(v, e int) Segment {
	verts := []int{v}
	cur := t.take(e, v)
	verts = append(verts, cur)
	for t.kinds[cur] == Chain {
		ne := t.next(cur)
		if ne < 0 {
			break
		}
		cur = t.take(ne, cur)
		verts = append(verts, cur)
	}
	return Segment{Vertices: verts}
}

// closed walks the residual cycle through start until it returns to start.
func (t *tracer) closed(start int) Segment {
	verts := []int{start}
	cur := start
	for {
		e := t.next(cur)
		if e < 0 {
			break
		}
		cur = t.take(e, cur)
		if cur == start {
			break
		}
		verts = append(verts, cur)
	}
	return Segment{Vertices: verts, Closed: true}
}

// Trace partitions the edges of g into maximal segments.
//
// Open segments come first, ordered by their starting endpoint and then by
// the edge they leave through. Closed segments follow, ordered by their
// lowest vertex index. Every edge of g is consumed by exactly one segment.
func Trace(g *Graph) []Segment {
	t := newTracer(g)
	var segs []Segment

	for v := 0; v < g.VertexCount(); v++ {
		if !t.kinds[v].IsEndpoint() {
			continue
		}
		for e := t.next(v); e >= 0; e = t.next(v) {
			segs = append(segs, t.open(v, e))
		}
	}

	// Whatever is left belongs to components without endpoints: pure cycles
	// of Chain vertices, including lone self-loops.
	for v := 0; v < g.VertexCount(); v++ {
		if t.next(v) >= 0 {
			segs = append(segs, t.closed(v))
		}
	}

	return segs
}
