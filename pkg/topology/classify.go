package topology

// Kind classifies a vertex by its degree.
type Kind int

const (
	// Isolated vertices have no edges and appear in no segment.
	Isolated Kind = iota
	// Leaf vertices have degree 1 and terminate exactly one segment.
	Leaf
	// Chain vertices have degree 2 and are interior to exactly one segment.
	Chain
	// Branch vertices have degree 3 or more and terminate several segments.
	Branch
)

var kindNames = [...]string{
	Isolated: "isolated",
	Leaf:     "leaf",
	Chain:    "chain",
	Branch:   "branch",
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// IsEndpoint reports whether segments may start or end at a vertex of this kind.
func (k Kind) IsEndpoint() bool { return k == Leaf || k == Branch }

// KindOf maps a degree to its Kind.
func KindOf(degree int) Kind {
	switch {
	case degree <= 0:
		return Isolated
	case degree == 1:
		return Leaf
	case degree == 2:
		return Chain
	default:
		return Branch
	}
}

// Kind returns the classification of vertex v.
func (g *Graph) Kind(v int) Kind { return KindOf(g.Degree(v)) }

// Classify returns the Kind of every vertex, indexed by vertex.
func (g *Graph) Classify() []Kind {
	kinds := make([]Kind, g.vertexCount)
	for v := range kinds {
		kinds[v] = g.Kind(v)
	}
	return kinds
}
