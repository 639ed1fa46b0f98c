package topology

// Decompose splits the edges of a graph with vertexCount vertices into
// maximal segments and returns them packed.
//
// It fails with INVALID_ARGUMENT if vertexCount is negative or an edge
// endpoint lies outside [0, vertexCount). Self-loops and duplicate edges
// are accepted.
func Decompose(vertexCount int, edges []Edge) (Decomposition, error) {
	g, err := NewGraph(vertexCount, edges)
	if err != nil {
		return Decomposition{}, err
	}
	return Pack(Trace(g)), nil
}

// DecomposeInto is Decompose for callers that preallocate output buffers.
//
// indices needs room for up to 2*len(edges) entries and offsets for up to
// len(edges). Only the valid prefix of each buffer is written; the rest is
// left as the caller filled it, normally with [Sentinel]. On error neither
// buffer is modified and the contents must not be used.
func DecomposeInto(vertexCount int, edges []Edge, indices, offsets []int) error {
	g, err := NewGraph(vertexCount, edges)
	if err != nil {
		return err
	}
	_, _, err = PackInto(Trace(g), indices, offsets)
	return err
}
