package topology

import (
	errs "github.com/matzehuels/wirechain/pkg/errors"
)

// Verify checks that d is a valid maximal decomposition of g.
//
// It checks the CSR shape of d, that every edge of g is used exactly once,
// that open segments end at Leaf or Branch vertices and that every interior
// vertex is a Chain vertex. Closure flags are optional; when absent a segment
// is treated as closed if it starts at a Chain vertex.
//
// The first violation found is returned as an INTERNAL_ERROR.
func Verify(g *Graph, d Decomposition) error {
	if err := verifyShape(g, d); err != nil {
		return err
	}

	remaining := make(map[Edge]int, g.EdgeCount())
	for _, e := range g.edges {
		remaining[canonical(e)]++
	}
	use := func(seg, u, v int) error {
		k := canonical(Edge{u, v})
		if remaining[k] == 0 {
			return errs.New(errs.ErrCodeInternal, "segment %d uses edge (%d, %d) more often than the graph has it", seg, u, v)
		}
		remaining[k]--
		return nil
	}

	for i := 0; i < d.Len(); i++ {
		verts := d.Segment(i)
		closed := d.IsClosed(i)
		if len(d.Closed) == 0 {
			closed = g.Kind(verts[0]) == Chain
		}

		if closed {
			for _, v := range verts {
				if g.Kind(v) != Chain {
					return errs.New(errs.ErrCodeInternal, "closed segment %d passes through %s vertex %d", i, g.Kind(v), v)
				}
			}
		} else {
			if len(verts) < 2 {
				return errs.New(errs.ErrCodeInternal, "open segment %d has %d vertices", i, len(verts))
			}
			first, last := verts[0], verts[len(verts)-1]
			if !g.Kind(first).IsEndpoint() || !g.Kind(last).IsEndpoint() {
				return errs.New(errs.ErrCodeInternal, "open segment %d ends at %s/%s vertices %d, %d",
					i, g.Kind(first), g.Kind(last), first, last)
			}
			for _, v := range verts[1 : len(verts)-1] {
				if g.Kind(v) != Chain {
					return errs.New(errs.ErrCodeInternal, "segment %d has interior %s vertex %d", i, g.Kind(v), v)
				}
			}
		}

		for j := 1; j < len(verts); j++ {
			if err := use(i, verts[j-1], verts[j]); err != nil {
				return err
			}
		}
		if closed {
			if err := use(i, verts[len(verts)-1], verts[0]); err != nil {
				return err
			}
		}
	}

	for e, n := range remaining {
		if n > 0 {
			return errs.New(errs.ErrCodeInternal, "edge (%d, %d) is not covered by any segment", e.U, e.V)
		}
	}
	return nil
}

func verifyShape(g *Graph, d Decomposition) error {
	if len(d.Closed) != 0 && len(d.Closed) != len(d.Offsets) {
		return errs.New(errs.ErrCodeInternal, "%d closure flags for %d segments", len(d.Closed), len(d.Offsets))
	}
	if d.Len() == 0 {
		if len(d.Indices) != 0 {
			return errs.New(errs.ErrCodeInternal, "%d indices but no segments", len(d.Indices))
		}
		return nil
	}
	if d.Offsets[0] != 0 {
		return errs.New(errs.ErrCodeInternal, "first offset is %d, want 0", d.Offsets[0])
	}
	for i := 1; i < len(d.Offsets); i++ {
		if d.Offsets[i] <= d.Offsets[i-1] {
			return errs.New(errs.ErrCodeInternal, "offsets not strictly ascending at segment %d", i)
		}
	}
	if last := d.Offsets[len(d.Offsets)-1]; last >= len(d.Indices) {
		return errs.New(errs.ErrCodeInternal, "last offset %d beyond %d indices", last, len(d.Indices))
	}
	for i, v := range d.Indices {
		if v < 0 || v >= g.VertexCount() {
			return errs.New(errs.ErrCodeInternal, "index %d references vertex %d outside [0, %d)", i, v, g.VertexCount())
		}
	}
	return nil
}

func canonical(e Edge) Edge {
	if e.U > e.V {
		return Edge{e.V, e.U}
	}
	return e
}
