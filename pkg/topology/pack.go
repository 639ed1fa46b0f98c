package topology

import (
	errs "github.com/matzehuels/wirechain/pkg/errors"
)

// Sentinel marks unused slots in fixed-capacity output buffers.
const Sentinel = -1

// Decomposition is a list of segments in CSR form.
//
// Segment i occupies Indices[Offsets[i]:Offsets[i+1]], with len(Indices)
// as the implicit boundary of the last segment. Closed reports, per segment,
// whether the segment wraps back to its first vertex.
type Decomposition struct {
	Indices []int  `json:"vertex_indices"`
	Offsets []int  `json:"segment_offsets"`
	Closed  []bool `json:"closed,omitempty"`
}

// Len returns the number of segments.
func (d Decomposition) Len() int { return len(d.Offsets) }

// Segment returns the vertex list of segment i.
// The returned slice aliases d.Indices.
func (d Decomposition) Segment(i int) []int {
	end := len(d.Indices)
	if i+1 < len(d.Offsets) {
		end = d.Offsets[i+1]
	}
	return d.Indices[d.Offsets[i]:end]
}

// IsClosed reports whether segment i is a cycle. Decompositions decoded
// without closure flags report every segment as open.
func (d Decomposition) IsClosed(i int) bool {
	return i < len(d.Closed) && d.Closed[i]
}

// Segments expands the decomposition back into one slice per segment.
func (d Decomposition) Segments() []Segment {
	out := make([]Segment, d.Len())
	for i := range out {
		out[i] = Segment{
			Vertices: append([]int(nil), d.Segment(i)...),
			Closed:   d.IsClosed(i),
		}
	}
	return out
}

// Pack concatenates segments, in order, into a Decomposition.
func Pack(segs []Segment) Decomposition {
	total := 0
	for _, s := range segs {
		total += len(s.Vertices)
	}
	d := Decomposition{
		Indices: make([]int, 0, total),
		Offsets: make([]int, 0, len(segs)),
		Closed:  make([]bool, 0, len(segs)),
	}
	for _, s := range segs {
		d.Offsets = append(d.Offsets, len(d.Indices))
		d.Indices = append(d.Indices, s.Vertices...)
		d.Closed = append(d.Closed, s.Closed)
	}
	return d
}

// PackInto writes segments into caller-owned buffers and returns how many
// slots of each were used. Slots past the returned counts are not touched.
//
// If either buffer is too short, nothing is written and a BUFFER_TOO_SMALL
// error is returned.
func PackInto(segs []Segment, indices, offsets []int) (nIdx, nSeg int, err error) {
	total := 0
	for _, s := range segs {
		total += len(s.Vertices)
	}
	if total > len(indices) {
		return 0, 0, errs.New(errs.ErrCodeBufferTooSmall,
			"index buffer holds %d entries, need %d", len(indices), total)
	}
	if len(segs) > len(offsets) {
		return 0, 0, errs.New(errs.ErrCodeBufferTooSmall,
			"offset buffer holds %d entries, need %d", len(offsets), len(segs))
	}

	for _, s := range segs {
		offsets[nSeg] = nIdx
		nSeg++
		nIdx += copy(indices[nIdx:], s.Vertices)
	}
	return nIdx, nSeg, nil
}

// NewBuffers allocates sentinel-filled output buffers large enough for any
// graph with edgeCount edges: 2*edgeCount indices and edgeCount offsets.
func NewBuffers(edgeCount int) (indices, offsets []int) {
	indices = make([]int, 2*edgeCount)
	offsets = make([]int, edgeCount)
	for i := range indices {
		indices[i] = Sentinel
	}
	for i := range offsets {
		offsets[i] = Sentinel
	}
	return indices, offsets
}

// Trim returns buf without its Sentinel entries.
func Trim(buf []int) []int {
	out := make([]int, 0, len(buf))
	for _, x := range buf {
		if x != Sentinel {
			out = append(out, x)
		}
	}
	return out
}

// Edges returns the edges walked by the segments, in segment order. For a
// valid decomposition of g this is a permutation of g's edge multiset, so it
// is enough to rebuild the topology from a stored result.
func (d Decomposition) Edges() []Edge {
	var out []Edge
	for i := 0; i < d.Len(); i++ {
		seg := d.Segment(i)
		for j := 1; j < len(seg); j++ {
			out = append(out, Edge{U: seg[j-1], V: seg[j]})
		}
		if d.IsClosed(i) && len(seg) > 0 {
			out = append(out, Edge{U: seg[len(seg)-1], V: seg[0]})
		}
	}
	return out
}
