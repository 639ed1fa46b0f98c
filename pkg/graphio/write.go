package graphio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/matzehuels/wirechain/pkg/topology"
)

// WriteOptions control decomposition output.
type WriteOptions struct {
	// Buffers pads the arrays with topology.Sentinel to 2*EdgeCount indices
	// and EdgeCount offsets.
	Buffers   bool
	EdgeCount int
	// Indent pretty-prints JSON output.
	Indent bool
}

// WriteJSON encodes d as JSON.
func WriteJSON(w io.Writer, d topology.Decomposition, opts WriteOptions) error {
	out := d
	if opts.Buffers {
		out = Padded(d, opts.EdgeCount)
	}
	enc := json.NewEncoder(w)
	if opts.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Padded returns d with its arrays extended to buffer capacity for
// edgeCount edges, filling the tail with topology.Sentinel. Closure flags
// are dropped since buffer consumers do not read them.
func Padded(d topology.Decomposition, edgeCount int) topology.Decomposition {
	indices, offsets := topology.NewBuffers(edgeCount)
	copy(indices, d.Indices)
	copy(offsets, d.Offsets)
	return topology.Decomposition{Indices: indices, Offsets: offsets}
}

// ReadDecomposition decodes a decomposition written by WriteJSON. Sentinel
// padding is trimmed.
func ReadDecomposition(r io.Reader) (topology.Decomposition, error) {
	var d topology.Decomposition
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return topology.Decomposition{}, fmt.Errorf("decode: %w", err)
	}
	d.Indices = topology.Trim(d.Indices)
	d.Offsets = topology.Trim(d.Offsets)
	return d, nil
}

// WriteText writes one segment per line as space-separated vertex indices.
// Closed segments end with " *".
func WriteText(w io.Writer, d topology.Decomposition) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < d.Len(); i++ {
		for j, v := range d.Segment(i) {
			if j > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.Itoa(v))
		}
		if d.IsClosed(i) {
			bw.WriteString(" *")
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteFile writes d to path as JSON or text.
func WriteFile(path, format string, d topology.Decomposition, opts WriteOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if format == FormatText {
		return WriteText(f, d)
	}
	return WriteJSON(f, d, opts)
}
