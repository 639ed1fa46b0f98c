package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/wirechain/pkg/topology"
)

// Options configures diagram generation.
type Options struct {
	// Labels draws vertex indices instead of bare points.
	Labels bool
}

// palette is cycled through by segment index.
var palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// SegmentColor returns the color used for segment i.
func SegmentColor(i int) string { return palette[i%len(palette)] }

// ToDOT converts a decomposition of g to an undirected DOT graph.
// Isolated vertices are left out.
func ToDOT(g *topology.Graph, d topology.Decomposition, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  edge [penwidth=2];\n")
	buf.WriteString("\n")

	for v, k := range g.Classify() {
		if k == topology.Isolated {
			continue
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", v, strings.Join(fmtAttrs(v, k, opts.Labels), ", "))
	}

	buf.WriteString("\n")
	for i := 0; i < d.Len(); i++ {
		seg := d.Segment(i)
		color := SegmentColor(i)
		for j := 1; j < len(seg); j++ {
			writeEdge(&buf, seg[j-1], seg[j], i, color)
		}
		if d.IsClosed(i) && len(seg) > 0 {
			writeEdge(&buf, seg[len(seg)-1], seg[0], i, color)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeEdge(buf *bytes.Buffer, u, v, seg int, color string) {
	fmt.Fprintf(buf, "  %d -- %d [color=%q, tooltip=\"segment %d\"];\n", u, v, color, seg)
}

func fmtAttrs(v int, k topology.Kind, labels bool) []string {
	if labels {
		attrs := []string{fmt.Sprintf("label=\"%d\"", v), "shape=circle", "fontsize=10", "width=0.3", "fixedsize=true"}
		if k.IsEndpoint() {
			attrs = append(attrs, "style=filled", "fillcolor=black", "fontcolor=white")
		}
		return attrs
	}
	if k.IsEndpoint() {
		return []string{"shape=point", "width=0.12", "color=black", fmt.Sprintf("tooltip=\"%d (%s)\"", v, k)}
	}
	return []string{"shape=point", "width=0.05", "color=gray50", fmt.Sprintf("tooltip=\"%d\"", v)}
}
