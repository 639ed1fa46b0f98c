package graphio

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	errs "github.com/matzehuels/wirechain/pkg/errors"
	"github.com/matzehuels/wirechain/pkg/topology"
)

func TestReadJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantEdges []topology.Edge
	}{
		{
			name:      "ExplicitVertexCount",
			input:     `{"vertex_count": 6, "edges": [[0,1],[1,2]]}`,
			wantCount: 6,
			wantEdges: []topology.Edge{{U: 0, V: 1}, {U: 1, V: 2}},
		},
		{
			name:      "InferredVertexCount",
			input:     `{"edges": [[0,1],[3,2]]}`,
			wantCount: 4,
			wantEdges: []topology.Edge{{U: 0, V: 1}, {U: 3, V: 2}},
		},
		{
			name:      "FacesAfterEdges",
			input:     `{"edges": [[5,6]], "faces": [[0,1,2]]}`,
			wantCount: 7,
			wantEdges: []topology.Edge{{U: 5, V: 6}, {U: 0, V: 1}, {U: 1, V: 2}, {U: 0, V: 2}},
		},
		{
			name:      "Empty",
			input:     `{}`,
			wantCount: 0,
			wantEdges: []topology.Edge{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := ReadJSON(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ReadJSON() error: %v", err)
			}
			if in.VertexCount != tt.wantCount {
				t.Errorf("VertexCount = %d, want %d", in.VertexCount, tt.wantCount)
			}
			if !reflect.DeepEqual(in.Edges, tt.wantEdges) {
				t.Errorf("Edges = %v, want %v", in.Edges, tt.wantEdges)
			}
		})
	}
}

func TestReadJSON_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errs.Code
	}{
		{"Malformed", `{"edges": [[0,1]`, errs.ErrCodeInvalidFormat},
		{"UnknownField", `{"edgez": []}`, errs.ErrCodeInvalidFormat},
		{"BadFace", `{"faces": [[0,1]]}`, errs.ErrCodeInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if !errs.Is(err, tt.code) {
				t.Errorf("ReadJSON() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestReadText(t *testing.T) {
	input := `# a small wire graph
# vertex_count 8

0 1
1	2
f 3 4 5
`
	in, err := ReadText(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadText() error: %v", err)
	}
	if in.VertexCount != 8 {
		t.Errorf("VertexCount = %d, want 8", in.VertexCount)
	}
	want := []topology.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 3, V: 4}, {U: 4, V: 5}, {U: 3, V: 5}}
	if !reflect.DeepEqual(in.Edges, want) {
		t.Errorf("Edges = %v, want %v", in.Edges, want)
	}
}

func TestReadText_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errs.Code
	}{
		{"ThreeFields", "0 1 2\n", errs.ErrCodeInvalidFormat},
		{"NotNumber", "0 x\n", errs.ErrCodeInvalidFormat},
		{"BadHeader", "# vertex_count many\n", errs.ErrCodeInvalidFormat},
		{"BadFace", "f 0 a 2\n", errs.ErrCodeInvalidFormat},
		{"NegativeHeader", "# vertex_count -3\n0 1\n", errs.ErrCodeInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadText(strings.NewReader(tt.input))
			if !errs.Is(err, tt.code) {
				t.Errorf("ReadText() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "graph.json")
	if err := os.WriteFile(jsonPath, []byte(`{"edges": [[0,1]]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	txtPath := filepath.Join(dir, "graph.edges")
	if err := os.WriteFile(txtPath, []byte("0 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, p := range []string{jsonPath, txtPath} {
		in, err := ReadFile(p)
		if err != nil {
			t.Fatalf("ReadFile(%s) error: %v", p, err)
		}
		if in.VertexCount != 2 || len(in.Edges) != 1 {
			t.Errorf("ReadFile(%s) = %+v", p, in)
		}
	}

	_, err := ReadFile(filepath.Join(dir, "missing.json"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("ReadFile(missing) error = %v, want %s", err, errs.ErrCodeFileNotFound)
	}
}

func TestRead_UnsupportedFormat(t *testing.T) {
	_, err := Read(strings.NewReader(""), "obj")
	if !errs.Is(err, errs.ErrCodeUnsupported) {
		t.Errorf("Read() error = %v, want %s", err, errs.ErrCodeUnsupported)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]string{
		"a.json":      FormatJSON,
		"A.JSON":      FormatJSON,
		"a.txt":       FormatText,
		"edges":       FormatText,
		"dir/x.edges": FormatText,
	}
	for path, want := range tests {
		if got := DetectFormat(path); got != want {
			t.Errorf("DetectFormat(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestInput_Canonical(t *testing.T) {
	a := Input{VertexCount: 3, Edges: []topology.Edge{{U: 0, V: 1}, {U: 1, V: 2}}}
	b := Input{VertexCount: 3, Edges: []topology.Edge{{U: 1, V: 2}, {U: 0, V: 1}}}
	c := Input{VertexCount: 4, Edges: a.Edges}

	if !bytes.Equal(a.Canonical(), a.Canonical()) {
		t.Error("Canonical() should be deterministic")
	}
	if bytes.Equal(a.Canonical(), b.Canonical()) {
		t.Error("edge order should change the canonical encoding")
	}
	if bytes.Equal(a.Canonical(), c.Canonical()) {
		t.Error("vertex count should change the canonical encoding")
	}
}

func TestDocumentOf(t *testing.T) {
	in := Input{VertexCount: 5, Edges: []topology.Edge{{U: 0, V: 4}}}
	got, err := DocumentOf(in).Input()
	if err != nil {
		t.Fatalf("Input() error: %v", err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Errorf("DocumentOf(in).Input() = %+v, want %+v", got, in)
	}
}

func TestDocument_InputInfersVertexCount(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want int
	}{
		{"FacesOnly", Document{Faces: [][]int{{0, 1, 2}, {2, 1, 3}}}, 4},
		{"EdgesBeyondFaces", Document{Edges: [][2]int{{6, 7}}, Faces: [][]int{{0, 1, 2}}}, 8},
		{"Empty", Document{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := tt.doc.Input()
			if err != nil {
				t.Fatalf("Input() error: %v", err)
			}
			if in.VertexCount != tt.want {
				t.Errorf("VertexCount = %d, want %d", in.VertexCount, tt.want)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	d, err := topology.Decompose(6, []topology.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 3, V: 4}, {U: 4, V: 5}, {U: 5, V: 3}})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, d, WriteOptions{}); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	want := `{"vertex_indices":[0,1,2,3,4,5],"segment_offsets":[0,3],"closed":[false,true]}` + "\n"
	if buf.String() != want {
		t.Errorf("WriteJSON() = %s, want %s", buf.String(), want)
	}

	buf.Reset()
	if err := WriteJSON(&buf, d, WriteOptions{Buffers: true, EdgeCount: 5}); err != nil {
		t.Fatalf("WriteJSON(buffers) error: %v", err)
	}
	want = `{"vertex_indices":[0,1,2,3,4,5,-1,-1,-1,-1],"segment_offsets":[0,3,-1,-1,-1]}` + "\n"
	if buf.String() != want {
		t.Errorf("WriteJSON(buffers) = %s, want %s", buf.String(), want)
	}

	back, err := ReadDecomposition(&buf)
	if err != nil {
		t.Fatalf("ReadDecomposition() error: %v", err)
	}
	if !reflect.DeepEqual(back.Indices, d.Indices) || !reflect.DeepEqual(back.Offsets, d.Offsets) {
		t.Errorf("ReadDecomposition() = %+v, want trimmed %+v", back, d)
	}
}

func TestWriteText(t *testing.T) {
	d := topology.Decomposition{
		Indices: []int{0, 1, 2, 3, 4, 5},
		Offsets: []int{0, 3},
		Closed:  []bool{false, true},
	}
	var buf bytes.Buffer
	if err := WriteText(&buf, d); err != nil {
		t.Fatalf("WriteText() error: %v", err)
	}
	if want := "0 1 2\n3 4 5 *\n"; buf.String() != want {
		t.Errorf("WriteText() = %q, want %q", buf.String(), want)
	}
}

func TestWriteFile(t *testing.T) {
	d := topology.Decomposition{Indices: []int{0, 1}, Offsets: []int{0}, Closed: []bool{false}}
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := WriteFile(path, FormatText, d, WriteOptions{}); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "0 1\n" {
		t.Errorf("file contents = %q", data)
	}
}
