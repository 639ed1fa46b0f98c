package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	errs "github.com/matzehuels/wirechain/pkg/errors"
	"github.com/matzehuels/wirechain/pkg/topology"
)

func TestDecompose(t *testing.T) {
	cfg, _ := testEnv(t, "none")
	in := writeInput(t, "g.json", lollipopJSON)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "text",
			args: []string{"--format", "text"},
			want: "0 1 2\n2 3 4 2\n",
		},
		{
			name: "json",
			args: nil,
			want: `{"vertex_indices":[0,1,2,2,3,4,2],"segment_offsets":[0,3],"closed":[false,false]}` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--config", cfg, "decompose", in}, tt.args...)
			out, err := execute(t, args...)
			if err != nil {
				t.Fatalf("decompose: %v", err)
			}
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestDecompose_Buffers(t *testing.T) {
	cfg, _ := testEnv(t, "none")
	in := writeInput(t, "path.txt", "0 1\n1 2\n2 3\n")

	out, err := execute(t, "--config", cfg, "decompose", in, "--buffers")
	if err != nil {
		t.Fatalf("decompose: %v", err)
	}
	var got struct {
		Indices []int `json:"vertex_indices"`
		Offsets []int `json:"segment_offsets"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	wantIdx := []int{0, 1, 2, 3, -1, -1}
	wantOff := []int{0, -1, -1}
	if !equalInts(got.Indices, wantIdx) || !equalInts(got.Offsets, wantOff) {
		t.Errorf("buffers = %v / %v, want %v / %v", got.Indices, got.Offsets, wantIdx, wantOff)
	}
}

func TestDecompose_OutputFile(t *testing.T) {
	cfg, _ := testEnv(t, "file")
	in := writeInput(t, "g.json", lollipopJSON)
	dst := filepath.Join(t.TempDir(), "out.txt")

	out, err := execute(t, "--config", cfg, "decompose", in, "-o", dst, "--format", "text", "--verify")
	if err != nil {
		t.Fatalf("decompose: %v", err)
	}
	if !strings.Contains(out, "Decomposed") || !strings.Contains(out, dst) {
		t.Errorf("status output = %q", out)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "0 1 2\n2 3 4 2\n" {
		t.Errorf("file = %q", data)
	}
}

func TestDecompose_Errors(t *testing.T) {
	cfg, _ := testEnv(t, "none")
	good := writeInput(t, "g.json", lollipopJSON)
	bad := writeInput(t, "bad.json", `{"vertex_count": 2, "edges": [[0,5]]}`)

	tests := []struct {
		name string
		args []string
		code errs.Code
	}{
		{"missing file", []string{filepath.Join(t.TempDir(), "nope.json")}, errs.ErrCodeFileNotFound},
		{"edge out of range", []string{bad}, errs.ErrCodeInvalidArgument},
		{"unknown output format", []string{good, "--format", "yaml"}, errs.ErrCodeUnsupported},
		{"buffers as text", []string{good, "--format", "text", "--buffers"}, errs.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--config", cfg, "decompose"}, tt.args...)
			_, err := execute(t, args...)
			if !errs.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestStats_JSON(t *testing.T) {
	cfg, _ := testEnv(t, "none")
	in := writeInput(t, "g.json", lollipopJSON)

	out, err := execute(t, "--config", cfg, "stats", in, "--json")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	var got struct {
		GraphHash string         `json:"graph_hash"`
		Stats     topology.Stats `json:"stats"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(got.GraphHash) != 64 {
		t.Errorf("graph_hash = %q", got.GraphHash)
	}
	s := got.Stats
	if s.Vertices != 5 || s.Edges != 5 || s.Segments != 2 || s.Leaves != 1 || s.Branches != 1 {
		t.Errorf("stats = %+v", s)
	}
}

func TestStats_Table(t *testing.T) {
	cfg, _ := testEnv(t, "none")
	in := writeInput(t, "g.json", lollipopJSON)

	out, err := execute(t, "--config", cfg, "stats", in)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(out, "g.json") {
		t.Errorf("table output missing title:\n%s", out)
	}
}

func TestRender_DOT(t *testing.T) {
	cfg, _ := testEnv(t, "none")
	in := writeInput(t, "g.json", lollipopJSON)
	dst := filepath.Join(t.TempDir(), "g.dot")

	if _, err := execute(t, "--config", cfg, "render", in, "-o", dst); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "graph G {") {
		t.Errorf("dot output = %q", data)
	}
}

func TestRenderFormat(t *testing.T) {
	tests := []struct {
		flag, output string
		want         string
		wantErr      bool
	}{
		{"", "", "svg", false},
		{"", "out.dot", "dot", false},
		{"", "out.GV", "dot", false},
		{"", "out.svg", "svg", false},
		{"dot", "out.svg", "dot", false},
		{"png", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.flag+"|"+tt.output, func(t *testing.T) {
			got, err := renderFormat(tt.flag, tt.output)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && string(got) != tt.want {
				t.Errorf("format = %q, want %q", got, tt.want)
			}
		})
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
