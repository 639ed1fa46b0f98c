package graphio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	errs "github.com/matzehuels/wirechain/pkg/errors"
	"github.com/matzehuels/wirechain/pkg/mesh"
	"github.com/matzehuels/wirechain/pkg/topology"
)

// Supported input formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Input is a graph as read from a file or request body.
type Input struct {
	VertexCount int
	Edges       []topology.Edge
}

// Graph validates the input and builds a topology.Graph.
func (in Input) Graph() (*topology.Graph, error) {
	return topology.NewGraph(in.VertexCount, in.Edges)
}

// Canonical returns a stable byte encoding of the input for content hashing.
// Edge order is preserved because it determines the decomposition.
func (in Input) Canonical() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "v%d;", in.VertexCount)
	for _, e := range in.Edges {
		fmt.Fprintf(&buf, "%d,%d;", e.U, e.V)
	}
	return buf.Bytes()
}

// Document is the JSON wire form of an Input.
type Document struct {
	VertexCount *int     `json:"vertex_count,omitempty"`
	Edges       [][2]int `json:"edges,omitempty"`
	Faces       [][]int  `json:"faces,omitempty"`
}

// Input converts the document, deriving face edges and inferring the vertex
// count when it is absent.
func (doc Document) Input() (Input, error) {
	in := Input{Edges: make([]topology.Edge, 0, len(doc.Edges))}
	for _, p := range doc.Edges {
		in.Edges = append(in.Edges, topology.Edge{U: p[0], V: p[1]})
	}
	inferred := max(inferVertexCount(in.Edges), mesh.VertexCount(doc.Faces))
	if len(doc.Faces) > 0 {
		fe, err := mesh.EdgesFromFaces(doc.Faces)
		if err != nil {
			return Input{}, err
		}
		in.Edges = append(in.Edges, fe...)
	}

	if doc.VertexCount != nil {
		in.VertexCount = *doc.VertexCount
	} else {
		in.VertexCount = inferred
	}
	return in, nil
}

// DocumentOf returns the JSON wire form of in.
func DocumentOf(in Input) Document {
	vc := in.VertexCount
	doc := Document{VertexCount: &vc, Edges: make([][2]int, len(in.Edges))}
	for i, e := range in.Edges {
		doc.Edges[i] = [2]int{e.U, e.V}
	}
	return doc
}

func inferVertexCount(edges []topology.Edge) int {
	n := 0
	for _, e := range edges {
		n = max(n, e.U+1, e.V+1)
	}
	return n
}

// ReadJSON decodes a JSON graph document from r.
func ReadJSON(r io.Reader) (Input, error) {
	var doc Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return Input{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode graph JSON")
	}
	return doc.Input()
}

// ReadText decodes a text edge list from r.
func ReadText(r io.Reader) (Input, error) {
	var (
		edges       []topology.Edge
		faces       [][]int
		vertexCount = -1
		line        int
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if strings.HasPrefix(text, "#") {
			fields := strings.Fields(strings.TrimPrefix(text, "#"))
			if len(fields) == 2 && fields[0] == "vertex_count" {
				n, err := strconv.Atoi(fields[1])
				if err != nil {
					return Input{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "line %d: vertex_count", line)
				}
				if n < 0 {
					return Input{}, errs.New(errs.ErrCodeInvalidArgument, "line %d: vertex_count must not be negative, got %d", line, n)
				}
				vertexCount = n
			}
			continue
		}

		fields := strings.Fields(text)
		if fields[0] == "f" {
			face, err := atoiAll(fields[1:])
			if err != nil {
				return Input{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "line %d: face", line)
			}
			faces = append(faces, face)
			continue
		}
		if len(fields) != 2 {
			return Input{}, errs.New(errs.ErrCodeInvalidFormat, "line %d: expected 2 vertex indices, got %d fields", line, len(fields))
		}
		pair, err := atoiAll(fields)
		if err != nil {
			return Input{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "line %d: edge", line)
		}
		edges = append(edges, topology.Edge{U: pair[0], V: pair[1]})
	}
	if err := sc.Err(); err != nil {
		return Input{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "read edge list")
	}

	doc := Document{Faces: faces, Edges: make([][2]int, len(edges))}
	for i, e := range edges {
		doc.Edges[i] = [2]int{e.U, e.V}
	}
	if vertexCount >= 0 {
		doc.VertexCount = &vertexCount
	}
	return doc.Input()
}

func atoiAll(fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// Read decodes r in the given format.
func Read(r io.Reader, format string) (Input, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatText:
		return ReadText(r)
	default:
		return Input{}, errs.New(errs.ErrCodeUnsupported, "unsupported input format %q", format)
	}
}

// DetectFormat returns the input format implied by a file name.
func DetectFormat(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatText
}

// ReadFile opens path and decodes it in the format given by its extension.
func ReadFile(path string) (Input, error) {
	if err := errs.ValidatePath(path); err != nil {
		return Input{}, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Input{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return Input{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, DetectFormat(path))
}
