package topology

import "testing"

func TestSummarize(t *testing.T) {
	// Star around 0, a path 4-5-6, a triangle 7-8-9 and isolated vertex 10.
	in := edges(
		[2]int{0, 1}, [2]int{0, 2}, [2]int{0, 3},
		[2]int{4, 5}, [2]int{5, 6},
		[2]int{7, 8}, [2]int{8, 9}, [2]int{9, 7},
	)
	g, err := NewGraph(11, in)
	if err != nil {
		t.Fatalf("NewGraph() error: %v", err)
	}
	d := Pack(Trace(g))

	got := Summarize(g, d)
	want := Stats{
		Vertices:    11,
		Edges:       8,
		Isolated:    1,
		Leaves:      5,
		Chains:      4,
		Branches:    1,
		Components:  3,
		Segments:    5,
		Open:        4,
		Closed:      1,
		LongestEdge: 3,
		Reduction:   8.0 / 5.0,
	}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}
}

func TestSummarize_Empty(t *testing.T) {
	g, err := NewGraph(0, nil)
	if err != nil {
		t.Fatalf("NewGraph() error: %v", err)
	}
	got := Summarize(g, Pack(Trace(g)))
	if got != (Stats{}) {
		t.Errorf("Summarize() = %+v, want zero value", got)
	}
}
