// Package graphio reads wire graphs and writes decompositions.
//
// # Input Formats
//
// JSON, with either an explicit edge list or polygon faces (or both):
//
//	{
//	  "vertex_count": 6,
//	  "edges": [[0, 1], [1, 2]],
//	  "faces": [[3, 4, 5]]
//	}
//
// vertex_count is optional and defaults to one more than the largest index.
// Face edges are appended after the explicit edges, each shared edge once.
//
// Text, one edge per line as two whitespace-separated indices. Blank lines
// and lines starting with '#' are ignored, except for an optional header
// "# vertex_count N". Lines starting with "f" list a face:
//
//	# vertex_count 4
//	0 1
//	1 2
//	f 1 2 3
//
// [ReadFile] picks the format from the file extension (.json or text).
//
// # Output Formats
//
// [WriteJSON] emits the two arrays consumed by curve builders:
//
//	{"vertex_indices": [0, 1, 2, 3, 4, 5], "segment_offsets": [0, 3], "closed": [false, true]}
//
// With Buffers set the arrays are padded with -1 to 2*E and E entries,
// matching preallocated buffer consumers. [WriteText] writes one segment
// per line, marking closed segments with a trailing '*'.
package graphio
