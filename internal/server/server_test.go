package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wirechain/pkg/cache"
	"github.com/matzehuels/wirechain/pkg/observability"
	"github.com/matzehuels/wirechain/pkg/pipeline"
	"github.com/matzehuels/wirechain/pkg/store"
)

const lollipopBody = `{"vertex_count": 5, "edges": [[0,1],[1,2],[2,3],[3,4],[4,2]]}`

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, store.NewMemoryStore(), logger)
	opts.Logger = logger
	ts := httptest.NewServer(New(runner, opts).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, body string, header map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/v1/decompose", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, ts *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp := get(t, ts, "/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body := decode[healthResponse](t, resp); body.Status != "ok" {
		t.Errorf("status field = %q, want ok", body.Status)
	}
}

func TestDecompose(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp := post(t, ts, lollipopBody, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decode[DecompositionResponse](t, resp)

	if want := []int{0, 1, 2, 2, 3, 4, 2}; !reflect.DeepEqual(body.VertexIndices, want) {
		t.Errorf("vertex_indices = %v, want %v", body.VertexIndices, want)
	}
	if want := []int{0, 3}; !reflect.DeepEqual(body.SegmentOffsets, want) {
		t.Errorf("segment_offsets = %v, want %v", body.SegmentOffsets, want)
	}
	if body.Stats.Segments != 2 || body.Stats.Branches != 1 {
		t.Errorf("stats = %+v", body.Stats)
	}
	if len(body.GraphHash) != 64 {
		t.Errorf("graph_hash = %q", body.GraphHash)
	}
	if id := resp.Header.Get(HeaderRequestID); id == "" || id != body.RequestID {
		t.Errorf("request id header %q, body %q", id, body.RequestID)
	}
}

func TestDecompose_EchoesRequestID(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp := post(t, ts, lollipopBody, map[string]string{HeaderRequestID: "abc-123"})
	if got := resp.Header.Get(HeaderRequestID); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want abc-123", got)
	}
}

func TestDecompose_Buffers(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp := post(t, ts, `{"edges": [[0,1],[1,2],[2,3]], "buffers": true, "verify": true}`, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decode[DecompositionResponse](t, resp)

	if want := []int{0, 1, 2, 3, -1, -1}; !reflect.DeepEqual(body.VertexIndices, want) {
		t.Errorf("vertex_indices = %v, want %v", body.VertexIndices, want)
	}
	if want := []int{0, -1, -1}; !reflect.DeepEqual(body.SegmentOffsets, want) {
		t.Errorf("segment_offsets = %v, want %v", body.SegmentOffsets, want)
	}
	if body.Closed != nil {
		t.Errorf("closed = %v, want omitted for buffers", body.Closed)
	}
}

func TestDecompose_Faces(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp := post(t, ts, `{"faces": [[0,1,2]]}`, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decode[DecompositionResponse](t, resp)
	if body.Stats.Closed != 1 || body.Stats.Edges != 3 {
		t.Errorf("stats = %+v, want one closed triangle", body.Stats)
	}
}

func TestDecompose_Errors(t *testing.T) {
	ts := newTestServer(t, Options{MaxBodyBytes: 64})

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"out of range", `{"vertex_count": 2, "edges": [[0,5]]}`, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"malformed", `{"edges": [[0,1]`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"unknown field", `{"edgez": []}`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad face", `{"faces": [[0,1]]}`, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"too large", `{"edges": [` + strings.Repeat("[0,1],", 100) + `[0,1]]}`, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts, tt.body, nil)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			body := decode[errorResponse](t, resp)
			if body.Code != tt.code {
				t.Errorf("code = %q, want %q (message %q)", body.Code, tt.code, body.Message)
			}
			if body.RequestID == "" {
				t.Error("error response should carry the request id")
			}
		})
	}
}

func TestGetDecomposition(t *testing.T) {
	ts := newTestServer(t, Options{})

	created := decode[DecompositionResponse](t, post(t, ts, lollipopBody, nil))

	resp := get(t, ts, "/v1/decompositions/"+created.GraphHash)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	got := decode[DecompositionResponse](t, resp)
	if !reflect.DeepEqual(got.VertexIndices, created.VertexIndices) ||
		!reflect.DeepEqual(got.SegmentOffsets, created.SegmentOffsets) {
		t.Errorf("stored = %+v, want %+v", got, created)
	}
	if got.Stats != created.Stats {
		t.Errorf("stats = %+v, want %+v", got.Stats, created.Stats)
	}
}

func TestGetDecomposition_Errors(t *testing.T) {
	ts := newTestServer(t, Options{})

	tests := []struct {
		path   string
		status int
		code   string
	}{
		{"/v1/decompositions/" + strings.Repeat("ab", 32), http.StatusNotFound, "NOT_FOUND"},
		{"/v1/decompositions/not-a-hash", http.StatusBadRequest, "INVALID_INPUT"},
		{"/v1/nothing", http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := get(t, ts, tt.path)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if body := decode[errorResponse](t, resp); body.Code != tt.code {
				t.Errorf("code = %q, want %q", body.Code, tt.code)
			}
		})
	}
}

func TestRenderDecomposition(t *testing.T) {
	ts := newTestServer(t, Options{})

	created := decode[DecompositionResponse](t, post(t, ts, lollipopBody, nil))
	base := "/v1/decompositions/" + created.GraphHash + "/svg"

	resp := get(t, ts, base+"?format=dot&labels=true")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/vnd.graphviz") {
		t.Errorf("Content-Type = %q", ct)
	}
	data, _ := io.ReadAll(resp.Body)
	if !strings.HasPrefix(string(data), "graph G {") || !strings.Contains(string(data), "4 -- 2") {
		t.Errorf("body = %s", data)
	}

	if resp := get(t, ts, base+"?format=png"); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("format=png status = %d, want 400", resp.StatusCode)
	}
	if resp := get(t, ts, base+"?labels=maybe"); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("labels=maybe status = %d, want 400", resp.StatusCode)
	}
}

func TestHTTPHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()
	hooks := &recordingHTTPHooks{routes: make(chan string, 4)}
	observability.SetHTTPHooks(hooks)

	ts := newTestServer(t, Options{})
	get(t, ts, "/v1/decompositions/"+strings.Repeat("ab", 32))

	select {
	case route := <-hooks.routes:
		if route != "/v1/decompositions/{hash}" {
			t.Errorf("route = %q, want pattern", route)
		}
	case <-time.After(time.Second):
		t.Fatal("OnResponse not called")
	}
}

func TestRequestIDFrom_Empty(t *testing.T) {
	if id := RequestIDFrom(context.Background()); id != "" {
		t.Errorf("RequestIDFrom(empty) = %q", id)
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	routes chan string
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, route string, _ int, _ time.Duration) {
	h.routes <- route
}
