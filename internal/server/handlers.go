package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/wirechain/pkg/buildinfo"
	errs "github.com/matzehuels/wirechain/pkg/errors"
	"github.com/matzehuels/wirechain/pkg/graphio"
	"github.com/matzehuels/wirechain/pkg/pipeline"
	"github.com/matzehuels/wirechain/pkg/render"
	"github.com/matzehuels/wirechain/pkg/topology"
)

// DecomposeRequest is the body of POST /v1/decompose: a graph document plus
// run flags.
type DecomposeRequest struct {
	graphio.Document
	Verify  bool  `json:"verify,omitempty"`
	Buffers bool  `json:"buffers,omitempty"`
	Persist *bool `json:"persist,omitempty"`
}

// DecompositionResponse describes a decomposition result.
type DecompositionResponse struct {
	RequestID      string         `json:"request_id,omitempty"`
	GraphHash      string         `json:"graph_hash"`
	VertexIndices  []int          `json:"vertex_indices"`
	SegmentOffsets []int          `json:"segment_offsets"`
	Closed         []bool         `json:"closed,omitempty"`
	Stats          topology.Stats `json:"stats"`
	CacheHit       bool           `json:"cache_hit"`
	DurationMS     float64        `json:"duration_ms"`
}

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Current()})
}

// handleDecompose handles POST /v1/decompose.
//
//	200 OK: DecompositionResponse
//	400 Bad Request: malformed document or invalid graph
//	413 Request Entity Too Large: body over the configured limit
func (s *Server) handleDecompose(w http.ResponseWriter, r *http.Request) {
	var req DecomposeRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode request body"))
		return
	}

	in, err := req.Document.Input()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	persist := s.runner.Store != nil
	if req.Persist != nil {
		persist = *req.Persist
	}
	res, err := s.runner.Execute(r.Context(), in, pipeline.Options{
		Verify:  req.Verify,
		Persist: persist,
		Logger:  s.logger.With("request_id", RequestIDFrom(r.Context())),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := newResponse(res)
	resp.RequestID = RequestIDFrom(r.Context())
	if req.Buffers {
		padded := graphio.Padded(res.Decomposition, res.Graph.EdgeCount())
		resp.VertexIndices, resp.SegmentOffsets, resp.Closed = padded.Indices, padded.Offsets, nil
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleGet handles GET /v1/decompositions/{hash}.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	res, err := s.runner.Load(r.Context(), chi.URLParam(r, "hash"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp := newResponse(res)
	resp.RequestID = RequestIDFrom(r.Context())
	writeJSON(w, http.StatusOK, resp)
}

// handleRender handles GET /v1/decompositions/{hash}/svg. The optional
// query parameters format=dot and labels=true change the output.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts := pipeline.RenderOptions{Format: r.URL.Query().Get("format")}
	if v := r.URL.Query().Get("labels"); v != "" {
		labels, err := strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, r, errs.New(errs.ErrCodeInvalidInput, "labels must be a boolean, got %q", v))
			return
		}
		opts.Labels = labels
	}
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Load(r.Context(), chi.URLParam(r, "hash"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out, err := s.runner.Render(r.Context(), res, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	contentType := "image/svg+xml"
	if opts.Format == string(render.FormatDOT) {
		contentType = "text/vnd.graphviz; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func newResponse(res *pipeline.Result) DecompositionResponse {
	return DecompositionResponse{
		GraphHash:      res.GraphHash,
		VertexIndices:  res.Decomposition.Indices,
		SegmentOffsets: res.Decomposition.Offsets,
		Closed:         res.Decomposition.Closed,
		Stats:          res.Stats,
		CacheHit:       res.CacheHit,
		DurationMS:     float64(res.Duration.Microseconds()) / 1000,
	}
}

// statusFor maps an error to an HTTP status.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errs.IsClientError(err), errs.Is(err, errs.ErrCodeUnsupported):
		return http.StatusBadRequest
	case errs.Is(err, errs.ErrCodeNotFound):
		return http.StatusNotFound
	case errs.Is(err, errs.ErrCodeUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := string(errs.GetCode(err))
	msg := strings.TrimPrefix(err.Error(), code+": ")

	switch {
	case status == http.StatusRequestEntityTooLarge:
		code, msg = "PAYLOAD_TOO_LARGE", "request body exceeds the size limit"
	case status >= 500:
		s.logger.Error("request failed", "err", err, "request_id", RequestIDFrom(r.Context()))
		if code == "" {
			code = string(errs.ErrCodeInternal)
		}
		msg = "internal error"
		if status == http.StatusServiceUnavailable {
			msg = errs.UserMessage(err)
		}
	}

	writeJSON(w, status, errorResponse{Code: code, Message: msg, RequestID: RequestIDFrom(r.Context())})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
