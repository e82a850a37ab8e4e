package api

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/radialtree/pkg/buildinfo"
	"github.com/matzehuels/radialtree/pkg/errors"
	"github.com/matzehuels/radialtree/pkg/graph"
	"github.com/matzehuels/radialtree/pkg/pipeline"
	"github.com/matzehuels/radialtree/pkg/store"
)

// LayoutRequest is the body of POST /layouts.
type LayoutRequest struct {
	Graph   graph.Graph      `json:"graph"`
	Options pipeline.Options `json:"options"`
}

// LayoutResponse wraps a stored layout with pipeline details.
type LayoutResponse struct {
	graph.Layout
	CacheHit bool `json:"cache_hit"`
	Partial  bool `json:"partial"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.Snapshot())
}

func (s *Server) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if len(req.Graph.Nodes) == 0 {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "graph has no nodes"))
		return
	}

	req.Options.Logger = s.logger
	res, err := s.runner.Layout(r.Context(), req.Graph, req.Options)
	if err != nil {
		s.writeError(w, err)
		return
	}

	id, err := s.store.Put(r.Context(), res.Layout)
	if err != nil {
		s.writeError(w, err)
		return
	}
	stored, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Location", "/layouts/"+id)
	writeJSON(w, http.StatusCreated, LayoutResponse{
		Layout:   stored,
		CacheHit: res.CacheHit,
		Partial:  stored.Partial(),
	})
}

func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	limit := DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "limit must be a non-negative integer, got %q", v))
			return
		}
		limit = n
	}

	list, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if list == nil {
		list = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	l, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" || format == pipeline.FormatJSON {
		writeJSON(w, http.StatusOK, l)
		return
	}
	data, err := pipeline.Export(r.Context(), l, format)
	if err != nil {
		s.writeError(w, err)
		return
	}
	switch format {
	case pipeline.FormatYAML:
		w.Header().Set("Content-Type", "application/yaml")
	case pipeline.FormatDOT:
		w.Header().Set("Content-Type", "text/vnd.graphviz")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := s.decode(w, r, &opts); err != nil {
		s.writeError(w, err)
		return
	}
	opts.Logger = s.logger
	l, hit, err := s.runner.Grid(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, LayoutResponse{Layout: l, CacheHit: hit})
}

// decode reads a JSON body into v. Numbers stay json.Number so record
// fields keep their exact spelling.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", s.maxBody)
		}
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body")
	}
	return nil
}

// writeError maps err to a status code: client errors are 400, missing
// layouts 404, everything else 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errors.ErrCodeNotFound):
		status = http.StatusNotFound
	case errors.IsClientError(err):
		status = http.StatusBadRequest
	}

	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
		msg = "internal error"
	}
	writeJSON(w, status, ErrorResponse{Error: msg, Code: string(errors.GetCode(err))})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, "encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
