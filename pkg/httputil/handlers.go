package httputil

import (
	"encoding/base64"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saxonthune/flowgrid/pkg/errors"
	"github.com/saxonthune/flowgrid/pkg/geom"
	"github.com/saxonthune/flowgrid/pkg/graph"
	"github.com/saxonthune/flowgrid/pkg/pipeline"
	"github.com/saxonthune/flowgrid/pkg/route"
	"github.com/saxonthune/flowgrid/pkg/store"
)

// layoutRequest is the body for /api/layout and /api/pipeline.
type layoutRequest struct {
	Document graph.Document   `json:"document"`
	Options  pipeline.Options `json:"options"`
}

// layoutResponse is the body for /api/layout.
type layoutResponse struct {
	Layout graph.Layout `json:"layout"`
	Cached bool         `json:"cached"`
}

// pipelineResponse is the body for /api/pipeline. Artifacts are
// base64-encoded since PNG and PDF are binary.
type pipelineResponse struct {
	DocHash   string            `json:"doc_hash"`
	Layout    graph.Layout      `json:"layout"`
	Artifacts map[string]string `json:"artifacts"`
	Cached    bool              `json:"cached"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeLayoutRequest(r *http.Request) (layoutRequest, error) {
	var req layoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed request body")
	}
	if err := req.Document.Validate(); err != nil {
		return req, errors.Wrap(errors.ErrCodeInvalidDocument, err, "invalid document")
	}
	return req, nil
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, err := decodeLayoutRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	req.Document.EnsureEdgeIDs()

	layout, hit, err := s.runner.ComputeLayoutWithCacheInfo(r.Context(), req.Document, "", req.Options)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "layout failed"))
		return
	}
	writeJSON(w, http.StatusOK, layoutResponse{Layout: layout, Cached: hit})
}

// routeResponse is the body for /api/route.
type routeResponse struct {
	Routes map[string][]geom.Point `json:"routes"`
}

// handleRoute routes edges against the coordinates already in the document,
// without moving any node. This serves canvas editors re-routing after a
// manual node drag.
func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	req, err := decodeLayoutRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	req.Document.EnsureEdgeIDs()

	obstacles := make([]route.Obstacle, len(req.Document.Nodes))
	endpoints := make(map[string]route.Endpoint, len(req.Document.Nodes))
	for i, n := range req.Document.Nodes {
		obstacles[i] = route.Obstacle{ID: n.ID, Rect: n.Rect()}
		endpoints[n.ID] = route.Endpoint{ID: n.ID, Rect: n.Rect()}
	}
	reqs := make([]route.Edge, len(req.Document.Edges))
	for i, e := range req.Document.Edges {
		reqs[i] = route.Edge{ID: e.ID, Source: endpoints[e.SourceID], Target: endpoints[e.TargetID]}
	}

	routes := route.Routes(reqs, obstacles, route.Options{
		Padding:     req.Options.Padding,
		BendPenalty: req.Options.BendPenalty,
	})
	writeJSON(w, http.StatusOK, routeResponse{Routes: routes})
}

func (s *Server) handlePipeline(w http.ResponseWriter, r *http.Request) {
	req, err := decodeLayoutRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), req.Document, req.Options)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "pipeline failed"))
		return
	}

	artifacts := make(map[string]string, len(result.Artifacts))
	for format, data := range result.Artifacts {
		artifacts[format] = base64.StdEncoding.EncodeToString(data)
	}
	writeJSON(w, http.StatusOK, pipelineResponse{
		DocHash:   result.DocHash,
		Layout:    result.Layout,
		Artifacts: artifacts,
		Cached:    result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
	})
}

// saveLayoutRequest is the body for POST /api/layouts.
type saveLayoutRequest struct {
	ID       string           `json:"id,omitempty"`
	Name     string           `json:"name,omitempty"`
	Document graph.Document   `json:"document"`
	Options  pipeline.Options `json:"options"`
}

func (s *Server) handleSaveLayout(w http.ResponseWriter, r *http.Request) {
	var req saveLayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed request body"))
		return
	}
	if err := req.Document.Validate(); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidDocument, err, "invalid document"))
		return
	}
	req.Document.EnsureEdgeIDs()

	layout, err := s.runner.ComputeLayout(r.Context(), req.Document, req.Options)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "layout failed"))
		return
	}

	rec, err := s.store.Save(r.Context(), store.Record{
		ID:       req.ID,
		Name:     req.Name,
		Document: req.Document,
		Layout:   layout,
	})
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeStorage, err, "save failed"))
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeStorage, err, "list failed"))
		return
	}
	if recs == nil {
		recs = []store.Record{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.Get(r.Context(), id)
	if stderrors.Is(err, store.ErrNotFound) {
		writeError(w, errors.New(errors.ErrCodeLayoutNotFound, "layout %q not found", id))
		return
	}
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeStorage, err, "get failed"))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.store.Delete(r.Context(), id)
	if stderrors.Is(err, store.ErrNotFound) {
		writeError(w, errors.New(errors.ErrCodeLayoutNotFound, "layout %q not found", id))
		return
	}
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeStorage, err, "delete failed"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
