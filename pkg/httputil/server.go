// Package httputil exposes the pipeline and layout store over HTTP.
//
// The API surface is small: one endpoint per pipeline stage plus CRUD on
// saved layouts. All request and response bodies are JSON; errors use a
// uniform envelope with a machine-readable code.
//
//	POST   /api/layout        compute positions and routes for a document
//	POST   /api/route         route edges against the document's own positions
//	POST   /api/pipeline      full run, returns layout plus rendered artifacts
//	POST   /api/layouts       save a document with its layout
//	GET    /api/layouts       list saved layouts
//	GET    /api/layouts/{id}  fetch one saved layout
//	DELETE /api/layouts/{id}  delete a saved layout
//	GET    /healthz           liveness probe
package httputil

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/saxonthune/flowgrid/pkg/pipeline"
	"github.com/saxonthune/flowgrid/pkg/store"
)

// Server wires the pipeline runner and layout store into an HTTP handler.
type Server struct {
	runner *pipeline.Runner
	store  store.LayoutStore
	logger *log.Logger
}

// NewServer creates a server. A nil store disables the /api/layouts
// endpoints; a nil logger falls back to the runner's logger.
func NewServer(runner *pipeline.Runner, st store.LayoutStore, logger *log.Logger) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	return &Server{runner: runner, store: st, logger: logger}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/route", s.handleRoute)
		r.Post("/pipeline", s.handlePipeline)

		if s.store != nil {
			r.Route("/layouts", func(r chi.Router) {
				r.Post("/", s.handleSaveLayout)
				r.Get("/", s.handleListLayouts)
				r.Get("/{id}", s.handleGetLayout)
				r.Delete("/{id}", s.handleDeleteLayout)
			})
		}
	})

	return r
}
