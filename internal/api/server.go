// Package api implements the loomui HTTP API.
//
// The API exposes the screen pipeline over HTTP: documents can be rendered
// directly, or stored by id and resolved on demand. All endpoints return
// JSON except rendered artifacts, which are served with their native
// content types.
//
// # Endpoints
//
//	GET    /healthz                   liveness probe
//	POST   /v1/render                 render a document from the request body
//	POST   /v1/screens                store a document under a generated id
//	GET    /v1/screens                list stored screen ids
//	PUT    /v1/screens/{id}           store or replace a document
//	GET    /v1/screens/{id}           fetch a stored document
//	DELETE /v1/screens/{id}           delete a stored document
//	GET    /v1/screens/{id}/layout    resolve a stored screen to geometry
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/loomui/loomui/pkg/observability"
	"github.com/loomui/loomui/pkg/pipeline"
	"github.com/loomui/loomui/pkg/store"
)

// Server wires the pipeline and screen store into HTTP handlers.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// NewServer creates a server. The runner's store is used for screens
// resolved by id, so callers should pass the same store to both.
func NewServer(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: st, logger: logger}
}

// Router builds the chi router with middleware and all routes registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)

		r.Route("/screens", func(r chi.Router) {
			r.Get("/", s.handleListScreens)
			r.Post("/", s.handleCreateScreen)
			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", s.handlePutScreen)
				r.Get("/", s.handleGetScreen)
				r.Delete("/", s.handleDeleteScreen)
				r.Get("/layout", s.handleScreenLayout)
			})
		})
	})

	return r
}

// logRequests logs each request with its status and duration, and feeds the
// API observability hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		observability.API().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		elapsed := time.Since(start)

		observability.API().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), elapsed)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", elapsed.Round(time.Millisecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
