// Package server implements the craftlens HTTP API.
//
// The API serves the browser client that draws the interactive diagram:
//
//	GET /health              liveness probe
//	GET /api/entities        all entity names, for search/navigation
//	GET /api/graph/{name}    drawing-library elements for one focal entity
//	GET /img?src=...         image proxy for external thumbnails
//
// The graph endpoint honors two query parameters: "relations", a CSV of
// visible categories (present-but-empty hides every relation; absent shows
// all), and "locale", selecting a loaded translation table.
package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/craftlens/craftlens/pkg/cache"
	"github.com/craftlens/craftlens/pkg/errors"
	"github.com/craftlens/craftlens/pkg/pipeline"
)

// imageClientTimeout bounds one upstream image fetch.
const imageClientTimeout = 15 * time.Second

// Server wires the pipeline runner into HTTP handlers.
type Server struct {
	runner *pipeline.Runner
	cache  cache.Cache
	logger *log.Logger
	client *http.Client
}

// New creates a server around a loaded runner. The cache stores proxied
// image bytes; built payloads are cached inside the runner itself.
//
// New installs the image rewriting convention on the runner: node thumbnails
// are routed through this server's /img endpoint.
func New(runner *pipeline.Runner, c cache.Cache, logger *log.Logger) *Server {
	if c == nil {
		c = cache.NewNullCache()
	}
	s := &Server{
		runner: runner,
		cache:  c,
		logger: logger,
		client: &http.Client{Timeout: imageClientTimeout},
	}
	runner.SetImageRef(func(raw string) string {
		return "/img?src=" + url.QueryEscape(raw)
	})
	return s
}

// Router builds the HTTP handler with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(cors)

	r.Get("/health", s.handleHealth)
	r.Get("/img", s.handleImage)
	r.Route("/api", func(r chi.Router) {
		r.Get("/entities", s.handleEntities)
		r.Get("/graph/{name}", s.handleGraph)
	})

	return r
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

// writeJSON writes v as a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

// writeError maps pipeline errors to HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeEntityNotFound, errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidLocale, errors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	}
	s.writeJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  errors.GetCode(err),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
