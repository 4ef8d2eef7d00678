package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/craftlens/craftlens/pkg/pipeline"
	"github.com/craftlens/craftlens/pkg/relation"
)

// handleGraph builds and serves the drawing-library payload for one focal
// entity.
//
// The "relations" query parameter is an optional CSV of visible categories.
// Its presence matters independently of its value: "?relations=" (present,
// empty) renders the focal entity alone, while omitting the parameter shows
// every relation.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	q := r.URL.Query()

	opts := pipeline.Options{
		Focal:     name,
		Locale:    q.Get("locale"),
		Selection: parseSelection(q.Get("relations"), q.Has("relations")),
		Refresh:   q.Get("refresh") == "true",
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if result.CacheHit {
		w.Header().Set("X-Cache", "HIT")
	}
	_, _ = w.Write(result.Payload)
}

// parseSelection turns the relations parameter into an optional Selection,
// preserving the absent-vs-empty distinction.
func parseSelection(value string, present bool) relation.Selection {
	if !present {
		return nil
	}
	sel := relation.NewSelection()
	for _, c := range strings.Split(value, ",") {
		if c = strings.TrimSpace(c); c != "" {
			sel[relation.Category(c)] = struct{}{}
		}
	}
	return sel
}

// handleEntities serves the sorted list of entity names along with the
// available locales, enough for the client to build search and a language
// switcher.
func (s *Server) handleEntities(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"entities": s.runner.Entities(),
		"locales":  s.runner.Locales(),
	})
}
