package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"tableflip.dev/reflectly/pkg/entry"
	"tableflip.dev/reflectly/pkg/insights"
	"tableflip.dev/reflectly/pkg/mood"
	"tableflip.dev/reflectly/pkg/motivation"
	"tableflip.dev/reflectly/pkg/timeutil"
)

const maxBodyBytes = 1 << 20

// CreateEntryRequest is the body of POST /api/entries.
type CreateEntryRequest struct {
	Mood    string `json:"mood,omitempty" validate:"omitempty,mood"`
	Content string `json:"content" validate:"notblank,max=20000"`
}

// UpdateEntryRequest is the body of PUT /api/entries/{id}. An empty mood
// keeps the current one.
type UpdateEntryRequest struct {
	Mood    string `json:"mood,omitempty" validate:"omitempty,mood"`
	Content string `json:"content" validate:"notblank,max=20000"`
}

// InsightsResponse is the body of GET /api/insights.
type InsightsResponse struct {
	Window    string             `json:"window"`
	Dashboard insights.Dashboard `json:"dashboard"`
	Summary   insights.Summary   `json:"summary"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) listEntries(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, s.history.Entries())
}

func (s *Server) createEntry(w http.ResponseWriter, r *http.Request) {
	var req CreateEntryRequest
	if !s.decode(w, r, &req) {
		return
	}
	e, ok := s.journal.Create(entry.Candidate{Mood: canonicalMood(req.Mood), Content: req.Content})
	if !ok {
		s.respondError(w, http.StatusUnprocessableEntity, "content is required")
		return
	}
	s.metrics.Mutations.WithLabelValues("create").Inc()
	s.respondJSON(w, http.StatusCreated, e)
}

func (s *Server) getEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := s.entryID(w, r)
	if !ok {
		return
	}
	e, found := s.journal.Get(id)
	if !found {
		s.respondError(w, http.StatusNotFound, "entry not found")
		return
	}
	s.respondJSON(w, http.StatusOK, e)
}

func (s *Server) updateEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := s.entryID(w, r)
	if !ok {
		return
	}
	var req UpdateEntryRequest
	if !s.decode(w, r, &req) {
		return
	}
	before, _ := s.journal.Get(id)
	if !s.journal.Update(entry.Entry{ID: id, Mood: canonicalMood(req.Mood), Content: req.Content}) {
		s.respondError(w, http.StatusNotFound, "entry not found")
		return
	}
	e, found := s.journal.Get(id)
	if !found {
		s.respondError(w, http.StatusNotFound, "entry not found")
		return
	}
	if e != before {
		s.metrics.Mutations.WithLabelValues("update").Inc()
	}
	s.respondJSON(w, http.StatusOK, e)
}

func (s *Server) deleteEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := s.entryID(w, r)
	if !ok {
		return
	}
	if !s.journal.Delete(id) {
		s.respondError(w, http.StatusNotFound, "entry not found")
		return
	}
	s.metrics.Mutations.WithLabelValues("delete").Inc()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getInsights(w http.ResponseWriter, r *http.Request) {
	window, err := timeutil.ParseWindow(r.URL.Query().Get("last"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, InsightsResponse{
		Window:    window.Label(),
		Dashboard: s.insights.Dashboard(),
		Summary:   s.insights.Summary(window, s.now()),
	})
}

func (s *Server) listMoods(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, mood.Defaults())
}

func (s *Server) getMotivation(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, motivation.Load(r.Context(), s.source))
}

func (s *Server) entryID(w http.ResponseWriter, r *http.Request) (entry.ID, bool) {
	id, err := entry.ParseID(chi.URLParam(r, "entryID"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid entry id")
		return 0, false
	}
	return id, true
}

// decode reads and validates a JSON body, answering 400 or 422 itself when
// it cannot.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, into interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		s.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	if err := validateStruct(into); err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return false
	}
	return true
}

func canonicalMood(label string) string {
	if m, ok := mood.Lookup(label); ok {
		return m.Key
	}
	return strings.TrimSpace(label)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to write response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, errorResponse{Error: msg})
}
