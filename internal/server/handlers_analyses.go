package server

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jonathan/career-matcher/internal/db"
)

// AnalysesResponse is the body of GET /analyses.
type AnalysesResponse struct {
	Analyses []db.Analysis `json:"analyses"`
	Limit    int           `json:"limit"`
	Offset   int           `json:"offset"`
}

var errNoHistory = &ErrUnavailable{Feature: "analysis history"}

// handleListAnalyses lists stored analyses, newest first.
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, errNoHistory)
		return
	}

	limit, err := queryInt(r, "limit", db.DefaultListLimit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if limit < 1 || limit > db.MaxListLimit {
		s.writeError(w, r, &ErrValidation{Field: "limit", Message: "must be between 1 and " + strconv.Itoa(db.MaxListLimit)})
		return
	}
	if offset < 0 {
		s.writeError(w, r, &ErrValidation{Field: "offset", Message: "must not be negative"})
		return
	}

	analyses, err := s.store.ListAnalyses(r.Context(), limit, offset)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if analyses == nil {
		analyses = []db.Analysis{}
	}

	s.jsonResponse(w, http.StatusOK, AnalysesResponse{Analyses: analyses, Limit: limit, Offset: offset})
}

// handleGetAnalysis returns one stored analysis.
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, errNoHistory)
		return
	}

	idStr := r.PathValue("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		s.writeError(w, r, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return
	}

	analysis, err := s.store.GetAnalysis(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if analysis == nil {
		s.writeError(w, r, &ErrNotFound{Resource: "analysis", ID: idStr})
		return
	}

	s.jsonResponse(w, http.StatusOK, analysis)
}

// handleDeleteAnalysis removes one stored analysis.
func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, errNoHistory)
		return
	}

	idStr := r.PathValue("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		s.writeError(w, r, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return
	}

	deleted, err := s.store.DeleteAnalysis(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !deleted {
		s.writeError(w, r, &ErrNotFound{Resource: "analysis", ID: idStr})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &ErrValidation{Field: key, Message: "must be an integer"}
	}
	return n, nil
}
