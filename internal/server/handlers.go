package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// healthPingTimeout bounds the database check in GET /health.
const healthPingTimeout = 2 * time.Second

// CatalogResponse is the body of GET /catalog.
type CatalogResponse struct {
	Keywords []string `json:"keywords"`
}

// handleHealth returns server health status. With a store configured the
// database is pinged and an unreachable database reports 503.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		s.log.Warn("database ping failed", zap.Error(err))
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "database": "unreachable"})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok", "database": "ok"})
}

// handleCatalog lists the keywords the matcher looks for.
func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, CatalogResponse{
		Keywords: s.matcher.Matcher().Catalog().Terms(),
	})
}
