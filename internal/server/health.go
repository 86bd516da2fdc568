package server

import (
	"context"
	"net/http"
	"time"
)

// HealthResponse is the /health body.
type HealthResponse struct {
	Status    string `json:"status"`
	Qdrant    string `json:"qdrant"`
	Timestamp string `json:"timestamp"`
}

// handleHealth checks Qdrant connectivity with a short timeout and reports
// 503 when the index is unreachable.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	resp := HealthResponse{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.index.Health(ctx); err != nil {
		resp.Status = "unhealthy"
		resp.Qdrant = "disconnected"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	resp.Status = "healthy"
	resp.Qdrant = "connected"
	writeJSON(w, http.StatusOK, resp)
}
