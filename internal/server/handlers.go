package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/fauxlabs/faux-rag/internal/apperrors"
)

// ChatRequest is the POST /chat body.
type ChatRequest struct {
	Message string   `json:"message"`
	FileIDs []string `json:"file_ids,omitempty"`
	TopK    int      `json:"top_k,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "faux-rag API",
		"status":  "running",
		"endpoints": map[string]string{
			"upload":    "/upload",
			"documents": "/documents",
			"stats":     "/stats",
			"chat":      "/chat",
			"health":    "/health",
		},
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// One slack megabyte for multipart framing around the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBytes+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, apperrors.TooLargef("request exceeds %d bytes", s.maxBytes))
			return
		}
		s.writeError(w, r, apperrors.Validationf("missing multipart field %q", "file"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, r, apperrors.Validationf("reading upload: %v", err))
		return
	}

	summary, err := s.pipeline.Ingest(r.Context(), data, header.Filename)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"documents": docs,
		"count":     len(docs),
	})
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.pipeline.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.index.GetStats(r.Context())
	if err != nil {
		s.writeError(w, r, apperrors.Gateway("index stats", err))
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, apperrors.Validationf("invalid JSON body: %v", err))
		return
	}

	resp, err := s.answerer.Answer(r.Context(), req.Message, req.TopK, req.FileIDs)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// writeError maps the error taxonomy onto HTTP status codes. Client faults
// echo the error detail; server faults get a generic body and a log line so
// internals never leak to callers.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrTooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "processing failed"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
