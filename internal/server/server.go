// Package server exposes the HTTP API: upload, list, delete, stats, chat.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/fauxlabs/faux-rag/internal/docstore"
	"github.com/fauxlabs/faux-rag/internal/ingest"
	"github.com/fauxlabs/faux-rag/internal/retrieval"
	"github.com/fauxlabs/faux-rag/internal/vectorindex"
)

// IndexStatus covers the index operations the HTTP layer needs directly:
// aggregate stats and connectivity checks.
type IndexStatus interface {
	GetStats(ctx context.Context) (*vectorindex.Stats, error)
	Health(ctx context.Context) error
}

// Server holds the request handlers' dependencies, constructed once at
// process start and shared read-only across requests.
type Server struct {
	pipeline *ingest.Pipeline
	answerer *retrieval.Answerer
	store    *docstore.Store
	index    IndexStatus
	maxBytes int64
	logger   *slog.Logger
}

// Config bundles the server dependencies.
type Config struct {
	Pipeline     *ingest.Pipeline
	Answerer     *retrieval.Answerer
	Store        *docstore.Store
	Index        IndexStatus
	MaxFileBytes int64
	Logger       *slog.Logger
}

// New creates the server.
func New(cfg *Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		pipeline: cfg.Pipeline,
		answerer: cfg.Answerer,
		store:    cfg.Store,
		index:    cfg.Index,
		maxBytes: cfg.MaxFileBytes,
		logger:   logger,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /upload", s.handleUpload)
	mux.HandleFunc("GET /documents", s.handleListDocuments)
	mux.HandleFunc("DELETE /documents/{id}", s.handleDeleteDocument)
	mux.HandleFunc("GET /stats", s.handleStats)
	mux.HandleFunc("POST /chat", s.handleChat)
	return mux
}
