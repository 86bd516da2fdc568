// Package main runs the faux-rag HTTP service.
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/fauxlabs/faux-rag/internal/config"
	"github.com/fauxlabs/faux-rag/internal/docstore"
	"github.com/fauxlabs/faux-rag/internal/embedding"
	"github.com/fauxlabs/faux-rag/internal/ingest"
	"github.com/fauxlabs/faux-rag/internal/llm"
	mcpserver "github.com/fauxlabs/faux-rag/internal/mcp"
	"github.com/fauxlabs/faux-rag/internal/retrieval"
	"github.com/fauxlabs/faux-rag/internal/server"
	"github.com/fauxlabs/faux-rag/internal/vectorindex"
)

func main() {
	// Load .env if present (local development), ignore if missing (production).
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	cfg := config.Load()
	logger := slog.Default()

	// Vector index
	index, err := vectorindex.New(cfg.QdrantHost, cfg.QdrantPort)
	if err != nil {
		log.Fatalf("failed to connect to Qdrant: %v", err)
	}
	defer index.Close()

	if err := index.EnsureCollection(ctx); err != nil {
		log.Fatalf("failed to ensure collection: %v", err)
	}

	// OpenAI client shared by embeddings and generation
	openaiClient, err := embedding.NewClient()
	if err != nil {
		log.Fatalf("failed to create OpenAI client: %v", err)
	}
	embedder := embedding.NewEmbedder(openaiClient, 0)
	generator := llm.NewGenerator(openaiClient.Client())

	// Document storage
	store, err := docstore.NewStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("failed to open document store: %v", err)
	}
	defer store.Close()

	files, err := docstore.NewFiles(cfg.UploadDir)
	if err != nil {
		log.Fatalf("failed to create upload directory: %v", err)
	}

	// Pipelines
	pipeline := ingest.NewPipeline(files, store, embedder, index, ingest.Config{
		MaxFileBytes: cfg.MaxFileSizeBytes(),
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
	}, logger)

	answerer := retrieval.NewAnswerer(embedder, index, generator, cfg.DefaultTopK)

	// HTTP API
	api := server.New(&server.Config{
		Pipeline:     pipeline,
		Answerer:     answerer,
		Store:        store,
		Index:        index,
		MaxFileBytes: cfg.MaxFileSizeBytes(),
		Logger:       logger,
	})

	// MCP surface for agent clients
	mcpSrv := mcpserver.NewServer(&mcpserver.Config{
		Answerer: answerer,
		Embedder: embedder,
		Index:    index,
		Store:    store,
	})

	mux := http.NewServeMux()
	mux.Handle("/", api.Handler())
	mux.Handle("/mcp", mcpserver.NewHTTPHandler(mcpSrv, &mcpserver.HTTPHandlerOptions{Stateless: true}))

	addr := "0.0.0.0:" + cfg.Port
	httpServer := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	log.Printf("Starting HTTP server on %s (API at /, MCP at /mcp)", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("HTTP server error: %v", err)
	}
}
