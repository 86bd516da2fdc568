package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fauxlabs/faux-rag/internal/docstore"
	"github.com/fauxlabs/faux-rag/internal/retrieval"
	"github.com/fauxlabs/faux-rag/internal/vectorindex"
)

// IndexReader covers the index operations the MCP tools need.
type IndexReader interface {
	Search(ctx context.Context, vector []float32, topK int, documentIDs []string) ([]*vectorindex.ScoredEntry, error)
	GetStats(ctx context.Context) (*vectorindex.Stats, error)
}

// Server wraps the MCP server with its dependencies.
type Server struct {
	server *mcp.Server
}

// Config holds server dependencies.
type Config struct {
	Answerer *retrieval.Answerer
	Embedder retrieval.QueryEmbedder
	Index    IndexReader
	Store    *docstore.Store
}

// NewServer creates a configured MCP server with tools registered.
func NewServer(cfg *Config) *Server {
	impl := &mcp.Implementation{
		Name:    "faux-rag-server",
		Version: "v0.1.0",
	}

	server := mcp.NewServer(impl, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question from the indexed documents using retrieval-augmented generation. Returns the answer and the chunks it was grounded on.",
	}, makeAskHandler(cfg.Answerer))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_chunks",
		Description: "Semantic similarity search over indexed document chunks. Returns raw scored chunks without LLM generation.",
	}, makeSearchHandler(cfg.Embedder, cfg.Index))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List all documents registered in the knowledge base.",
	}, makeListHandler(cfg.Store))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_index_status",
		Description: "Get aggregate vector index statistics: document count, entry count, dimension, and collection status.",
	}, makeStatusHandler(cfg.Index, cfg.Store))

	return &Server{server: server}
}

// Run starts the server on stdio transport (blocks until the client disconnects).
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// MCPServer returns the underlying MCP server instance for transport wrappers.
func (s *Server) MCPServer() *mcp.Server {
	return s.server
}
