// Package mcp exposes the knowledge base to MCP clients over streamable HTTP.
package mcp

import (
	"github.com/fauxlabs/faux-rag/internal/docstore"
	"github.com/fauxlabs/faux-rag/internal/retrieval"
)

// AskInput defines the input parameters for the ask tool.
type AskInput struct {
	// Question is the natural-language question to answer from the indexed documents.
	Question string `json:"question" jsonschema:"required,description=The question to answer from the indexed documents"`
	// TopK is the number of chunks retrieved as context.
	TopK int `json:"top_k,omitempty" jsonschema:"minimum=1,maximum=20,default=5,description=Number of chunks retrieved as answer context"`
	// FileIDs optionally restricts retrieval to specific document ids.
	FileIDs []string `json:"file_ids,omitempty" jsonschema:"description=Restrict retrieval to these document ids"`
}

// AskOutput contains the grounded answer and its citations.
type AskOutput struct {
	Reply      string             `json:"reply"`
	Sources    []retrieval.Source `json:"sources"`
	NumSources int                `json:"num_sources"`
}

// SearchChunksInput defines the input parameters for the search_chunks tool.
type SearchChunksInput struct {
	// Query is the semantic search query.
	Query string `json:"query" jsonschema:"required,description=The semantic search query"`
	// MaxResults is the maximum number of chunks to return.
	MaxResults int `json:"max_results,omitempty" jsonschema:"minimum=1,maximum=50,default=5,description=Maximum number of chunks to return"`
	// FileIDs optionally restricts the search to specific document ids.
	FileIDs []string `json:"file_ids,omitempty" jsonschema:"description=Restrict search to these document ids"`
}

// ChunkResult is one scored chunk match.
type ChunkResult struct {
	Filename   string  `json:"filename"`
	ChunkIndex int     `json:"chunk_index"`
	Text       string  `json:"text"`
	Score      float64 `json:"score"`
}

// SearchChunksOutput contains the raw search results.
type SearchChunksOutput struct {
	Results []ChunkResult `json:"results"`
	// Message provides informational context (e.g. "No matching chunks found").
	Message string `json:"message,omitempty"`
}

// ListDocumentsInput takes no parameters.
type ListDocumentsInput struct{}

// ListDocumentsOutput lists all registered documents.
type ListDocumentsOutput struct {
	Documents []*docstore.Document `json:"documents"`
	Count     int                  `json:"count"`
}

// StatusInput takes no parameters.
type StatusInput struct{}

// StatusOutput summarizes the index.
type StatusOutput struct {
	TotalDocuments int    `json:"total_documents"`
	TotalEntries   uint64 `json:"total_entries"`
	Dimension      int    `json:"dimension"`
	Status         string `json:"status"`
}
