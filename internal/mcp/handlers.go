package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fauxlabs/faux-rag/internal/docstore"
	"github.com/fauxlabs/faux-rag/internal/retrieval"
)

// makeAskHandler creates the ask tool handler, delegating to the same
// answer pipeline the chat endpoint uses.
func makeAskHandler(answerer *retrieval.Answerer) func(
	context.Context, *mcp.CallToolRequest, AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AskInput) (
		*mcp.CallToolResult, AskOutput, error,
	) {
		resp, err := answerer.Answer(ctx, input.Question, input.TopK, input.FileIDs)
		if err != nil {
			return nil, AskOutput{}, fmt.Errorf("answer failed: %w", err)
		}

		return nil, AskOutput{
			Reply:      resp.Reply,
			Sources:    resp.Sources,
			NumSources: resp.NumSources,
		}, nil
	}
}

// makeSearchHandler creates the search_chunks tool handler: embed the query,
// search the index, return scored chunks without generation.
func makeSearchHandler(embedder retrieval.QueryEmbedder, index IndexReader) func(
	context.Context, *mcp.CallToolRequest, SearchChunksInput,
) (*mcp.CallToolResult, SearchChunksOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchChunksInput) (
		*mcp.CallToolResult, SearchChunksOutput, error,
	) {
		maxResults := input.MaxResults
		if maxResults <= 0 {
			maxResults = 5
		}

		vector, err := embedder.EmbedOne(ctx, input.Query)
		if err != nil {
			return nil, SearchChunksOutput{}, fmt.Errorf("failed to embed query: %w", err)
		}

		matches, err := index.Search(ctx, vector, maxResults, input.FileIDs)
		if err != nil {
			return nil, SearchChunksOutput{}, fmt.Errorf("search failed: %w", err)
		}

		if len(matches) == 0 {
			return nil, SearchChunksOutput{
				Results: []ChunkResult{},
				Message: "No matching chunks found. Try broader search terms or upload more documents.",
			}, nil
		}

		results := make([]ChunkResult, len(matches))
		for i, m := range matches {
			results[i] = ChunkResult{
				Filename:   m.Filename,
				ChunkIndex: m.ChunkIndex,
				Text:       m.Text,
				Score:      m.Score,
			}
		}

		return nil, SearchChunksOutput{Results: results}, nil
	}
}

// makeListHandler creates the list_documents tool handler.
func makeListHandler(store *docstore.Store) func(
	context.Context, *mcp.CallToolRequest, ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListDocumentsInput) (
		*mcp.CallToolResult, ListDocumentsOutput, error,
	) {
		docs, err := store.List(ctx)
		if err != nil {
			return nil, ListDocumentsOutput{}, fmt.Errorf("failed to list documents: %w", err)
		}

		return nil, ListDocumentsOutput{
			Documents: docs,
			Count:     len(docs),
		}, nil
	}
}

// makeStatusHandler creates the get_index_status tool handler.
func makeStatusHandler(index IndexReader, store *docstore.Store) func(
	context.Context, *mcp.CallToolRequest, StatusInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input StatusInput) (
		*mcp.CallToolResult, StatusOutput, error,
	) {
		docs, err := store.List(ctx)
		if err != nil {
			return nil, StatusOutput{}, fmt.Errorf("failed to list documents: %w", err)
		}

		stats, err := index.GetStats(ctx)
		if err != nil {
			return nil, StatusOutput{}, fmt.Errorf("failed to get index stats: %w", err)
		}

		return nil, StatusOutput{
			TotalDocuments: len(docs),
			TotalEntries:   stats.TotalEntries,
			Dimension:      stats.Dimension,
			Status:         stats.Status,
		}, nil
	}
}
