package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/fauxlabs/faux-rag/internal/github"
)

// SyncResult reports a GitHub bulk indexing run.
type SyncResult struct {
	TotalDocs      int
	SuccessfulDocs int
	TotalChunks    int
	FailedDocs     []FailedDoc
	Duration       time.Duration
}

// FailedDoc is a document that could not be indexed.
type FailedDoc struct {
	Path   string
	Reason string
}

// SyncGitHub indexes every markdown file the fetcher can list, running each
// through the same ingestion path as uploads. Individual document failures
// are collected rather than aborting the run.
func (p *Pipeline) SyncGitHub(ctx context.Context, fetcher *github.Fetcher) (*SyncResult, error) {
	start := time.Now()
	result := &SyncResult{}

	paths, err := fetcher.ListDocs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list docs: %w", err)
	}
	result.TotalDocs = len(paths)
	p.logger.Info("starting github sync", "docs", len(paths))

	for _, path := range paths {
		doc, err := fetcher.FetchDoc(ctx, path)
		if err != nil {
			result.FailedDocs = append(result.FailedDocs, FailedDoc{Path: path, Reason: err.Error()})
			continue
		}

		summary, err := p.ingest(ctx, []byte(doc.Content), path, "github")
		if err != nil {
			p.logger.Warn("failed to index document", "path", path, "error", err)
			result.FailedDocs = append(result.FailedDocs, FailedDoc{Path: path, Reason: err.Error()})
			continue
		}

		result.SuccessfulDocs++
		result.TotalChunks += summary.ChunkCount
	}

	result.Duration = time.Since(start)
	p.logger.Info("github sync complete",
		"successful", result.SuccessfulDocs,
		"failed", len(result.FailedDocs),
		"chunks", result.TotalChunks,
		"duration", result.Duration,
	)
	return result, nil
}
