// Package main provides the ragctl CLI for index management.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fauxlabs/faux-rag/internal/config"
	"github.com/fauxlabs/faux-rag/internal/docstore"
	"github.com/fauxlabs/faux-rag/internal/embedding"
	ghclient "github.com/fauxlabs/faux-rag/internal/github"
	"github.com/fauxlabs/faux-rag/internal/ingest"
	"github.com/fauxlabs/faux-rag/internal/vectorindex"
)

var rootCmd = &cobra.Command{
	Use:   "ragctl",
	Short: "faux-rag index management tool",
	Long:  "CLI tool for managing the faux-rag document index in Qdrant",
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Index markdown documentation from a GitHub repository",
	Long: `Fetches all markdown files under the configured repository path and
indexes them through the regular ingestion pipeline.

Environment variables:
  GITHUB_OWNER     Repository owner (required)
  GITHUB_REPO      Repository name (required)
  GITHUB_BASE_PATH Directory to index (default: docs)
  GITHUB_TOKEN     GitHub token for higher rate limits (optional)
  QDRANT_HOST      Qdrant hostname (default: localhost)
  QDRANT_PORT      Qdrant gRPC port (default: 6334)
  OPENAI_API_KEY   OpenAI API key for embeddings (required)`,
	RunE: runSync,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print vector index statistics",
	RunE:  runStats,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop and recreate the vector collection",
	RunE:  runClear,
}

func init() {
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(clearCmd)
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func connect(cfg *config.Config) (*vectorindex.Index, error) {
	fmt.Printf("Connecting to Qdrant at %s:%d...\n", cfg.QdrantHost, cfg.QdrantPort)
	index, err := vectorindex.New(cfg.QdrantHost, cfg.QdrantPort)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Qdrant: %w", err)
	}
	return index, nil
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	start := time.Now()
	cfg := config.Load()

	if cfg.GitHubOwner == "" || cfg.GitHubRepo == "" {
		return fmt.Errorf("GITHUB_OWNER and GITHUB_REPO must be set")
	}

	index, err := connect(cfg)
	if err != nil {
		return err
	}
	defer index.Close()

	if err := index.EnsureCollection(ctx); err != nil {
		return fmt.Errorf("failed to ensure collection: %w", err)
	}

	openaiClient, err := embedding.NewClient()
	if err != nil {
		return fmt.Errorf("failed to create OpenAI client: %w", err)
	}
	embedder := embedding.NewEmbedder(openaiClient, 0)

	gh, err := ghclient.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}
	fetcher := ghclient.NewFetcher(gh, cfg.GitHubOwner, cfg.GitHubRepo, cfg.GitHubBasePath)

	store, err := docstore.NewStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open document store: %w", err)
	}
	defer store.Close()

	files, err := docstore.NewFiles(cfg.UploadDir)
	if err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	pipeline := ingest.NewPipeline(files, store, embedder, index, ingest.Config{
		MaxFileBytes: cfg.MaxFileSizeBytes(),
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
	}, slog.Default())

	fmt.Printf("Indexing %s/%s:%s...\n", cfg.GitHubOwner, cfg.GitHubRepo, cfg.GitHubBasePath)
	result, err := pipeline.SyncGitHub(ctx, fetcher)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	fmt.Println()
	fmt.Println("Sync complete!")
	fmt.Printf("  Documents: %d/%d\n", result.SuccessfulDocs, result.TotalDocs)
	fmt.Printf("  Chunks: %d\n", result.TotalChunks)
	fmt.Printf("  Duration: %s\n", result.Duration.Round(time.Second))

	if len(result.FailedDocs) > 0 {
		fmt.Println()
		fmt.Println("Failed documents:")
		for _, failed := range result.FailedDocs {
			fmt.Printf("  - %s: %s\n", failed.Path, failed.Reason)
		}
	}

	fmt.Println()
	fmt.Printf("Total time: %s\n", time.Since(start).Round(time.Second))
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := config.Load()

	index, err := connect(cfg)
	if err != nil {
		return err
	}
	defer index.Close()

	stats, err := index.GetStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	fmt.Printf("  Entries:   %d\n", stats.TotalEntries)
	fmt.Printf("  Dimension: %d\n", stats.Dimension)
	fmt.Printf("  Status:    %s\n", stats.Status)
	return nil
}

func runClear(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := config.Load()

	index, err := connect(cfg)
	if err != nil {
		return err
	}
	defer index.Close()

	fmt.Println("Clearing collection...")
	if err := index.ClearCollection(ctx); err != nil {
		return fmt.Errorf("failed to clear collection: %w", err)
	}
	fmt.Println("Collection cleared")
	return nil
}
