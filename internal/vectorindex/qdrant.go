// Package vectorindex stores chunk embeddings in Qdrant and serves
// similarity search over them.
package vectorindex

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/qdrant/go-client/qdrant"
)

// Index wraps the Qdrant client with collection management and the
// upsert/search/delete/stats operations the pipelines need.
type Index struct {
	client *qdrant.Client
	host   string
	port   int
}

// New creates a Qdrant client and verifies connectivity with retry,
// failing fast at startup if the server is unreachable.
func New(host string, port int) (*Index, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	idx := &Index{
		client: client,
		host:   host,
		port:   port,
	}

	if err := idx.healthCheckWithRetry(context.Background()); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	return idx, nil
}

// healthCheckWithRetry probes Qdrant with exponential backoff.
// Initial interval 500ms, max interval 10s, max elapsed 30s.
func (x *Index) healthCheckWithRetry(ctx context.Context) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 30 * time.Second

	return backoff.Retry(func() error {
		return x.Health(ctx)
	}, b)
}

// Health performs a single health check against Qdrant.
func (x *Index) Health(ctx context.Context) error {
	result, err := x.client.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	if result == nil || result.Title == "" {
		return fmt.Errorf("health check returned invalid response")
	}
	return nil
}

// EnsureCollection creates the chunk collection if it does not exist:
// cosine distance, fixed dimension, payload index on document_id for
// filtered search and cascade deletes. Idempotent.
func (x *Index) EnsureCollection(ctx context.Context) error {
	collections, err := x.client.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	for _, name := range collections {
		if name == CollectionName {
			return nil
		}
	}

	err = x.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: CollectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     VectorDimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	// Without this index filtered operations scan the whole collection.
	_, err = x.client.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
		CollectionName: CollectionName,
		FieldName:      "document_id",
		FieldType:      qdrant.FieldType_FieldTypeKeyword.Enum(),
	})
	if err != nil {
		return fmt.Errorf("failed to create document_id index: %w", err)
	}

	return nil
}

// ClearCollection drops and recreates the collection.
func (x *Index) ClearCollection(ctx context.Context) error {
	if err := x.client.DeleteCollection(ctx, CollectionName); err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	return x.EnsureCollection(ctx)
}

// Close closes the Qdrant client connection.
func (x *Index) Close() error {
	if x.client != nil {
		return x.client.Close()
	}
	return nil
}

// UpsertEntries stores chunk entries in batches of 100. Every vector is
// dimension-checked before any network call so a mismatch never leaves a
// partial write behind.
func (x *Index) UpsertEntries(ctx context.Context, entries []*Entry) error {
	if len(entries) == 0 {
		return nil
	}

	for i, entry := range entries {
		if len(entry.Vector) != VectorDimension {
			return fmt.Errorf("%w: entry %d has %d dimensions, expected %d",
				ErrDimensionMismatch, i, len(entry.Vector), VectorDimension)
		}
	}

	batchSize := 100
	for i := 0; i < len(entries); i += batchSize {
		end := min(i+batchSize, len(entries))

		batch := entries[i:end]
		points := make([]*qdrant.PointStruct, len(batch))
		for j, entry := range batch {
			points[j] = &qdrant.PointStruct{
				Id:      qdrant.NewIDUUID(entry.PointID()),
				Vectors: qdrant.NewVectors(entry.Vector...),
				Payload: qdrant.NewValueMap(map[string]any{
					"entry_id":    entry.EntryID(),
					"document_id": entry.DocumentID,
					"filename":    entry.Filename,
					"chunk_index": entry.ChunkIndex,
					"chunk_text":  entry.Text,
					"text_length": len(entry.Text),
				}),
			}
		}

		if err := x.upsertWithRetry(ctx, points); err != nil {
			return fmt.Errorf("failed to upsert batch %d-%d: %w", i, end, err)
		}
	}

	return nil
}

// upsertWithRetry performs one upsert with exponential backoff retry.
func (x *Index) upsertWithRetry(ctx context.Context, points []*qdrant.PointStruct) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 30 * time.Second

	return backoff.Retry(func() error {
		_, err := x.client.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: CollectionName,
			Points:         points,
		})
		return err
	}, b)
}

// Search returns the topK entries most similar to the query vector, ordered
// by descending cosine similarity. A non-empty documentIDs set restricts
// results to those documents.
func (x *Index) Search(ctx context.Context, vector []float32, topK int, documentIDs []string) ([]*ScoredEntry, error) {
	if len(vector) != VectorDimension {
		return nil, fmt.Errorf("%w: query has %d dimensions, expected %d",
			ErrDimensionMismatch, len(vector), VectorDimension)
	}

	var filter *qdrant.Filter
	if len(documentIDs) > 0 {
		filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatchKeywords("document_id", documentIDs...),
			},
		}
	}

	results, err := x.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: CollectionName,
		Query:          qdrant.NewQuery(vector...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(topK)),
		WithPayload:    qdrant.NewWithPayload(true),
		WithVectors:    qdrant.NewWithVectors(false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search entries: %w", err)
	}

	entries := make([]*ScoredEntry, 0, len(results))
	for _, result := range results {
		payload := result.Payload
		entries = append(entries, &ScoredEntry{
			EntryID:    payload["entry_id"].GetStringValue(),
			DocumentID: payload["document_id"].GetStringValue(),
			Filename:   payload["filename"].GetStringValue(),
			ChunkIndex: int(payload["chunk_index"].GetIntegerValue()),
			Text:       payload["chunk_text"].GetStringValue(),
			Score:      float64(result.Score),
		})
	}

	return entries, nil
}

// DeleteDocument removes every entry belonging to the given document.
func (x *Index) DeleteDocument(ctx context.Context, documentID string) error {
	_, err := x.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: CollectionName,
		Points: qdrant.NewPointsSelectorFilter(&qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("document_id", documentID),
			},
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to delete entries for document %s: %w", documentID, err)
	}
	return nil
}

// GetStats returns aggregate collection statistics.
func (x *Index) GetStats(ctx context.Context) (*Stats, error) {
	collection, err := x.client.GetCollectionInfo(ctx, CollectionName)
	if err != nil {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}

	return &Stats{
		TotalEntries: collection.GetPointsCount(),
		Dimension:    VectorDimension,
		Status:       collection.GetStatus().String(),
	}, nil
}
