package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fauxlabs/faux-rag/internal/apperrors"
	"github.com/fauxlabs/faux-rag/internal/docstore"
	"github.com/fauxlabs/faux-rag/internal/vectorindex"
)

type fakeEmbedder struct {
	dim   int
	err   error
	calls int
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = make([]float32, f.dim)
		vectors[i][0] = float32(i)
	}
	return vectors, nil
}

func (f *fakeEmbedder) Dimension() int { return f.dim }

type fakeIndex struct {
	upsertErr error
	entries   map[string][]*vectorindex.Entry
	deleted   []string
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{entries: make(map[string][]*vectorindex.Entry)}
}

func (f *fakeIndex) UpsertEntries(_ context.Context, entries []*vectorindex.Entry) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	for _, e := range entries {
		f.entries[e.DocumentID] = append(f.entries[e.DocumentID], e)
	}
	return nil
}

func (f *fakeIndex) DeleteDocument(_ context.Context, documentID string) error {
	f.deleted = append(f.deleted, documentID)
	delete(f.entries, documentID)
	return nil
}

type pipelineFixture struct {
	pipeline  *Pipeline
	store     *docstore.Store
	embedder  *fakeEmbedder
	index     *fakeIndex
	uploadDir string
}

func newFixture(t *testing.T) *pipelineFixture {
	t.Helper()

	uploadDir := t.TempDir()
	files, err := docstore.NewFiles(uploadDir)
	require.NoError(t, err)
	store, err := docstore.NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	embedder := &fakeEmbedder{dim: 8}
	index := newFakeIndex()
	cfg := Config{MaxFileBytes: 1 << 20, ChunkSize: 1000, ChunkOverlap: 200}
	logger := slog.New(slog.DiscardHandler)

	return &pipelineFixture{
		pipeline:  NewPipeline(files, store, embedder, index, cfg, logger),
		store:     store,
		embedder:  embedder,
		index:     index,
		uploadDir: uploadDir,
	}
}

func uploadDirEntries(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return len(entries)
}

// sampleText builds a document long enough to produce several chunks at the
// default chunking parameters.
func sampleText() []byte {
	var b strings.Builder
	for i := 0; i < 60; i++ {
		fmt.Fprintf(&b, "Paragraph %d carries enough content to clear the minimum chunk length easily. ", i)
	}
	return []byte(b.String())
}

func TestIngest_Success(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	summary, err := fx.pipeline.Ingest(ctx, sampleText(), "notes.txt")
	require.NoError(t, err)

	assert.NotEmpty(t, summary.DocumentID)
	assert.Equal(t, "notes.txt", summary.Filename)
	assert.GreaterOrEqual(t, summary.ChunkCount, 3)
	assert.Equal(t, summary.ChunkCount, summary.VectorCount)
	assert.Equal(t, 8, summary.EmbeddingDim)
	assert.Equal(t, int64(len(sampleText())), summary.SizeBytes)

	// Registry row, stored file, and index entries all exist.
	doc, err := fx.store.Get(ctx, summary.DocumentID)
	require.NoError(t, err)
	assert.Equal(t, summary.ChunkCount, doc.ChunkCount)
	assert.Equal(t, "upload", doc.Source)
	assert.Equal(t, 1, uploadDirEntries(t, fx.uploadDir))
	assert.Len(t, fx.index.entries[summary.DocumentID], summary.ChunkCount)

	// Chunk indexes are sequential from zero.
	for i, entry := range fx.index.entries[summary.DocumentID] {
		assert.Equal(t, i, entry.ChunkIndex)
		assert.Equal(t, "notes.txt", entry.Filename)
	}
}

func TestIngest_RejectsUnsupportedExtension(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.pipeline.Ingest(context.Background(), []byte("MZ\x90\x00"), "malware.exe")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	// Nothing was persisted and no downstream call was made.
	assert.Equal(t, 0, uploadDirEntries(t, fx.uploadDir))
	assert.Equal(t, 0, fx.embedder.calls)
	assert.Empty(t, fx.index.entries)
}

func TestIngest_RejectsOversizedFile(t *testing.T) {
	fx := newFixture(t)
	fx.pipeline.cfg.MaxFileBytes = 100

	_, err := fx.pipeline.Ingest(context.Background(), sampleText(), "big.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrTooLarge))
	assert.Equal(t, 0, uploadDirEntries(t, fx.uploadDir))
	assert.Equal(t, 0, fx.embedder.calls)
}

func TestIngest_RejectsEmptyText(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.pipeline.Ingest(context.Background(), []byte("   \n\t  "), "blank.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrExtraction))

	// The persisted file was rolled back.
	assert.Equal(t, 0, uploadDirEntries(t, fx.uploadDir))
}

func TestIngest_RejectsTextBelowChunkMinimum(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	// Non-empty text, but too short to survive the minimum chunk filter.
	_, err := fx.pipeline.Ingest(ctx, []byte("just a few words here"), "tiny.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrExtraction))

	// The upload was rolled back, not registered as an empty document.
	assert.Equal(t, 0, uploadDirEntries(t, fx.uploadDir))
	assert.Equal(t, 0, fx.embedder.calls)

	docs, err := fx.store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestIngest_RollsBackOnEmbedFailure(t *testing.T) {
	fx := newFixture(t)
	fx.embedder.err = errors.New("embedding service unavailable")
	ctx := context.Background()

	_, err := fx.pipeline.Ingest(ctx, sampleText(), "notes.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrGateway))

	assert.Equal(t, 0, uploadDirEntries(t, fx.uploadDir))
	assert.Len(t, fx.index.deleted, 1)

	docs, err := fx.store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestIngest_RollsBackOnUpsertFailure(t *testing.T) {
	fx := newFixture(t)
	fx.index.upsertErr = errors.New("index unreachable")
	ctx := context.Background()

	_, err := fx.pipeline.Ingest(ctx, sampleText(), "notes.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrGateway))

	assert.Equal(t, 0, uploadDirEntries(t, fx.uploadDir))

	docs, err := fx.store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDelete_Cascades(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	summary, err := fx.pipeline.Ingest(ctx, sampleText(), "notes.txt")
	require.NoError(t, err)

	require.NoError(t, fx.pipeline.Delete(ctx, summary.DocumentID))

	assert.Contains(t, fx.index.deleted, summary.DocumentID)
	assert.Equal(t, 0, uploadDirEntries(t, fx.uploadDir))
	_, err = fx.store.Get(ctx, summary.DocumentID)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestDelete_UnknownID(t *testing.T) {
	fx := newFixture(t)

	err := fx.pipeline.Delete(context.Background(), "no-such-doc")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Empty(t, fx.index.deleted)
}
