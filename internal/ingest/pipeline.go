// Package ingest orchestrates document ingestion: validate, persist,
// extract, chunk, embed, and upsert into the vector index.
package ingest

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/fauxlabs/faux-rag/internal/apperrors"
	"github.com/fauxlabs/faux-rag/internal/chunker"
	"github.com/fauxlabs/faux-rag/internal/docstore"
	"github.com/fauxlabs/faux-rag/internal/extract"
	"github.com/fauxlabs/faux-rag/internal/vectorindex"
)

// Embedder converts chunk texts into vectors.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
}

// VectorIndex receives chunk entries and supports cascade deletion.
type VectorIndex interface {
	UpsertEntries(ctx context.Context, entries []*vectorindex.Entry) error
	DeleteDocument(ctx context.Context, documentID string) error
}

// Summary reports what one ingestion produced.
type Summary struct {
	DocumentID   string `json:"document_id"`
	Filename     string `json:"filename"`
	ChunkCount   int    `json:"chunk_count"`
	VectorCount  int    `json:"vector_count"`
	EmbeddingDim int    `json:"embedding_dim"`
	SizeBytes    int64  `json:"size_bytes"`
	TextChars    int    `json:"text_chars"`
}

// Config bounds upload size and chunking parameters.
type Config struct {
	MaxFileBytes int64
	ChunkSize    int
	ChunkOverlap int
}

// Pipeline wires the ingestion steps together. Construct once at startup.
type Pipeline struct {
	files    *docstore.Files
	store    *docstore.Store
	embedder Embedder
	index    VectorIndex
	cfg      Config
	logger   *slog.Logger
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(files *docstore.Files, store *docstore.Store, embedder Embedder, index VectorIndex, cfg Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		files:    files,
		store:    store,
		embedder: embedder,
		index:    index,
		cfg:      cfg,
		logger:   logger,
	}
}

// Ingest processes one uploaded file end to end. On any failure after the
// raw bytes were persisted, the file and any vector entries already written
// for the document are removed before the error is surfaced.
func (p *Pipeline) Ingest(ctx context.Context, data []byte, filename string) (*Summary, error) {
	return p.ingest(ctx, data, filename, "upload")
}

func (p *Pipeline) ingest(ctx context.Context, data []byte, filename, source string) (*Summary, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !extract.Supported[ext] {
		return nil, apperrors.Validationf("unsupported file extension %q", ext)
	}
	if int64(len(data)) > p.cfg.MaxFileBytes {
		return nil, apperrors.TooLargef("file is %d bytes, limit is %d", len(data), p.cfg.MaxFileBytes)
	}

	id := uuid.New().String()

	path, err := p.files.Save(id, ext, data)
	if err != nil {
		return nil, apperrors.Gateway("persist upload", err)
	}

	summary, err := p.process(ctx, id, path, ext, filename, source, int64(len(data)))
	if err != nil {
		p.cleanup(ctx, id, ext)
		return nil, err
	}

	p.logger.Info("ingested document",
		"id", summary.DocumentID,
		"filename", summary.Filename,
		"chunks", summary.ChunkCount,
		"bytes", summary.SizeBytes,
	)
	return summary, nil
}

// process runs the post-persist steps; the caller owns cleanup on error.
func (p *Pipeline) process(ctx context.Context, id, path, ext, filename, source string, size int64) (*Summary, error) {
	text, err := extract.Text(path, ext)
	if err != nil {
		return nil, apperrors.Extractionf("extract %s: %v", filename, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.Extractionf("%s contains no extractable text", filename)
	}

	var chunks []string
	if ext == ".md" {
		chunks, err = chunker.SplitMarkdown([]byte(text), p.cfg.ChunkSize, p.cfg.ChunkOverlap)
	} else {
		chunks, err = chunker.Split(text, p.cfg.ChunkSize, p.cfg.ChunkOverlap)
	}
	if err != nil {
		return nil, apperrors.Extractionf("chunk %s: %v", filename, err)
	}
	if len(chunks) == 0 {
		return nil, apperrors.Extractionf("%s produced no usable chunks", filename)
	}
	p.logger.Debug("chunked document", "id", id, "chunks", len(chunks))

	vectors, err := p.embedder.EmbedBatch(ctx, chunks)
	if err != nil {
		return nil, apperrors.Gateway("embed chunks", err)
	}

	entries := make([]*vectorindex.Entry, len(chunks))
	for i, chunk := range chunks {
		entries[i] = &vectorindex.Entry{
			DocumentID: id,
			Filename:   filename,
			ChunkIndex: i,
			Text:       chunk,
			Vector:     vectors[i],
		}
	}
	if err := p.index.UpsertEntries(ctx, entries); err != nil {
		return nil, apperrors.Gateway("upsert vectors", err)
	}

	doc := &docstore.Document{
		ID:         id,
		Filename:   filename,
		Extension:  ext,
		SizeBytes:  size,
		TextChars:  utf8.RuneCountInString(text),
		ChunkCount: len(chunks),
		Source:     source,
		CreatedAt:  time.Now(),
	}
	if err := p.store.Insert(ctx, doc); err != nil {
		return nil, apperrors.Gateway("register document", err)
	}

	return &Summary{
		DocumentID:   id,
		Filename:     filename,
		ChunkCount:   len(chunks),
		VectorCount:  len(entries),
		EmbeddingDim: p.embedder.Dimension(),
		SizeBytes:    size,
		TextChars:    doc.TextChars,
	}, nil
}

// cleanup removes the persisted file and any index entries written for a
// failed ingestion so no orphaned state survives.
func (p *Pipeline) cleanup(ctx context.Context, id, ext string) {
	if err := p.files.Remove(id, ext); err != nil {
		p.logger.Warn("cleanup: remove file failed", "id", id, "error", err)
	}
	if err := p.index.DeleteDocument(ctx, id); err != nil {
		p.logger.Warn("cleanup: delete index entries failed", "id", id, "error", err)
	}
}

// Delete removes a document: its registry row, persisted file, and every
// vector index entry. Unknown ids return a not-found error.
func (p *Pipeline) Delete(ctx context.Context, id string) error {
	doc, err := p.store.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := p.index.DeleteDocument(ctx, id); err != nil {
		return apperrors.Gateway("delete index entries", err)
	}
	if err := p.files.Remove(id, doc.Extension); err != nil {
		return apperrors.Gateway("delete stored file", err)
	}
	if err := p.store.Delete(ctx, id); err != nil {
		return err
	}

	p.logger.Info("deleted document", "id", id, "filename", doc.Filename)
	return nil
}
