// Package docstore persists uploaded documents: raw bytes on disk and a
// SQLite registry of their metadata.
package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/fauxlabs/faux-rag/internal/apperrors"
)

// Document is one registered upload.
type Document struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	Extension  string    `json:"extension"`
	SizeBytes  int64     `json:"size_bytes"`
	TextChars  int       `json:"text_chars"`
	ChunkCount int       `json:"chunk_count"`
	Source     string    `json:"source"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store is the SQLite-backed document registry.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id          TEXT PRIMARY KEY,
	filename    TEXT NOT NULL,
	extension   TEXT NOT NULL,
	size_bytes  INTEGER NOT NULL,
	text_chars  INTEGER NOT NULL,
	chunk_count INTEGER NOT NULL,
	source      TEXT NOT NULL DEFAULT 'upload',
	created_at  TIMESTAMP NOT NULL
);`

// NewStore opens (or creates) the registry database under dataDir.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "documents.db")

	// WAL mode so concurrent request handlers don't serialize on writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert registers a document.
func (s *Store) Insert(ctx context.Context, doc *Document) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (id, filename, extension, size_bytes, text_chars, chunk_count, source, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.Filename, doc.Extension, doc.SizeBytes, doc.TextChars,
		doc.ChunkCount, doc.Source, doc.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting document %s: %w", doc.ID, err)
	}
	return nil
}

// Get returns a document by id, or a not-found error.
func (s *Store) Get(ctx context.Context, id string) (*Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, filename, extension, size_bytes, text_chars, chunk_count, source, created_at
		 FROM documents WHERE id = ?`, id)

	var doc Document
	err := row.Scan(&doc.ID, &doc.Filename, &doc.Extension, &doc.SizeBytes,
		&doc.TextChars, &doc.ChunkCount, &doc.Source, &doc.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFoundf("document %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading document %s: %w", id, err)
	}
	return &doc, nil
}

// List returns all documents, newest first.
func (s *Store) List(ctx context.Context) ([]*Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename, extension, size_bytes, text_chars, chunk_count, source, created_at
		 FROM documents ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	docs := make([]*Document, 0)
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.Filename, &doc.Extension, &doc.SizeBytes,
			&doc.TextChars, &doc.ChunkCount, &doc.Source, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning document row: %w", err)
		}
		docs = append(docs, &doc)
	}
	return docs, rows.Err()
}

// Delete removes a document row. Returns a not-found error for unknown ids.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting document %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting document %s: %w", id, err)
	}
	if n == 0 {
		return apperrors.NotFoundf("document %s", id)
	}
	return nil
}
