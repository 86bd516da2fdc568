package vectorindex

import (
	"fmt"

	"github.com/google/uuid"
)

// CollectionName is the single Qdrant collection holding all chunk entries.
const CollectionName = "documents"

// VectorDimension is the embedding size for text-embedding-3-small.
const VectorDimension = 1536

// Entry is one chunk's persisted record: vector plus typed metadata.
type Entry struct {
	DocumentID string
	Filename   string
	ChunkIndex int
	Text       string
	Vector     []float32
}

// EntryID returns the logical entry identifier, also stored in the payload.
func (e *Entry) EntryID() string {
	return fmt.Sprintf("%s_chunk_%d", e.DocumentID, e.ChunkIndex)
}

// PointID maps the logical entry id onto a Qdrant-accepted UUID.
// Qdrant point ids must be UUIDs or integers, so the string id is hashed
// deterministically (same entry always maps to the same point).
func (e *Entry) PointID() string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(e.EntryID())).String()
}

// ScoredEntry is a search hit: entry metadata plus its similarity score.
type ScoredEntry struct {
	EntryID    string
	DocumentID string
	Filename   string
	ChunkIndex int
	Text       string
	Score      float64
}

// Stats summarizes the collection for the stats endpoint.
type Stats struct {
	TotalEntries uint64 `json:"total_entries"`
	Dimension    int    `json:"dimension"`
	Status       string `json:"status"`
}
