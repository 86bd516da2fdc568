package vectorindex

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestEntryID(t *testing.T) {
	e := &Entry{DocumentID: "doc-abc", ChunkIndex: 3}
	if got, want := e.EntryID(), "doc-abc_chunk_3"; got != want {
		t.Errorf("EntryID() = %q, want %q", got, want)
	}
}

func TestPointID_Deterministic(t *testing.T) {
	a := &Entry{DocumentID: "doc-abc", ChunkIndex: 3}
	b := &Entry{DocumentID: "doc-abc", ChunkIndex: 3}
	if a.PointID() != b.PointID() {
		t.Error("same entry must map to the same point id")
	}

	other := &Entry{DocumentID: "doc-abc", ChunkIndex: 4}
	if a.PointID() == other.PointID() {
		t.Error("different entries must map to different point ids")
	}

	if _, err := uuid.Parse(a.PointID()); err != nil {
		t.Errorf("point id %q is not a valid UUID: %v", a.PointID(), err)
	}
}

func TestUpsertEntries_DimensionMismatch(t *testing.T) {
	// The dimension check runs before any network call, so a bare Index
	// is enough to exercise it.
	x := &Index{}
	entries := []*Entry{{
		DocumentID: "doc",
		ChunkIndex: 0,
		Text:       "chunk",
		Vector:     make([]float32, 3),
	}}

	err := x.UpsertEntries(context.Background(), entries)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestUpsertEntries_EmptyIsNoop(t *testing.T) {
	x := &Index{}
	if err := x.UpsertEntries(context.Background(), nil); err != nil {
		t.Errorf("empty upsert should be a no-op, got %v", err)
	}
}

func TestSearch_DimensionMismatch(t *testing.T) {
	x := &Index{}
	_, err := x.Search(context.Background(), make([]float32, 12), 5, nil)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}
