package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	// Blank out anything the surrounding environment may set; empty values
	// fall back to defaults and t.Setenv restores the originals.
	for _, key := range []string{
		"PORT", "QDRANT_HOST", "QDRANT_PORT", "MAX_FILE_SIZE_MB",
		"CHUNK_SIZE", "CHUNK_OVERLAP", "DEFAULT_TOP_K",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.QdrantHost != "localhost" {
		t.Errorf("QdrantHost = %q, want localhost", cfg.QdrantHost)
	}
	if cfg.QdrantPort != 6334 {
		t.Errorf("QdrantPort = %d, want 6334", cfg.QdrantPort)
	}
	if cfg.MaxFileSizeMB != 15 {
		t.Errorf("MaxFileSizeMB = %d, want 15", cfg.MaxFileSizeMB)
	}
	if cfg.ChunkSize != 1000 {
		t.Errorf("ChunkSize = %d, want 1000", cfg.ChunkSize)
	}
	if cfg.ChunkOverlap != 200 {
		t.Errorf("ChunkOverlap = %d, want 200", cfg.ChunkOverlap)
	}
	if cfg.DefaultTopK != 5 {
		t.Errorf("DefaultTopK = %d, want 5", cfg.DefaultTopK)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("CHUNK_SIZE", "500")
	t.Setenv("MAX_FILE_SIZE_MB", "2")

	cfg := Load()

	if cfg.Port != "9999" {
		t.Errorf("Port = %q, want 9999", cfg.Port)
	}
	if cfg.ChunkSize != 500 {
		t.Errorf("ChunkSize = %d, want 500", cfg.ChunkSize)
	}
	if cfg.MaxFileSizeMB != 2 {
		t.Errorf("MaxFileSizeMB = %d, want 2", cfg.MaxFileSizeMB)
	}
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "not-a-number")

	cfg := Load()
	if cfg.ChunkSize != 1000 {
		t.Errorf("ChunkSize = %d, want default 1000 for invalid value", cfg.ChunkSize)
	}
}

func TestMaxFileSizeBytes(t *testing.T) {
	cfg := &Config{MaxFileSizeMB: 15}
	if got, want := cfg.MaxFileSizeBytes(), int64(15<<20); got != want {
		t.Errorf("MaxFileSizeBytes() = %d, want %d", got, want)
	}
}
