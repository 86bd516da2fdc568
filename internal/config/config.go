// Package config loads service configuration from environment variables.
package config

import (
	"fmt"
	"os"
)

// Config holds everything the service needs at startup. It is built once in
// main and handed to constructors; nothing reads the environment after Load.
type Config struct {
	// HTTP
	Port string

	// Qdrant
	QdrantHost string
	QdrantPort int

	// Storage
	UploadDir string
	DataDir   string

	// Upload limits
	MaxFileSizeMB int

	// Chunking
	ChunkSize    int
	ChunkOverlap int

	// Retrieval
	DefaultTopK int

	// GitHub sync source (ragctl sync)
	GitHubOwner    string
	GitHubRepo     string
	GitHubBasePath string
}

// Load reads configuration from the environment, applying defaults.
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		QdrantHost:     getEnv("QDRANT_HOST", "localhost"),
		QdrantPort:     getEnvInt("QDRANT_PORT", 6334),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		DataDir:        getEnv("DATA_DIR", "data"),
		MaxFileSizeMB:  getEnvInt("MAX_FILE_SIZE_MB", 15),
		ChunkSize:      getEnvInt("CHUNK_SIZE", 1000),
		ChunkOverlap:   getEnvInt("CHUNK_OVERLAP", 200),
		DefaultTopK:    getEnvInt("DEFAULT_TOP_K", 5),
		GitHubOwner:    getEnv("GITHUB_OWNER", ""),
		GitHubRepo:     getEnv("GITHUB_REPO", ""),
		GitHubBasePath: getEnv("GITHUB_BASE_PATH", "docs"),
	}
}

// MaxFileSizeBytes returns the upload ceiling in bytes.
func (c *Config) MaxFileSizeBytes() int64 {
	return int64(c.MaxFileSizeMB) << 20
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		var i int
		if _, err := fmt.Sscanf(v, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}
