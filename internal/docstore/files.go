package docstore

import (
	"fmt"
	"os"
	"path/filepath"
)

// Files stores raw upload bytes on disk. Files are named by document id,
// never by the user-supplied filename, so collisions and path tricks in
// uploaded names cannot reach the filesystem.
type Files struct {
	dir string
}

// NewFiles creates the upload directory if needed.
func NewFiles(dir string) (*Files, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &Files{dir: dir}, nil
}

// Path returns the storage path for a document.
func (f *Files) Path(id, ext string) string {
	return filepath.Join(f.dir, id+ext)
}

// Save writes the raw bytes and returns the storage path.
func (f *Files) Save(id, ext string, data []byte) (string, error) {
	path := f.Path(id, ext)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// Remove deletes the stored bytes. Missing files are not an error; cleanup
// paths may race with each other.
func (f *Files) Remove(id, ext string) error {
	err := os.Remove(f.Path(id, ext))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %s: %w", f.Path(id, ext), err)
	}
	return nil
}
