package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps one document file per screen id under a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a file store rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

const fileExt = ".json"

// Put stores or replaces a document.
func (s *FileStore) Put(ctx context.Context, screenID string, doc []byte) error {
	if err := ValidateID(screenID); err != nil {
		return err
	}
	return os.WriteFile(s.path(screenID), doc, 0644)
}

// Get returns the stored document or ErrNotFound.
func (s *FileStore) Get(ctx context.Context, screenID string) ([]byte, error) {
	if err := ValidateID(screenID); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(screenID))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return data, err
}

// List returns the screen ids present on disk.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), fileExt))
	}
	return ids, nil
}

// Delete removes a document. Missing files are not an error.
func (s *FileStore) Delete(ctx context.Context, screenID string) error {
	if err := ValidateID(screenID); err != nil {
		return err
	}
	err := os.Remove(s.path(screenID))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) path(screenID string) string {
	return filepath.Join(s.dir, screenID+fileExt)
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
