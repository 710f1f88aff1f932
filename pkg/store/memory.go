package store

import (
	"context"
	"sync"
)

// MemoryStore is an in-process store for tests and single-run previews.
// Safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

// Put stores or replaces a document.
func (s *MemoryStore) Put(ctx context.Context, screenID string, doc []byte) error {
	if err := ValidateID(screenID); err != nil {
		return err
	}
	cp := make([]byte, len(doc))
	copy(cp, doc)
	s.mu.Lock()
	s.docs[screenID] = cp
	s.mu.Unlock()
	return nil
}

// Get returns the stored document or ErrNotFound.
func (s *MemoryStore) Get(ctx context.Context, screenID string) ([]byte, error) {
	s.mu.RLock()
	doc, ok := s.docs[screenID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(doc))
	copy(cp, doc)
	return cp, nil
}

// List returns all screen ids.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	return ids, nil
}

// Delete removes a document.
func (s *MemoryStore) Delete(ctx context.Context, screenID string) error {
	s.mu.Lock()
	delete(s.docs, screenID)
	s.mu.Unlock()
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close() error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
