package store

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
)

// storeUnderTest runs the shared Store contract against a backend.
func storeUnderTest(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	doc := []byte(`[{"id": "a", "type": "Text", "ui": {}}]`)

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}

	if err := s.Put(ctx, "login", doc); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	got, err := s.Get(ctx, "login")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !bytes.Equal(got, doc) {
		t.Errorf("Get = %q, want %q", got, doc)
	}

	// Put replaces wholesale.
	replacement := []byte(`[]`)
	if err := s.Put(ctx, "login", replacement); err != nil {
		t.Fatalf("Put (replace) error: %v", err)
	}
	if got, _ := s.Get(ctx, "login"); !bytes.Equal(got, replacement) {
		t.Errorf("Get after replace = %q, want %q", got, replacement)
	}

	if err := s.Put(ctx, "home", doc); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	ids, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	sort.Strings(ids)
	if len(ids) != 2 || ids[0] != "home" || ids[1] != "login" {
		t.Errorf("List = %v, want [home login]", ids)
	}

	if err := s.Delete(ctx, "login"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, err := s.Get(ctx, "login"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "login"); err != nil {
		t.Errorf("Delete of missing id should be a no-op, got %v", err)
	}

	if err := s.Put(ctx, "", doc); !errors.Is(err, ErrInvalidID) {
		t.Errorf("Put(empty id) error = %v, want ErrInvalidID", err)
	}
}

func TestMemoryStore(t *testing.T) {
	storeUnderTest(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	storeUnderTest(t, s)
}

func TestMemoryStoreCopiesDocuments(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	doc := []byte("original")

	if err := s.Put(ctx, "a", doc); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	doc[0] = 'X'

	got, _ := s.Get(ctx, "a")
	if string(got) != "original" {
		t.Errorf("stored document aliased the caller's slice: %q", got)
	}
}

func TestSave(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	id, err := Save(ctx, s, []byte("doc"))
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if id == "" {
		t.Fatal("Save returned an empty id")
	}
	if _, err := s.Get(ctx, id); err != nil {
		t.Errorf("Get(%s) error = %v, want stored document", id, err)
	}

	other, _ := Save(ctx, s, []byte("doc"))
	if other == id {
		t.Error("Save must generate a fresh id per call")
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"login", true},
		{"screen-2.v1_final", true},
		{"A9", true},
		{"", false},
		{".hidden", false},
		{"-leading", false},
		{"has space", false},
		{"path/traversal", false},
		{strings.Repeat("a", 129), false},
	}
	for _, tt := range tests {
		err := ValidateID(tt.id)
		if tt.valid && err != nil {
			t.Errorf("ValidateID(%q) = %v, want nil", tt.id, err)
		}
		if !tt.valid && !errors.Is(err, ErrInvalidID) {
			t.Errorf("ValidateID(%q) = %v, want ErrInvalidID", tt.id, err)
		}
	}
}
