// Package store persists raw screen documents by screen id.
//
// The layout engine itself never fetches documents - a byte blob is handed
// to the parser - but the serving surfaces (CLI preview, HTTP API) need
// somewhere to keep the documents they serve. The Store interface covers
// that with three backends:
//   - memory: in-process storage for tests and the preview TUI
//   - file: one file per screen under a directory, for CLI usage
//   - mongo: MongoDB-backed storage for hosted deployments
//
// Stored documents are opaque bytes; validity is the parser's concern.
package store

import (
	"context"
	"errors"
	"regexp"

	"github.com/google/uuid"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when no document exists for a screen id.
	ErrNotFound = errors.New("screen not found")

	// ErrInvalidID is returned for ids that are empty or unsafe as keys.
	ErrInvalidID = errors.New("invalid screen id")
)

// Store is the document persistence interface.
// A Put for an existing id replaces the document wholesale, mirroring how
// a new document replaces a live Screen: there is no partial patch path.
type Store interface {
	// Put stores or replaces the document for a screen id.
	Put(ctx context.Context, screenID string, doc []byte) error

	// Get returns the document for a screen id, or ErrNotFound.
	Get(ctx context.Context, screenID string) ([]byte, error)

	// List returns all known screen ids in unspecified order.
	List(ctx context.Context) ([]string, error)

	// Delete removes a screen's document. Missing ids are not an error.
	Delete(ctx context.Context, screenID string) error

	// Close releases backend resources.
	Close() error
}

// Save stores a document under a freshly generated screen id and returns it.
func Save(ctx context.Context, s Store, doc []byte) (string, error) {
	id := uuid.NewString()
	if err := s.Put(ctx, id, doc); err != nil {
		return "", err
	}
	return id, nil
}

// screenIDRe limits ids to filesystem- and key-safe characters.
var screenIDRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateID checks that a screen id is non-empty and key-safe.
func ValidateID(id string) error {
	if !screenIDRe.MatchString(id) || len(id) > 128 {
		return ErrInvalidID
	}
	return nil
}
