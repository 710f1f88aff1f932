// Package cache provides content-addressed caching for the screen pipeline.
//
// The pipeline caches three things, each behind its own key family:
//   - parsed layout snapshots, keyed by document hash + viewport + options
//   - rendered artifacts, keyed by layout hash + format + options
//   - raw documents fetched by a collaborator, keyed by screen id
//
// Backends: [FileCache] for CLI usage, [RedisCache] for multi-instance
// deployments, and [NullCache] to disable caching. All backends are safe
// for concurrent use.
package cache

import (
	"context"
	"time"
)

// Default TTLs per cached object class.
const (
	// TTLDocument bounds how long a fetched raw document is reused.
	TTLDocument = 15 * time.Minute
	// TTLLayout bounds resolved geometry snapshots.
	TTLLayout = 24 * time.Hour
	// TTLArtifact bounds rendered outputs.
	TTLArtifact = 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the layout inputs that change the resolved geometry.
type LayoutKeyOpts struct {
	Width  float64
	Height float64
}

// ArtifactKeyOpts are the render inputs that change the output bytes.
type ArtifactKeyOpts struct {
	Format string
}

// Keyer generates cache keys for each pipeline stage.
type Keyer interface {
	// DocumentKey generates a key for raw document caching.
	DocumentKey(screenID string) string

	// LayoutKey generates a key for geometry snapshot caching.
	LayoutKey(documentHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for rendered artifact caching.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components into stable, collision-resistant keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// DocumentKey generates a key for raw document caching.
func (k *DefaultKeyer) DocumentKey(screenID string) string {
	return hashKey("doc", screenID)
}

// LayoutKey generates a key for geometry snapshot caching.
func (k *DefaultKeyer) LayoutKey(documentHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", documentHash, opts)
}

// ArtifactKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
