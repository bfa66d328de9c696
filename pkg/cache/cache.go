// Package cache provides artifact caching for the render pipeline.
//
// Renders are deterministic, so a cached artifact keyed by its full input
// set (token, radius, contrast boost, format) never goes stale on content;
// TTLs exist only for disk housekeeping. The CLI uses the file cache, tests
// and one-shot callers use the null cache.
package cache

import (
	"context"
	"time"
)

// Default TTLs per artifact class.
const (
	// TTLArtifact applies to rendered outputs. Zero would also be correct
	// (renders are deterministic); seven days keeps cache directories from
	// growing without bound.
	TTLArtifact = 7 * 24 * time.Hour

	// TTLLayout applies to serialized layout results.
	TTLLayout = 7 * 24 * time.Hour
)

// Cache stores opaque byte blobs by key.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A TTL of 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// RenderKeyOpts are the inputs that distinguish one rendered artifact from
// another. Two renders with equal opts and token are byte-identical.
type RenderKeyOpts struct {
	Radius        float64 `json:"radius"`
	ContrastBoost float64 `json:"contrast_boost"`
	Format        string  `json:"format"`
}

// Keyer derives cache keys from render inputs.
type Keyer interface {
	// ArtifactKey generates a key for one rendered artifact.
	ArtifactKey(token string, opts RenderKeyOpts) string
}

// DefaultKeyer hashes the token together with the render options.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey generates a key for one rendered artifact.
func (DefaultKeyer) ArtifactKey(token string, opts RenderKeyOpts) string {
	return hashKey("artifact", token, opts)
}
