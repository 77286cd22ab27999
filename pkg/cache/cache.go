// Package cache provides pluggable byte caches for pipeline results.
//
// Layout and routing are pure functions of their inputs, which makes their
// results ideal cache material: the key is a hash of the document plus the
// options, and an entry never goes stale unless either changes. Three
// backends are provided: a file cache for CLI usage, a Redis cache for the
// serve command, and a null cache that disables caching entirely.
package cache

import (
	"context"
	"time"
)

// Cache entry lifetimes per stage. Layouts are pure functions of their key,
// so the TTLs exist only to bound storage growth.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is a byte-oriented cache with TTL support.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present (a miss is not an error).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the option values that participate in a layout cache
// key. Anything that changes the computed result must appear here.
type LayoutKeyOpts struct {
	Direction   string  `json:"direction"`
	LayerGap    float64 `json:"layer_gap"`
	NodeGap     float64 `json:"node_gap"`
	Padding     float64 `json:"padding"`
	BendPenalty float64 `json:"bend_penalty"`
	Routed      bool    `json:"routed"`
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// LayoutKey generates a key for a computed layout, from the document
	// content hash and the layout options.
	LayoutKey(docHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact, from the
	// layout content hash and the output format.
	ArtifactKey(layoutHash, format string) string
}

// DefaultKeyer is the standard key scheme: a stage prefix plus a SHA-256
// hash of the identifying parts.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", docHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash, format string) string {
	return hashKey("artifact", layoutHash, format)
}
