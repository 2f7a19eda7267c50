// Package cache stores computed marker layouts.
//
// Laying out one scene is cheap, but the HTTP API and the CLI see the same
// scenes over and over. Results are keyed by a hash of the scene plus the
// layout options that influence the output, so any change to either produces
// a fresh key.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: disables caching
package cache

import (
	"context"
	"time"
)

// TTLLayout is how long layout results are kept.
const TTLLayout = 7 * 24 * time.Hour

// Cache is a byte-oriented key-value store with per-entry TTL.
type Cache interface {
	// Get returns the stored value and whether it was found. A miss is not
	// an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey returns the key for a layout of the scene with the given hash.
	LayoutKey(sceneHash string, opts LayoutKeyOpts) string
}

// LayoutKeyOpts lists the options that change a layout result.
type LayoutKeyOpts struct {
	RelaxationPasses int    `json:"relaxation_passes"`
	Measurer         string `json:"measurer,omitempty"`
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a keyer without a namespace prefix.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<sha256(sceneHash, opts)>".
func (DefaultKeyer) LayoutKey(sceneHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", sceneHash, opts)
}
