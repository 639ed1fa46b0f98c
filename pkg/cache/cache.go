// Package cache stores decomposition results and rendered artifacts keyed
// by content hash.
//
// A decomposition depends only on the input topology, so the hash of the
// canonical graph encoding is a stable key. Backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: shared cache for the API server
//   - [NullCache]: caching disabled
//
// Keys are produced by a [Keyer] so that multi-tenant deployments can scope
// them with [NewScopedKeyer].
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long decomposition results stay cached.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// DecompositionKeyOpts are the options that change a decomposition result.
type DecompositionKeyOpts struct {
	Verified bool `json:"verified,omitempty"`
}

// RenderKeyOpts are the options that change a rendered artifact.
type RenderKeyOpts struct {
	Format string `json:"format"`
	Labels bool   `json:"labels,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	DecompositionKey(graphHash string, opts DecompositionKeyOpts) string
	RenderKey(graphHash string, opts RenderKeyOpts) string
}

// DefaultKeyer produces unscoped keys of the form "kind:hash".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DecompositionKey returns the key for a decomposition of graphHash.
func (DefaultKeyer) DecompositionKey(graphHash string, opts DecompositionKeyOpts) string {
	return hashKey("segments", graphHash, opts)
}

// RenderKey returns the key for a rendered view of graphHash.
func (DefaultKeyer) RenderKey(graphHash string, opts RenderKeyOpts) string {
	return hashKey("render", graphHash, opts)
}
