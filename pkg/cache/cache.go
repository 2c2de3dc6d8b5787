// Package cache stores rendered artifacts so that re-rendering an identical
// table with identical options is a lookup.
//
// # Backends
//
//   - [FileCache]: one file per artifact under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance, for bots running on several hosts
//   - [NullCache]: stores nothing (--no-cache, tests)
//
// # Keys
//
// Keys are built by a [Keyer] from a content hash of the table and the
// render options that affect the output, so any change to cells, font,
// padding, colors or format produces a different key.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the data for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// DefaultTTL is how long rendered artifacts are kept.
const DefaultTTL = 7 * 24 * time.Hour

// ArtifactKeyOpts holds the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format    string    `json:"format"`
	Font      string    `json:"font"`
	FontSize  float64   `json:"font_size"`
	Padding   [2]int    `json:"padding"`
	Margin    [4]int    `json:"margin"`
	Align     string    `json:"align"`
	Palette   [8]string `json:"palette"`
	StockMode bool      `json:"stock_mode"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key of a rendered artifact.
	ArtifactKey(tableHash string, opts ArtifactKeyOpts) string
}

const artifactKeyType = "artifact"

// DefaultKeyer builds unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<sha256 of hash and options>".
func (DefaultKeyer) ArtifactKey(tableHash string, opts ArtifactKeyOpts) string {
	return hashKey(artifactKeyType, tableHash, opts)
}
