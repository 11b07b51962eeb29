// Package cache stores rendered grid artifacts and validation reports.
//
// Entries are keyed by content hash: the same item set at the same grid
// settings always maps to the same key, so a cache hit is always safe to
// serve. Caches are never a store of record for layouts.
//
// Three backends are provided:
//   - [FileCache]: one file per entry under an XDG cache directory (CLI)
//   - [RedisCache]: shared storage for multi-instance servers
//   - [NullCache]: disables caching
//
// Key construction lives behind [Keyer] so servers can isolate tenants with
// [ScopedKeyer].
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. A miss is not
	// an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default entry lifetimes.
const (
	TTLReport   = 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// ReportKeyOpts are the grid settings a validation report depends on.
type ReportKeyOpts struct {
	Columns    int     `json:"columns"`
	CellWidth  float64 `json:"cell_width"`
	CellHeight float64 `json:"cell_height"`
	Gap        float64 `json:"gap"`
}

// ArtifactKeyOpts are the render settings an artifact depends on.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Theme  string `json:"theme,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ReportKey keys a validation report by the hash of its item set.
	ReportKey(itemsHash string, opts ReportKeyOpts) string

	// ArtifactKey keys a rendered artifact by the hash of its report.
	ArtifactKey(reportHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "report:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ReportKey implements Keyer.
func (DefaultKeyer) ReportKey(itemsHash string, opts ReportKeyOpts) string {
	return hashKey("report", itemsHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(reportHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", reportHash, opts)
}
