// Package cache provides pluggable byte caching for pipeline stages.
//
// The layout and render stages of the visualization pipeline are pure
// functions of their inputs, so their outputs are cached under content
// hashes: layouts are keyed by the wallet snapshot hash plus layout options,
// rendered artifacts by the layout hash plus render options.
//
// Three backends are provided:
//   - FileCache: directory-backed, used by the CLI
//   - RedisCache: shared cache for the HTTP API
//   - NullCache: no-op, used in tests and with --no-cache
package cache

import (
	"context"
	"time"
)

// TTLs for the different cached artifact classes.
const (
	// TTLLayout is the time-to-live for cached treemap layouts.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact is the time-to-live for rendered outputs (SVG, PNG, JSON).
	TTLArtifact = 7 * 24 * time.Hour

	// TTLPrice is the time-to-live for current price responses. Historical
	// prices are immutable and cached without expiry by the pricing client.
	TTLPrice = time.Hour
)

// Cache stores opaque byte values under string keys with per-entry TTLs.
//
// Implementations must be safe for concurrent use. A missing key is a miss,
// not an error; errors are reserved for backend failures.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// LayoutKeyOpts are the options that distinguish cached layouts.
type LayoutKeyOpts struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	GroupBy string  `json:"group_by,omitempty"`
}

// ArtifactKeyOpts are the options that distinguish rendered artifacts.
type ArtifactKeyOpts struct {
	Format    string `json:"format"`
	ColorBy   string `json:"color_by,omitempty"`
	ShowLabel bool   `json:"show_label,omitempty"`
}

// Keyer generates cache keys for the different artifact classes.
type Keyer interface {
	// HTTPKey generates a key for HTTP response caching.
	HTTPKey(namespace, key string) string

	// LayoutKey generates a key for treemap layout caching.
	LayoutKey(snapshotHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for rendered artifact caching.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates hashed, prefixed cache keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// HTTPKey generates a key for HTTP response caching.
// The key is not hashed so that namespaced keys remain greppable.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// LayoutKey generates a key for treemap layout caching.
func (k *DefaultKeyer) LayoutKey(snapshotHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", snapshotHash, opts)
}

// ArtifactKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix so that multiple tenants or
// deployments can share one backend without key collisions.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(snapshotHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(snapshotHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
