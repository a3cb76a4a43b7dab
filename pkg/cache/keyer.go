package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Keyer derives cache keys for the pipeline stages. Centralizing key
// construction guarantees the CLI and the API address the same entries.
type Keyer interface {
	// ColoringKey keys a computed coloring by the mesh content hash and
	// the options that shape the result.
	ColoringKey(meshHash string, opts ColoringKeyOpts) string

	// RenderKey keys a rendered artifact by the coloring content hash and
	// the output format.
	RenderKey(coloringHash, format string) string
}

// ColoringKeyOpts are the options that change a coloring's content and
// therefore belong in its cache key.
type ColoringKeyOpts struct {
	Algorithm string
	Seed      int
}

// DefaultKeyer derives keys as prefix:sha256(parts).
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ColoringKey generates a key for a computed coloring.
func (k *DefaultKeyer) ColoringKey(meshHash string, opts ColoringKeyOpts) string {
	return hashKey("coloring", meshHash, opts.Algorithm, opts.Seed)
}

// RenderKey generates a key for a rendered artifact.
func (k *DefaultKeyer) RenderKey(coloringHash, format string) string {
	return hashKey("render", coloringHash, format)
}

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation, e.g.
// per-tenant keys when several projects share one Redis instance.
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

// ColoringKey generates a prefixed coloring key.
func (k *ScopedKeyer) ColoringKey(meshHash string, opts ColoringKeyOpts) string {
	return k.prefix + k.inner.ColoringKey(meshHash, opts)
}

// RenderKey generates a prefixed render key.
func (k *ScopedKeyer) RenderKey(coloringHash, format string) string {
	return k.prefix + k.inner.RenderKey(coloringHash, format)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Full SHA-256 (64 hex chars) to prevent collisions.
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
