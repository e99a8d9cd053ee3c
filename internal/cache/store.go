// Package cache provides a result cache for deterministic analysis
// responses, keyed by a digest of the canonical request body.
//
// Two backends implement Store: an in-memory TTL cache for single-instance
// deployments and a Redis cache for sharing results across instances.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// Store abstracts result cache storage. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get returns the cached payload for key, reporting whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores payload under key for the backend's configured TTL.
	Set(ctx context.Context, key string, payload []byte) error
	// Backend names the implementation for metrics labels.
	Backend() string
}

// Key derives a cache key from the canonical request body. Scoring is
// deterministic, so equal bodies always map to equal responses.
func Key(endpoint string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(endpoint))
	h.Write([]byte{0})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}
