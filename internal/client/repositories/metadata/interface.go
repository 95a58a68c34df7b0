// Package metadata persists small key/value settings of the CLI, such as the
// API access and refresh tokens, in the local sqlite database.
package metadata

import (
	"context"
)

// Repository is a persisted string key/value store.
type Repository interface {
	// Get returns the value and true, or "" and false when the key is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	// SetMany upserts all pairs atomically.
	SetMany(ctx context.Context, values map[string]string) error
	// Delete removes the keys atomically; missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}
