// Package metadata stores small key-value state that outlives a single
// run, such as the time of the last successful sync.
package metadata

import (
	"context"
)

// Keys used by the sync engine.
const (
	KeyLastSyncedAt = "last_synced_at"
)

type Repository interface {
	// Get returns nil without an error when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
