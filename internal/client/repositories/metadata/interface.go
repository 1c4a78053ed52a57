// Package metadata is the console's small key/value store. The session lives
// here under a single key; backends are a local SQLite file or Redis.
package metadata

import (
	"context"
)

// Repository is a flat key/value store. Get returns (nil, nil) for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Notifier reports changes made to a Repository by any process sharing it.
// Each value on the returned channel is the changed key, or "" when the
// backend cannot tell which key changed. The channel is closed once ctx is
// done or the underlying watch fails.
type Notifier interface {
	Changes(ctx context.Context) (<-chan string, error)
}
