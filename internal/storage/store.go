// Package storage persists the handful of string values the session keeps
// between runs. Every backend is a flat key-value map.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/brisa-edu/brisa-client/internal/config"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("storage: store is closed")

// Store is a string key-value store. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
	Close() error
}

// Open returns the backend selected by cfg.Storage.
func Open(cfg *config.Config) (Store, error) {
	switch cfg.Storage {
	case "memory":
		return NewMemoryStore(), nil
	case "file":
		return NewFileStore(cfg.StoragePath)
	case "sqlite":
		return NewSQLiteStore(cfg.StoragePath)
	case "postgres":
		return NewPostgresStore(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.Storage)
	}
}
