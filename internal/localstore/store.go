// Package localstore holds the string-keyed slot storage the sync service
// writes its redundant copies to.
package localstore

import (
	"context"
	"fmt"

	"github.com/lshigami/intuity-sync/config"
)

// Store is a string-keyed store of serialized text values.
type Store interface {
	// Get returns the value stored under key. ok is false when the key has
	// never been written.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// New opens the backend selected by cfg.LocalStore.Driver.
func New(cfg *config.Config) (Store, error) {
	switch cfg.LocalStore.Driver {
	case "", "memory":
		return NewMemory(), nil
	case "sqlite":
		return OpenSQLite(cfg.LocalStore.Path)
	case "redis":
		return NewRedis(cfg.Redis)
	default:
		return nil, fmt.Errorf("unknown local store driver %q", cfg.LocalStore.Driver)
	}
}
