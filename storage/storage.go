// Package storage holds the database variants a service can depend on.
// Services see only Database; which backend sits behind it is chosen once,
// from configuration, by Open.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/ainaplanass/exam/config"
)

// ErrNotFound is returned by Load for a key that was never saved.
var ErrNotFound = errors.New("storage: record not found")

// ErrUnknownDriver is returned by Open for a driver with no constructor.
var ErrUnknownDriver = errors.New("storage: unknown driver")

// Database persists records by key.
type Database interface {
	// Name is the backend's display name, e.g. "PostgreSQL".
	Name() string
	Save(ctx context.Context, key, record string) error
}

// Reader loads records saved through a Database.
type Reader interface {
	Load(ctx context.Context, key string) (string, error)
}

// Store is a backend that can save, load and be closed.
type Store interface {
	Database
	Reader
	io.Closer
}

type constructor func(ctx context.Context, cfg config.StorageConfig) (Store, error)

var drivers = map[string]constructor{
	"memory": func(context.Context, config.StorageConfig) (Store, error) {
		return NewMemory(), nil
	},
	"sqlite": func(_ context.Context, cfg config.StorageConfig) (Store, error) {
		return OpenSQLite(cfg.DSN)
	},
	"redis": func(ctx context.Context, cfg config.StorageConfig) (Store, error) {
		return OpenRedis(ctx, cfg)
	},
	"postgres": func(ctx context.Context, cfg config.StorageConfig) (Store, error) {
		return OpenPostgres(ctx, cfg.DSN)
	},
}

// Drivers returns the names Open accepts, sorted.
func Drivers() []string {
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open builds the backend named by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	open, ok := drivers[cfg.Driver]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
	s, err := open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", cfg.Driver, err)
	}
	logger.Info("storage opened", "driver", cfg.Driver, "backend", s.Name())
	return s, nil
}
