package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/heartmarshall/flashcard-tutor/internal/adapter/memory"
	"github.com/heartmarshall/flashcard-tutor/internal/adapter/postgres"
	"github.com/heartmarshall/flashcard-tutor/internal/adapter/sqlite"
	"github.com/heartmarshall/flashcard-tutor/internal/config"
)

// KV is the key-value backend behind the deck store.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Ping(ctx context.Context) error
}

// Store is an opened KV backend together with its driver name.
type Store struct {
	KV
	Driver string
	close  func()
}

// Close releases the backend's connections.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// OpenStore opens the backend selected by cfg.Storage.Driver and applies
// its migrations.
func OpenStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Store, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		kv := memory.NewKVStore()
		return &Store{KV: kv, Driver: config.StorageMemory, close: func() { kv.Close() }}, nil

	case config.StorageSQLite:
		if err := ensureDir(cfg.Storage.SQLitePath); err != nil {
			return nil, fmt.Errorf("prepare sqlite path: %w", err)
		}
		kv, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info("storage opened",
			slog.String("driver", config.StorageSQLite),
			slog.String("path", cfg.Storage.SQLitePath),
		)
		return &Store{KV: kv, Driver: config.StorageSQLite, close: func() { kv.Close() }}, nil

	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info("storage opened", slog.String("driver", config.StoragePostgres))
		return &Store{KV: postgres.NewKVStore(pool), Driver: config.StoragePostgres, close: pool.Close}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func ensureDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
