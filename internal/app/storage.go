package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/writeassist-backend/internal/adapter/memory"
	postgres "github.com/heartmarshall/writeassist-backend/internal/adapter/postgres"
	"github.com/heartmarshall/writeassist-backend/internal/adapter/postgres/usermeta"
	"github.com/heartmarshall/writeassist-backend/internal/config"
)

type settingsStore interface {
	GetMany(ctx context.Context, userID uuid.UUID, keys ...string) (map[string]string, error)
	Set(ctx context.Context, userID uuid.UUID, key, value string) error
	Delete(ctx context.Context, userID uuid.UUID, key string) error
}

type txRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

// storage is the settings persistence selected by config.
type storage struct {
	backend string
	meta    settingsStore
	tx      txRunner
	ping    pinger // nil when the backend cannot be down
	close   func()
}

func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*storage, error) {
	switch cfg.Storage.Backend {
	case config.StorageMemory:
		logger.Warn("using in-memory settings store, settings are lost on restart")
		return &storage{
			backend: config.StorageMemory,
			meta:    memory.NewStore(),
			tx:      memory.TxManager{},
			close:   func() {},
		}, nil

	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		logger.Info("connected to postgres",
			slog.Int("max_conns", int(cfg.Database.MaxConns)),
		)
		return &storage{
			backend: config.StoragePostgres,
			meta:    usermeta.New(pool),
			tx:      postgres.NewTxManager(pool),
			ping:    pool,
			close:   pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
