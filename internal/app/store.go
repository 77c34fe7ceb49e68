// Package app wires configuration, storage and services together.
package app

import (
	"context"
	"fmt"

	"github.com/aliskhannn/factdrill/internal/config"
	"github.com/aliskhannn/factdrill/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/factdrill/internal/infra/postgres/repository"
	"github.com/aliskhannn/factdrill/internal/infra/sqlite"
	sqliterepo "github.com/aliskhannn/factdrill/internal/infra/sqlite/repository"
	"github.com/aliskhannn/factdrill/internal/service"
	"github.com/aliskhannn/factdrill/internal/storage"
)

// Stores bundles the repositories of one backend.
type Stores struct {
	Facts    service.FactRepository
	Progress service.ProgressRepository

	close func()
}

// Close releases the backend's connections.
func (s *Stores) Close() {
	if s.close != nil {
		s.close()
	}
}

// OpenStores connects to the configured backend and creates its schema.
func OpenStores(ctx context.Context, cfg config.DB, maxOperand int) (*Stores, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, maxOperand)
	case config.DriverSQLite:
		return openSQLite(ctx, cfg, maxOperand)
	case config.DriverMemory:
		progress := storage.NewProgressStorage()
		return &Stores{
			Facts:    storage.NewFactStorage(maxOperand, progress),
			Progress: progress,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.Driver)
	}
}

func openPostgres(ctx context.Context, cfg config.DB, maxOperand int) (*Stores, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.MaxConnections),
		MaxConnLifetime: cfg.MaxConnLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &Stores{
		Facts:    pgrepo.NewFactRepository(pool, postgres.NewTransactor(pool), maxOperand),
		Progress: pgrepo.NewProgressRepository(pool),
		close:    pool.Close,
	}, nil
}

func openSQLite(ctx context.Context, cfg config.DB, maxOperand int) (*Stores, error) {
	db, err := sqlite.Open(ctx, sqlite.Config{
		Path:     cfg.SQLitePath,
		MaxConns: cfg.MaxConnections,
	})
	if err != nil {
		return nil, err
	}

	if err := sqlite.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Stores{
		Facts:    sqliterepo.NewFactRepository(db, maxOperand),
		Progress: sqliterepo.NewProgressRepository(db),
		close:    func() { _ = db.Close() },
	}, nil
}
