// Package repository implements the fact and progress stores on SQLite.
package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/aliskhannn/factdrill/internal/domain/entities"
	"github.com/aliskhannn/factdrill/internal/infra/retry"
	"github.com/aliskhannn/factdrill/internal/infra/sqlfilter"
	"github.com/aliskhannn/factdrill/internal/infra/sqlite"
)

// FactRepository provides access to the multiplication fact table.
type FactRepository struct {
	db         *sqlx.DB
	maxOperand int
	retry      retry.Policy
}

// NewFactRepository creates a new FactRepository.
func NewFactRepository(db *sqlx.DB, maxOperand int) *FactRepository {
	return &FactRepository{db: db, maxOperand: maxOperand, retry: retry.DefaultPolicy}
}

// SeedIfEmpty populates the fact table when it holds no rows. It reports
// whether rows were inserted.
func (r *FactRepository) SeedIfEmpty(ctx context.Context) (bool, error) {
	var seeded bool

	err := r.retry.OnConflict(ctx, func(ctx context.Context) error {
		var err error
		seeded, err = r.seed(ctx)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("seed facts: %w", err)
	}

	return seeded, nil
}

func (r *FactRepository) seed(ctx context.Context) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, sqlite.Classify(err)
	}
	defer func() { _ = tx.Rollback() }()

	var count int
	if err := tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM multiplication_table`); err != nil {
		return false, fmt.Errorf("count facts: %w", sqlite.Classify(err))
	}
	if count > 0 {
		return false, nil
	}

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO multiplication_table (multiplicand, multiplier, product)
		VALUES (?, ?, ?)
		ON CONFLICT (multiplicand, multiplier) DO NOTHING
	`)
	if err != nil {
		return false, fmt.Errorf("prepare insert: %w", sqlite.Classify(err))
	}
	defer stmt.Close()

	for _, f := range entities.AllFacts(r.maxOperand) {
		if _, err := stmt.ExecContext(ctx, f.Multiplicand, f.Multiplier, f.Product); err != nil {
			return false, fmt.Errorf("insert fact %dx%d: %w", f.Multiplicand, f.Multiplier, sqlite.Classify(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit seed: %w", sqlite.Classify(err))
	}

	return true, nil
}

// Count returns the number of stored facts.
func (r *FactRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM multiplication_table`); err != nil {
		return 0, fmt.Errorf("count facts: %w", sqlite.Classify(err))
	}
	return count, nil
}

// Query returns every fact matching filter in unspecified order.
func (r *FactRepository) Query(ctx context.Context, filter entities.FactFilter) ([]entities.Fact, error) {
	query, args, err := sqlfilter.Build(filter, sqlfilter.Question)
	if err != nil {
		return nil, fmt.Errorf("build fact query: %w", err)
	}

	facts := make([]entities.Fact, 0)
	if err := r.db.SelectContext(ctx, &facts, query, args...); err != nil {
		return nil, fmt.Errorf("query facts: %w", sqlite.Classify(err))
	}

	return facts, nil
}
