package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/factdrill/internal/domain/entities"
	"github.com/aliskhannn/factdrill/internal/infra/postgres"
	"github.com/aliskhannn/factdrill/internal/infra/sqlfilter"
)

// seedLockKey serializes concurrent seeding across processes.
const seedLockKey = 7_300_030

// FactRepository provides access to the multiplication fact table.
type FactRepository struct {
	db         postgres.DBTX
	transactor *postgres.Transactor
	maxOperand int
}

// NewFactRepository creates a new FactRepository. Seeding runs inside
// transactions opened by transactor.
func NewFactRepository(db postgres.DBTX, transactor *postgres.Transactor, maxOperand int) *FactRepository {
	return &FactRepository{db: db, transactor: transactor, maxOperand: maxOperand}
}

// SeedIfEmpty populates the fact table when it holds no rows. It reports
// whether rows were inserted.
func (r *FactRepository) SeedIfEmpty(ctx context.Context) (bool, error) {
	var seeded bool

	err := r.transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, seedLockKey); err != nil {
			return fmt.Errorf("lock seed: %w", postgres.Classify(err))
		}

		var count int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM multiplication_table`).Scan(&count); err != nil {
			return fmt.Errorf("count facts: %w", postgres.Classify(err))
		}
		if count > 0 {
			return nil
		}

		query := `
			INSERT INTO multiplication_table (multiplicand, multiplier, product)
			SELECT a, b, a * b
			FROM generate_series(1, $1::int) AS a, generate_series(1, $1::int) AS b
			ON CONFLICT (multiplicand, multiplier) DO NOTHING
		`
		if _, err := tx.Exec(ctx, query, r.maxOperand); err != nil {
			return fmt.Errorf("insert facts: %w", postgres.Classify(err))
		}

		seeded = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("seed facts: %w", err)
	}

	return seeded, nil
}

// Count returns the number of stored facts.
func (r *FactRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM multiplication_table`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count facts: %w", postgres.Classify(err))
	}
	return count, nil
}

// Query returns every fact matching filter in unspecified order.
func (r *FactRepository) Query(ctx context.Context, filter entities.FactFilter) ([]entities.Fact, error) {
	query, args, err := sqlfilter.Build(filter, sqlfilter.Dollar)
	if err != nil {
		return nil, fmt.Errorf("build fact query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query facts: %w", postgres.Classify(err))
	}
	defer rows.Close()

	facts := make([]entities.Fact, 0)
	for rows.Next() {
		var f entities.Fact
		if err := rows.Scan(&f.Multiplicand, &f.Multiplier, &f.Product); err != nil {
			return nil, fmt.Errorf("scan fact: %w", err)
		}
		facts = append(facts, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query facts: %w", postgres.Classify(err))
	}

	return facts, nil
}
