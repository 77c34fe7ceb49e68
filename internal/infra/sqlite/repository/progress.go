package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/aliskhannn/factdrill/internal/domain/entities"
	"github.com/aliskhannn/factdrill/internal/infra/retry"
	"github.com/aliskhannn/factdrill/internal/infra/sqlite"
)

// ProgressRepository provides access to learner progress data in the database.
type ProgressRepository struct {
	db    *sqlx.DB
	retry retry.Policy
}

// NewProgressRepository creates a new ProgressRepository.
func NewProgressRepository(db *sqlx.DB) *ProgressRepository {
	return &ProgressRepository{db: db, retry: retry.DefaultPolicy}
}

// UpsertAttempt records one attempt with a single insert-or-increment
// statement. Lock contention is retried until the write lands.
func (r *ProgressRepository) UpsertAttempt(
	ctx context.Context,
	learnerID int64,
	multiplicand, multiplier int,
	wasCorrect bool,
	at time.Time,
) error {
	query := `
		INSERT INTO user_progress (user_id, multiplicand, multiplier, attempts, correct, last_attempt)
		VALUES (?, ?, ?, 1, ?, ?)
		ON CONFLICT (user_id, multiplicand, multiplier) DO UPDATE SET
			attempts = attempts + 1,
			correct = correct + excluded.correct,
			last_attempt = excluded.last_attempt
	`

	correct := 0
	if wasCorrect {
		correct = 1
	}

	err := r.retry.OnConflict(ctx, func(ctx context.Context) error {
		_, err := r.db.ExecContext(ctx, query, learnerID, multiplicand, multiplier, correct, at.UTC())
		return sqlite.Classify(err)
	})
	if err != nil {
		return fmt.Errorf("upsert attempt: %w", err)
	}

	return nil
}

// Get retrieves a single progress record.
func (r *ProgressRepository) Get(ctx context.Context, learnerID int64, multiplicand, multiplier int) (*entities.ProgressRecord, error) {
	query := `
		SELECT user_id, multiplicand, multiplier, attempts, correct, last_attempt
		FROM user_progress
		WHERE user_id = ? AND multiplicand = ? AND multiplier = ?
	`

	var p entities.ProgressRecord
	if err := r.db.GetContext(ctx, &p, query, learnerID, multiplicand, multiplier); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrProgressNotFound
		}
		return nil, fmt.Errorf("get progress: %w", sqlite.Classify(err))
	}

	return &p, nil
}

// ListByLearner retrieves all progress records for a learner.
func (r *ProgressRepository) ListByLearner(ctx context.Context, learnerID int64) ([]*entities.ProgressRecord, error) {
	query := `
		SELECT user_id, multiplicand, multiplier, attempts, correct, last_attempt
		FROM user_progress
		WHERE user_id = ?
		ORDER BY multiplicand, multiplier
	`

	var records []*entities.ProgressRecord
	if err := r.db.SelectContext(ctx, &records, query, learnerID); err != nil {
		return nil, fmt.Errorf("list progress: %w", sqlite.Classify(err))
	}

	return records, nil
}
