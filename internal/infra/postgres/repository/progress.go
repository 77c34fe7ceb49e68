package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/factdrill/internal/domain/entities"
	"github.com/aliskhannn/factdrill/internal/infra/postgres"
	"github.com/aliskhannn/factdrill/internal/infra/retry"
)

// ProgressRepository provides access to learner progress data in the database.
type ProgressRepository struct {
	db    postgres.DBTX
	retry retry.Policy
}

// NewProgressRepository creates a new ProgressRepository with the provided database handle.
func NewProgressRepository(db postgres.DBTX) *ProgressRepository {
	return &ProgressRepository{db: db, retry: retry.DefaultPolicy}
}

// UpsertAttempt records one attempt. The insert-or-increment is a single
// statement, so concurrent attempts on the same key never lose an update.
func (r *ProgressRepository) UpsertAttempt(
	ctx context.Context,
	learnerID int64,
	multiplicand, multiplier int,
	wasCorrect bool,
	at time.Time,
) error {
	query := `
		INSERT INTO user_progress (user_id, multiplicand, multiplier, attempts, correct, last_attempt)
		VALUES ($1, $2, $3, 1, $4, $5)
		ON CONFLICT (user_id, multiplicand, multiplier) DO UPDATE SET
			attempts = user_progress.attempts + 1,
			correct = user_progress.correct + EXCLUDED.correct,
			last_attempt = EXCLUDED.last_attempt
	`

	correct := 0
	if wasCorrect {
		correct = 1
	}

	err := r.retry.OnConflict(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query, learnerID, multiplicand, multiplier, correct, at)
		return postgres.Classify(err)
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
		WHERE user_id = $1 AND multiplicand = $2 AND multiplier = $3
	`

	var p entities.ProgressRecord
	err := r.db.QueryRow(ctx, query, learnerID, multiplicand, multiplier).Scan(
		&p.LearnerID,
		&p.Multiplicand,
		&p.Multiplier,
		&p.Attempts,
		&p.Correct,
		&p.LastAttempt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrProgressNotFound
		}
		return nil, fmt.Errorf("get progress: %w", postgres.Classify(err))
	}

	return &p, nil
}

// ListByLearner retrieves all progress records for a learner.
func (r *ProgressRepository) ListByLearner(ctx context.Context, learnerID int64) ([]*entities.ProgressRecord, error) {
	query := `
		SELECT user_id, multiplicand, multiplier, attempts, correct, last_attempt
		FROM user_progress
		WHERE user_id = $1
		ORDER BY multiplicand, multiplier
	`

	rows, err := r.db.Query(ctx, query, learnerID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", postgres.Classify(err))
	}
	defer rows.Close()

	var records []*entities.ProgressRecord
	for rows.Next() {
		var p entities.ProgressRecord
		if err := rows.Scan(
			&p.LearnerID,
			&p.Multiplicand,
			&p.Multiplier,
			&p.Attempts,
			&p.Correct,
			&p.LastAttempt,
		); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		records = append(records, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list progress: %w", postgres.Classify(err))
	}

	return records, nil
}
