package service

import (
	"context"
	"fmt"

	"github.com/aliskhannn/factdrill/internal/domain/entities"
)

// ProgressReporter aggregates learner progress.
type ProgressReporter struct {
	progress ProgressRepository
}

// NewProgressReporter creates a new ProgressReporter.
func NewProgressReporter(progress ProgressRepository) *ProgressReporter {
	return &ProgressReporter{progress: progress}
}

// Summary sums the learner's attempts and correct answers and counts the
// facts with at least threshold correct answers.
func (r *ProgressReporter) Summary(ctx context.Context, learnerID int64, threshold int) (entities.ProgressSummary, error) {
	records, err := r.progress.ListByLearner(ctx, learnerID)
	if err != nil {
		return entities.ProgressSummary{}, fmt.Errorf("progress summary: %w", err)
	}

	return entities.Summarize(records, threshold), nil
}

// Facts returns the learner's per-fact records.
func (r *ProgressReporter) Facts(ctx context.Context, learnerID int64) ([]*entities.ProgressRecord, error) {
	records, err := r.progress.ListByLearner(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("progress facts: %w", err)
	}

	if records == nil {
		records = []*entities.ProgressRecord{}
	}
	return records, nil
}

// Fact returns the learner's record for one fact, or
// entities.ErrProgressNotFound if the learner never attempted it.
func (r *ProgressReporter) Fact(ctx context.Context, learnerID int64, multiplicand, multiplier int) (*entities.ProgressRecord, error) {
	return r.progress.Get(ctx, learnerID, multiplicand, multiplier)
}
