package service

import (
	"context"
	"fmt"
	"time"
)

// AttemptRecorder validates attempts and merges them into learner progress.
type AttemptRecorder struct {
	progress  ProgressRepository
	validator *AttemptValidator
	now       func() time.Time
}

// NewAttemptRecorder creates a new AttemptRecorder.
func NewAttemptRecorder(progress ProgressRepository) *AttemptRecorder {
	return &AttemptRecorder{
		progress:  progress,
		validator: NewAttemptValidator(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Record validates in and applies it to the learner's progress. Validation
// failures are returned before the store is touched.
func (r *AttemptRecorder) Record(ctx context.Context, in AttemptInput) error {
	a, err := r.validator.Validate(in)
	if err != nil {
		return err
	}

	if err := r.progress.UpsertAttempt(ctx, a.LearnerID, a.Multiplicand, a.Multiplier, a.WasCorrect, r.now()); err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}

	return nil
}
