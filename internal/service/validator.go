package service

import (
	"github.com/aliskhannn/factdrill/internal/domain/entities"
)

// AttemptInput is an attempt as submitted by a client. Nil fields were
// absent from the request.
type AttemptInput struct {
	LearnerID    *int64
	Multiplicand *int
	Multiplier   *int
	WasCorrect   *bool
}

// Attempt is a validated attempt with defaults applied.
type Attempt struct {
	LearnerID    int64
	Multiplicand int
	Multiplier   int
	WasCorrect   bool
}

// AttemptValidator checks attempt inputs before anything is written.
type AttemptValidator struct{}

// NewAttemptValidator creates a new AttemptValidator.
func NewAttemptValidator() *AttemptValidator {
	return &AttemptValidator{}
}

// Validate requires both operands. A missing learner defaults to
// entities.DefaultLearnerID and a missing outcome counts as incorrect; both
// defaults are long-standing client behavior and are kept on purpose.
func (v *AttemptValidator) Validate(in AttemptInput) (Attempt, error) {
	if in.Multiplicand == nil {
		return Attempt{}, entities.NewValidationError("multiplicand", "is required")
	}
	if in.Multiplier == nil {
		return Attempt{}, entities.NewValidationError("multiplier", "is required")
	}

	a := Attempt{
		LearnerID:    entities.DefaultLearnerID,
		Multiplicand: *in.Multiplicand,
		Multiplier:   *in.Multiplier,
	}
	if in.LearnerID != nil {
		a.LearnerID = *in.LearnerID
	}
	if in.WasCorrect != nil {
		a.WasCorrect = *in.WasCorrect
	}

	return a, nil
}
