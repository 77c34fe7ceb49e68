package service

import (
	"context"
	"time"

	"github.com/aliskhannn/factdrill/internal/domain/entities"
)

// FactRepository is the fact store: a write-once table of multiplication facts.
type FactRepository interface {
	SeedIfEmpty(ctx context.Context) (bool, error)
	Count(ctx context.Context) (int, error)
	Query(ctx context.Context, filter entities.FactFilter) ([]entities.Fact, error)
}

// ProgressRepository is the progress store. UpsertAttempt must be atomic
// per (learner, multiplicand, multiplier) key.
type ProgressRepository interface {
	UpsertAttempt(ctx context.Context, learnerID int64, multiplicand, multiplier int, wasCorrect bool, at time.Time) error
	Get(ctx context.Context, learnerID int64, multiplicand, multiplier int) (*entities.ProgressRecord, error)
	ListByLearner(ctx context.Context, learnerID int64) ([]*entities.ProgressRecord, error)
}
