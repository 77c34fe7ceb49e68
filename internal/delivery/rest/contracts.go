package rest

import (
	"context"

	"github.com/aliskhannn/factdrill/internal/domain/entities"
	"github.com/aliskhannn/factdrill/internal/service"
)

type ProblemService interface {
	Select(ctx context.Context, q entities.ProblemQuery) ([]entities.Fact, error)
}

type AttemptService interface {
	Record(ctx context.Context, in service.AttemptInput) error
}

type ProgressService interface {
	Summary(ctx context.Context, learnerID int64, threshold int) (entities.ProgressSummary, error)
	Facts(ctx context.Context, learnerID int64) ([]*entities.ProgressRecord, error)
	Fact(ctx context.Context, learnerID int64, multiplicand, multiplier int) (*entities.ProgressRecord, error)
}

type HealthService interface {
	Check(ctx context.Context) error
}
