// Package rest exposes the problem, attempt and progress services over
// JSON/HTTP.
package rest

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/aliskhannn/factdrill/internal/domain/entities"
)

// Options tunes request defaults.
type Options struct {
	DefaultMasteryThreshold int
}

type Handler struct {
	logger          *zap.Logger
	problemService  ProblemService
	attemptService  AttemptService
	progressService ProgressService
	healthService   HealthService
	opts            Options
}

func NewHandler(
	logger *zap.Logger,
	problemService ProblemService,
	attemptService AttemptService,
	progressService ProgressService,
	healthService HealthService,
	opts Options,
) *Handler {
	if opts.DefaultMasteryThreshold == 0 {
		opts.DefaultMasteryThreshold = entities.DefaultMasteryThreshold
	}

	return &Handler{
		logger:          logger,
		problemService:  problemService,
		attemptService:  attemptService,
		progressService: progressService,
		healthService:   healthService,
		opts:            opts,
	}
}

// Routes returns the API mux wrapped in the request middleware.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/problems", h.handleProblems)
	mux.HandleFunc("POST /api/attempt", h.handleAttempt)
	mux.HandleFunc("GET /api/progress", h.handleProgress)
	mux.HandleFunc("GET /api/progress/facts", h.handleProgressFacts)
	mux.HandleFunc("GET /api/progress/facts/{multiplicand}/{multiplier}", h.handleProgressFact)
	mux.HandleFunc("GET /healthz", h.handleHealth)

	return chain(mux,
		requestID(),
		h.recoverPanics(),
		h.logRequests(),
	)
}
