package rest

import (
	"net/http"

	"github.com/aliskhannn/factdrill/internal/domain/entities"
)

// handleProblems serves GET /api/problems.
func (h *Handler) handleProblems(w http.ResponseWriter, r *http.Request) {
	q, err := parseProblemQuery(r.URL.Query(), h.opts.DefaultMasteryThreshold)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	facts, err := h.problemService.Select(r.Context(), q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if facts == nil {
		facts = []entities.Fact{}
	}
	writeJSON(w, http.StatusOK, facts)
}
