package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aliskhannn/factdrill/internal/domain/entities"
)

// handleProgress serves GET /api/progress.
func (h *Handler) handleProgress(w http.ResponseWriter, r *http.Request) {
	p := newQueryParams(r.URL.Query())

	learnerID, err := p.learnerID()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	threshold, err := p.intOr("mastery_threshold", h.opts.DefaultMasteryThreshold)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	summary, err := h.progressService.Summary(r.Context(), learnerID, threshold)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

type progressRecordResponse struct {
	Multiplicand int     `json:"multiplicand"`
	Multiplier   int     `json:"multiplier"`
	Product      int     `json:"product"`
	Attempts     int     `json:"attempts"`
	Correct      int     `json:"correct"`
	Mastered     bool    `json:"mastered"`
	LastAttempt  *string `json:"last_attempt"`
}

func toRecordResponse(rec *entities.ProgressRecord, threshold int) progressRecordResponse {
	resp := progressRecordResponse{
		Multiplicand: rec.Multiplicand,
		Multiplier:   rec.Multiplier,
		Product:      rec.Multiplicand * rec.Multiplier,
		Attempts:     rec.Attempts,
		Correct:      rec.Correct,
		Mastered:     rec.IsMastered(threshold),
	}
	if rec.LastAttempt != nil {
		ts := rec.LastAttempt.UTC().Format(time.RFC3339)
		resp.LastAttempt = &ts
	}
	return resp
}

// handleProgressFacts serves GET /api/progress/facts.
func (h *Handler) handleProgressFacts(w http.ResponseWriter, r *http.Request) {
	p := newQueryParams(r.URL.Query())

	learnerID, err := p.learnerID()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	threshold, err := p.intOr("mastery_threshold", h.opts.DefaultMasteryThreshold)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	records, err := h.progressService.Facts(r.Context(), learnerID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := make([]progressRecordResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, toRecordResponse(rec, threshold))
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleProgressFact serves GET /api/progress/facts/{multiplicand}/{multiplier}.
func (h *Handler) handleProgressFact(w http.ResponseWriter, r *http.Request) {
	p := newQueryParams(r.URL.Query())

	learnerID, err := p.learnerID()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	threshold, err := p.intOr("mastery_threshold", h.opts.DefaultMasteryThreshold)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	a, err := pathInt(r, "multiplicand")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	b, err := pathInt(r, "multiplier")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	rec, err := h.progressService.Fact(r.Context(), learnerID, a, b)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toRecordResponse(rec, threshold))
}

func pathInt(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		return 0, entities.NewValidationError(name, "must be an integer")
	}
	return v, nil
}
