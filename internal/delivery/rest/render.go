package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/aliskhannn/factdrill/internal/domain/entities"
)

type errorResponse struct {
	Error string `json:"error"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to HTTP statuses. Server-side failures are
// logged; client errors are not.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"

	switch {
	case errors.Is(err, entities.ErrValidation):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, entities.ErrProgressNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, entities.ErrStoreUnavailable):
		status, msg = http.StatusServiceUnavailable, "store unavailable"
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to send.
		h.logger.Debug("request canceled",
			zap.String("request_id", requestIDFrom(r.Context())),
			zap.String("path", r.URL.Path),
		)
		return
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("request_id", requestIDFrom(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}

	writeJSON(w, status, errorResponse{Error: msg})
}
