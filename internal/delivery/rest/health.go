package rest

import (
	"net/http"

	"go.uber.org/zap"
)

// handleHealth serves GET /healthz.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.healthService.Check(r.Context()); err != nil {
		h.logger.Warn("health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, statusResponse{Status: "unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}
