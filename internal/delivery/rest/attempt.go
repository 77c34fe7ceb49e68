package rest

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/aliskhannn/factdrill/internal/domain/entities"
	"github.com/aliskhannn/factdrill/internal/service"
)

const maxBodyBytes = 1 << 16

// handleAttempt serves POST /api/attempt.
func (h *Handler) handleAttempt(w http.ResponseWriter, r *http.Request) {
	in, err := decodeAttempt(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.attemptService.Record(r.Context(), in); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, statusResponse{Status: "ok"})
}

// decodeAttempt reads an attempt body. Numbers may arrive as JSON numbers
// or numeric strings; null is treated as absent.
func decodeAttempt(body io.Reader) (service.AttemptInput, error) {
	var fields map[string]any

	dec := json.NewDecoder(body)
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return service.AttemptInput{}, entities.NewValidationError("body", "is too large")
		}
		return service.AttemptInput{}, entities.NewValidationError("body", "must be a JSON object")
	}
	if fields == nil {
		return service.AttemptInput{}, entities.NewValidationError("body", "must be a JSON object")
	}

	var (
		in  service.AttemptInput
		err error
	)

	if in.LearnerID, err = learnerField(fields); err != nil {
		return in, err
	}
	if in.Multiplicand, err = intField(fields, "multiplicand"); err != nil {
		return in, err
	}
	if in.Multiplier, err = intField(fields, "multiplier"); err != nil {
		return in, err
	}
	if in.WasCorrect, err = boolField(fields, "was_correct"); err != nil {
		return in, err
	}

	return in, nil
}

func field(fields map[string]any, name string) (any, bool) {
	v, ok := fields[name]
	if !ok || v == nil {
		return nil, false
	}
	if n, ok := v.(json.Number); ok {
		return n.String(), true
	}
	return v, true
}

func intField(fields map[string]any, name string) (*int, error) {
	v, ok := field(fields, name)
	if !ok {
		return nil, nil
	}

	n, ok := parseInteger(v)
	if !ok || n < math.MinInt32 || n > math.MaxInt32 {
		return nil, entities.NewValidationError(name, "must be an integer")
	}
	i := int(n)
	return &i, nil
}

// learnerField reads learner_id, falling back to the legacy user_id name.
func learnerField(fields map[string]any) (*int64, error) {
	for _, name := range []string{"learner_id", "user_id"} {
		v, ok := field(fields, name)
		if !ok {
			continue
		}

		n, ok := parseInteger(v)
		if !ok {
			return nil, entities.NewValidationError(name, "must be an integer")
		}
		return &n, nil
	}
	return nil, nil
}

// parseInteger accepts base-10 integers and integral decimals such as
// "8.0". Fractions, hex or octal prefixes and non-numeric values are
// rejected.
func parseInteger(v any) (int64, bool) {
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	s = strings.TrimSpace(s)

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}

	if strings.ContainsAny(s, "xXpP_") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) ||
		f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// boolField accepts booleans, 0/1 style numbers and strconv boolean strings.
func boolField(fields map[string]any, name string) (*bool, error) {
	raw, ok := fields[name]
	if !ok || raw == nil {
		return nil, nil
	}

	if n, ok := raw.(json.Number); ok {
		f, err := n.Float64()
		if err != nil {
			return nil, entities.NewValidationError(name, "must be a boolean")
		}
		b := f != 0
		return &b, nil
	}

	b, err := cast.ToBoolE(raw)
	if err != nil {
		return nil, entities.NewValidationError(name, "must be a boolean")
	}
	return &b, nil
}
