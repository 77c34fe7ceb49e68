package rest

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/aliskhannn/factdrill/internal/domain/entities"
)

// queryParams reads typed values out of a query string. Empty values count
// as absent; anything present but malformed becomes a validation error.
type queryParams struct {
	values url.Values
}

func newQueryParams(values url.Values) queryParams {
	return queryParams{values: values}
}

func (p queryParams) raw(name string) (string, bool) {
	v := strings.TrimSpace(p.values.Get(name))
	return v, v != ""
}

func (p queryParams) intPtr(name string) (*int, error) {
	raw, ok := p.raw(name)
	if !ok {
		return nil, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, entities.NewValidationError(name, "must be an integer")
	}
	return &v, nil
}

func (p queryParams) intOr(name string, def int) (int, error) {
	v, err := p.intPtr(name)
	if err != nil || v == nil {
		return def, err
	}
	return *v, nil
}

func (p queryParams) flag(name string) (bool, error) {
	raw, ok := p.raw(name)
	if !ok {
		return false, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, entities.NewValidationError(name, "must be a boolean")
	}
	return v, nil
}

// learnerID reads learner_id, falling back to the legacy user_id name.
func (p queryParams) learnerID() (int64, error) {
	for _, name := range []string{"learner_id", "user_id"} {
		raw, ok := p.raw(name)
		if !ok {
			continue
		}

		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, entities.NewValidationError(name, "must be an integer")
		}
		return v, nil
	}

	return entities.DefaultLearnerID, nil
}

// factorList parses a comma-separated factor list. Tokens that are not
// non-negative integers are dropped.
func factorList(raw string) []int {
	if raw == "" {
		return nil
	}

	var out []int
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" || strings.TrimLeft(tok, "0123456789") != "" {
			continue
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// parseProblemQuery builds a problem query from the request parameters.
func parseProblemQuery(values url.Values, defaultThreshold int) (entities.ProblemQuery, error) {
	p := newQueryParams(values)
	q := entities.NewProblemQuery()
	q.MasteryThreshold = defaultThreshold

	var err error
	if q.Count, err = p.intOr("n", entities.DefaultProblemCount); err != nil {
		return q, err
	}
	if q.MinProduct, err = p.intPtr("min_product"); err != nil {
		return q, err
	}
	if q.MaxProduct, err = p.intPtr("max_product"); err != nil {
		return q, err
	}
	if q.OnlyMultipleOf, err = p.intPtr("only_multiple_of"); err != nil {
		return q, err
	}
	if q.FactorX, err = p.intPtr("factor_x"); err != nil {
		return q, err
	}
	if q.Dedupe, err = p.flag("dedupe"); err != nil {
		return q, err
	}
	if q.ExcludeMastered, err = p.flag("exclude_mastered"); err != nil {
		return q, err
	}
	if q.LearnerID, err = p.learnerID(); err != nil {
		return q, err
	}
	if q.MasteryThreshold, err = p.intOr("mastery_threshold", defaultThreshold); err != nil {
		return q, err
	}

	if raw, ok := p.raw("exclude_factors"); ok {
		q.ExcludeFactors = factorList(raw)
	}

	return q, nil
}
