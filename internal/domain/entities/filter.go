package entities

import "slices"

// History answers correct-count lookups for a single learner.
type History interface {
	CorrectCount(key FactKey) (int, bool)
}

// Predicate is one condition a fact must satisfy. Predicates are
// independent of each other, so the order in which they are applied never
// changes the result set.
type Predicate interface {
	Matches(f Fact, h History) bool
}

// RangeFilter bounds the product. A nil bound is open.
type RangeFilter struct {
	Min *int
	Max *int
}

func (p RangeFilter) Matches(f Fact, _ History) bool {
	if p.Min != nil && f.Product < *p.Min {
		return false
	}
	if p.Max != nil && f.Product > *p.Max {
		return false
	}
	return true
}

// ExclusionFilter rejects facts where either operand is in Factors.
type ExclusionFilter struct {
	Factors []int
}

func (p ExclusionFilter) Matches(f Fact, _ History) bool {
	return !slices.Contains(p.Factors, f.Multiplicand) && !slices.Contains(p.Factors, f.Multiplier)
}

// DivisibilityFilter keeps products that are multiples of Divisor.
// A zero divisor never reaches this type; see NewFactFilter.
type DivisibilityFilter struct {
	Divisor int
}

func (p DivisibilityFilter) Matches(f Fact, _ History) bool {
	return f.Product%p.Divisor == 0
}

// FactorFilter keeps facts where one of the operands equals Factor.
type FactorFilter struct {
	Factor int
}

func (p FactorFilter) Matches(f Fact, _ History) bool {
	return f.Multiplicand == p.Factor || f.Multiplier == p.Factor
}

// DedupeFilter keeps one orientation of each commutative pair (3x7, not 7x3).
type DedupeFilter struct{}

func (DedupeFilter) Matches(f Fact, _ History) bool {
	return f.Multiplicand <= f.Multiplier
}

// MasteryFilter drops facts the learner has answered correctly at least
// Threshold times. A fact without history is never mastered.
type MasteryFilter struct {
	LearnerID int64
	Threshold int
}

func (p MasteryFilter) Matches(f Fact, h History) bool {
	if h == nil {
		return true
	}
	correct, ok := h.CorrectCount(f.Key())
	if !ok {
		return true
	}
	return correct < p.Threshold
}

// FactFilter is the conjunction of its predicates. The zero value matches
// every fact.
type FactFilter struct {
	Predicates []Predicate
}

// Matches reports whether f satisfies every predicate.
func (ff FactFilter) Matches(f Fact, h History) bool {
	for _, p := range ff.Predicates {
		if !p.Matches(f, h) {
			return false
		}
	}
	return true
}

// Mastery returns the mastery predicate if the filter has one.
func (ff FactFilter) Mastery() (MasteryFilter, bool) {
	for _, p := range ff.Predicates {
		if m, ok := p.(MasteryFilter); ok {
			return m, true
		}
	}
	return MasteryFilter{}, false
}

// Apply returns the facts that satisfy the filter, preserving order.
func (ff FactFilter) Apply(facts []Fact, h History) []Fact {
	out := make([]Fact, 0, len(facts))
	for _, f := range facts {
		if ff.Matches(f, h) {
			out = append(out, f)
		}
	}
	return out
}

// ProblemQuery is the set of options accepted by the problem selector.
type ProblemQuery struct {
	Count            int
	MinProduct       *int
	MaxProduct       *int
	ExcludeFactors   []int
	OnlyMultipleOf   *int
	FactorX          *int
	Dedupe           bool
	ExcludeMastered  bool
	LearnerID        int64
	MasteryThreshold int
}

// DefaultProblemCount is the sample size used when none is requested.
const DefaultProblemCount = 10

// NewProblemQuery returns a query with every option at its default.
func NewProblemQuery() ProblemQuery {
	return ProblemQuery{
		Count:            DefaultProblemCount,
		LearnerID:        DefaultLearnerID,
		MasteryThreshold: DefaultMasteryThreshold,
	}
}

// NewFactFilter translates the query options into predicates. Inactive
// options produce no predicate.
func NewFactFilter(q ProblemQuery) FactFilter {
	var preds []Predicate

	if q.MinProduct != nil || q.MaxProduct != nil {
		preds = append(preds, RangeFilter{Min: q.MinProduct, Max: q.MaxProduct})
	}
	if len(q.ExcludeFactors) > 0 {
		factors := slices.Clone(q.ExcludeFactors)
		slices.Sort(factors)
		preds = append(preds, ExclusionFilter{Factors: slices.Compact(factors)})
	}
	// only_multiple_of=0 means "no filter".
	if q.OnlyMultipleOf != nil && *q.OnlyMultipleOf != 0 {
		preds = append(preds, DivisibilityFilter{Divisor: *q.OnlyMultipleOf})
	}
	if q.FactorX != nil {
		preds = append(preds, FactorFilter{Factor: *q.FactorX})
	}
	if q.Dedupe {
		preds = append(preds, DedupeFilter{})
	}
	if q.ExcludeMastered {
		preds = append(preds, MasteryFilter{LearnerID: q.LearnerID, Threshold: q.MasteryThreshold})
	}

	return FactFilter{Predicates: preds}
}
