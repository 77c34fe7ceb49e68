package entities

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestAllFacts(t *testing.T) {
	facts := AllFacts(MaxOperand)
	require.Len(t, facts, 900)

	seen := make(map[FactKey]struct{}, len(facts))
	for _, f := range facts {
		assert.Equal(t, f.Multiplicand*f.Multiplier, f.Product)
		_, dup := seen[f.Key()]
		assert.False(t, dup, "duplicate fact %v", f.Key())
		seen[f.Key()] = struct{}{}
	}

	assert.Empty(t, AllFacts(0))
}

func TestNewFactFilter_Inactive(t *testing.T) {
	f := NewFactFilter(NewProblemQuery())
	assert.Empty(t, f.Predicates)
	assert.Len(t, f.Apply(AllFacts(MaxOperand), nil), 900)
}

func TestNewFactFilter_OnlyMultipleOfZero(t *testing.T) {
	q := NewProblemQuery()
	q.OnlyMultipleOf = intPtr(0)
	assert.Empty(t, NewFactFilter(q).Predicates)
}

func TestNewFactFilter_ExcludeFactorsCompacted(t *testing.T) {
	q := NewProblemQuery()
	q.ExcludeFactors = []int{10, 2, 10, 2}

	f := NewFactFilter(q)
	require.Len(t, f.Predicates, 1)
	assert.Equal(t, ExclusionFilter{Factors: []int{2, 10}}, f.Predicates[0])
	assert.Equal(t, []int{10, 2, 10, 2}, q.ExcludeFactors, "query must not be mutated")
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		pred Predicate
		fact Fact
		want bool
	}{
		{"range inside", RangeFilter{Min: intPtr(10), Max: intPtr(20)}, NewFact(3, 5), true},
		{"range below", RangeFilter{Min: intPtr(10)}, NewFact(3, 3), false},
		{"range above", RangeFilter{Max: intPtr(20)}, NewFact(5, 5), false},
		{"range inclusive", RangeFilter{Min: intPtr(25), Max: intPtr(25)}, NewFact(5, 5), true},
		{"exclusion multiplicand", ExclusionFilter{Factors: []int{10}}, NewFact(10, 3), false},
		{"exclusion multiplier", ExclusionFilter{Factors: []int{10}}, NewFact(3, 10), false},
		{"exclusion clear", ExclusionFilter{Factors: []int{10}}, NewFact(3, 4), true},
		{"divisible", DivisibilityFilter{Divisor: 4}, NewFact(2, 6), true},
		{"not divisible", DivisibilityFilter{Divisor: 5}, NewFact(2, 6), false},
		{"negative divisor", DivisibilityFilter{Divisor: -3}, NewFact(3, 1), true},
		{"factor left", FactorFilter{Factor: 7}, NewFact(7, 2), true},
		{"factor right", FactorFilter{Factor: 7}, NewFact(2, 7), true},
		{"factor missing", FactorFilter{Factor: 7}, NewFact(2, 6), false},
		{"dedupe keeps", DedupeFilter{}, NewFact(3, 7), true},
		{"dedupe square", DedupeFilter{}, NewFact(4, 4), true},
		{"dedupe drops", DedupeFilter{}, NewFact(7, 3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pred.Matches(tt.fact, nil))
		})
	}
}

func TestMasteryFilter(t *testing.T) {
	history := NewProgressIndex([]*ProgressRecord{
		{LearnerID: 1, Multiplicand: 4, Multiplier: 6, Attempts: 3, Correct: 3},
		{LearnerID: 1, Multiplicand: 2, Multiplier: 2, Attempts: 5, Correct: 2},
	})
	m := MasteryFilter{LearnerID: 1, Threshold: 3}

	assert.False(t, m.Matches(NewFact(4, 6), history), "mastered fact must be excluded")
	assert.True(t, m.Matches(NewFact(6, 4), history), "commuted fact has its own history")
	assert.True(t, m.Matches(NewFact(2, 2), history), "below threshold")
	assert.True(t, m.Matches(NewFact(9, 9), history), "no history means not mastered")
	assert.True(t, m.Matches(NewFact(4, 6), nil))
}

func TestFactFilter_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	all := AllFacts(MaxOperand)

	properties.Property("dedupe results satisfy multiplicand <= multiplier", prop.ForAll(
		func(minP, span int, factor int) bool {
			q := NewProblemQuery()
			q.Dedupe = true
			q.MinProduct = intPtr(minP)
			q.MaxProduct = intPtr(minP + span)
			q.FactorX = intPtr(factor)
			for _, f := range NewFactFilter(q).Apply(all, nil) {
				if f.Multiplicand > f.Multiplier {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 900),
		gen.IntRange(0, 300),
		gen.IntRange(1, 30),
	))

	properties.Property("predicate order does not change the result", prop.ForAll(
		func(divisor, factor int, excluded []int, dedupe bool) bool {
			q := NewProblemQuery()
			q.OnlyMultipleOf = intPtr(divisor)
			q.FactorX = intPtr(factor)
			q.ExcludeFactors = excluded
			q.Dedupe = dedupe

			forward := NewFactFilter(q)
			reversed := FactFilter{Predicates: make([]Predicate, len(forward.Predicates))}
			for i, p := range forward.Predicates {
				reversed.Predicates[len(forward.Predicates)-1-i] = p
			}

			a := forward.Apply(all, nil)
			b := reversed.Apply(all, nil)
			if len(a) != len(b) {
				return false
			}
			for i := range a {
				if a[i] != b[i] {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 12),
		gen.IntRange(1, 30),
		gen.SliceOf(gen.IntRange(0, 31)),
		gen.Bool(),
	))

	properties.Property("every surviving fact satisfies each predicate", prop.ForAll(
		func(minP, maxP, divisor int) bool {
			q := NewProblemQuery()
			q.MinProduct = intPtr(minP)
			q.MaxProduct = intPtr(maxP)
			q.OnlyMultipleOf = intPtr(divisor)
			filter := NewFactFilter(q)
			for _, f := range filter.Apply(all, nil) {
				if f.Product < minP || f.Product > maxP {
					return false
				}
				if divisor != 0 && f.Product%divisor != 0 {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 500),
		gen.IntRange(0, 900),
		gen.IntRange(0, 15),
	))

	properties.TestingRun(t)
}

func TestSummarize(t *testing.T) {
	records := []*ProgressRecord{
		{Attempts: 5, Correct: 2},
		{Attempts: 3, Correct: 3},
	}
	assert.Equal(t, ProgressSummary{TotalAttempts: 8, TotalCorrect: 5, MasteredCount: 1}, Summarize(records, 3))
	assert.Equal(t, ProgressSummary{}, Summarize(nil, 3))
}
