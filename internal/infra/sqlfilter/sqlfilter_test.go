package sqlfilter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/factdrill/internal/domain/entities"
)

func intPtr(v int) *int { return &v }

func TestBuild_NoPredicates(t *testing.T) {
	query, args, err := Build(entities.FactFilter{}, Question)
	require.NoError(t, err)
	assert.Equal(t, baseQuery, query)
	assert.Empty(t, args)
}

func TestBuild_AllPredicatesDollar(t *testing.T) {
	q := entities.NewProblemQuery()
	q.MinProduct = intPtr(10)
	q.MaxProduct = intPtr(100)
	q.ExcludeFactors = []int{10, 20}
	q.OnlyMultipleOf = intPtr(3)
	q.FactorX = intPtr(7)
	q.Dedupe = true
	q.ExcludeMastered = true
	q.LearnerID = 42
	q.MasteryThreshold = 5

	query, args, err := Build(entities.NewFactFilter(q), Dollar)
	require.NoError(t, err)

	want := baseQuery +
		" LEFT JOIN user_progress p ON p.user_id = $1 AND p.multiplicand = t.multiplicand AND p.multiplier = t.multiplier" +
		" WHERE t.product >= CAST($2 AS BIGINT) AND t.product <= CAST($3 AS BIGINT)" +
		" AND t.multiplicand NOT IN (CAST($4 AS BIGINT), CAST($5 AS BIGINT))" +
		" AND t.multiplier NOT IN (CAST($6 AS BIGINT), CAST($7 AS BIGINT))" +
		" AND t.product % CAST($8 AS BIGINT) = 0" +
		" AND (t.multiplicand = CAST($9 AS BIGINT) OR t.multiplier = CAST($10 AS BIGINT))" +
		" AND t.multiplicand <= t.multiplier" +
		" AND (p.user_id IS NULL OR p.correct < CAST($11 AS BIGINT))"
	if diff := cmp.Diff(want, query); diff != "" {
		t.Errorf("query mismatch (-want +got):\n%s", diff)
	}

	wantArgs := []any{int64(42), 10, 100, 10, 20, 10, 20, 3, 7, 7, 5}
	if diff := cmp.Diff(wantArgs, args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_QuestionMarks(t *testing.T) {
	q := entities.NewProblemQuery()
	q.FactorX = intPtr(7)

	query, args, err := Build(entities.NewFactFilter(q), Question)
	require.NoError(t, err)
	assert.Equal(t, baseQuery+" WHERE (t.multiplicand = CAST(? AS BIGINT) OR t.multiplier = CAST(? AS BIGINT))", query)
	assert.Equal(t, []any{7, 7}, args)
}

type unknownPredicate struct{}

func (unknownPredicate) Matches(entities.Fact, entities.History) bool { return true }

func TestBuild_UnknownPredicate(t *testing.T) {
	_, _, err := Build(entities.FactFilter{Predicates: []entities.Predicate{unknownPredicate{}}}, Question)
	assert.Error(t, err)
}

func TestBuild_LargeBoundsBindAsBigint(t *testing.T) {
	q := entities.NewProblemQuery()
	q.MinProduct = intPtr(9_999_999_999)
	q.OnlyMultipleOf = intPtr(9_999_999_999)

	query, args, err := Build(entities.NewFactFilter(q), Dollar)
	require.NoError(t, err)

	want := baseQuery + " WHERE t.product >= CAST($1 AS BIGINT) AND t.product % CAST($2 AS BIGINT) = 0"
	if diff := cmp.Diff(want, query); diff != "" {
		t.Errorf("query mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []any{9_999_999_999, 9_999_999_999}, args)
}
