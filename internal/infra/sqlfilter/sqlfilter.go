// Package sqlfilter translates fact filters into parameterized SQL shared by
// the SQL-backed fact repositories.
package sqlfilter

import (
	"fmt"
	"strings"

	"github.com/aliskhannn/factdrill/internal/domain/entities"
)

// Placeholder renders the bind marker for the n-th argument (1-based).
type Placeholder func(n int) string

// Dollar renders PostgreSQL style markers ($1, $2, ...).
func Dollar(n int) string { return fmt.Sprintf("$%d", n) }

// Question renders SQLite style markers.
func Question(int) string { return "?" }

const baseQuery = `SELECT t.multiplicand AS multiplicand, t.multiplier AS multiplier, t.product AS product FROM multiplication_table t`

// Build returns a SELECT over multiplication_table restricted by filter,
// together with its arguments in bind order.
func Build(filter entities.FactFilter, ph Placeholder) (string, []any, error) {
	b := &builder{ph: ph}

	var sb strings.Builder
	sb.WriteString(baseQuery)

	// The join argument must be bound before any WHERE argument.
	if m, ok := filter.Mastery(); ok {
		sb.WriteString(" LEFT JOIN user_progress p ON p.user_id = ")
		sb.WriteString(b.bind(m.LearnerID))
		sb.WriteString(" AND p.multiplicand = t.multiplicand AND p.multiplier = t.multiplier")
	}

	var where []string
	for _, p := range filter.Predicates {
		clause, err := b.clause(p)
		if err != nil {
			return "", nil, err
		}
		where = append(where, clause)
	}

	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}

	return sb.String(), b.args, nil
}

type builder struct {
	ph   Placeholder
	args []any
}

func (b *builder) bind(v any) string {
	b.args = append(b.args, v)
	return b.ph(len(b.args))
}

// num binds an integer compared against an INTEGER column. The explicit
// cast keeps PostgreSQL from inferring int4 for the parameter, so values
// past the int4 range compare instead of failing to encode.
func (b *builder) num(v int) string {
	return "CAST(" + b.bind(v) + " AS BIGINT)"
}

func (b *builder) list(values []int) string {
	marks := make([]string, len(values))
	for i, v := range values {
		marks[i] = b.num(v)
	}
	return strings.Join(marks, ", ")
}

func (b *builder) clause(p entities.Predicate) (string, error) {
	switch p := p.(type) {
	case entities.RangeFilter:
		var parts []string
		if p.Min != nil {
			parts = append(parts, "t.product >= "+b.num(*p.Min))
		}
		if p.Max != nil {
			parts = append(parts, "t.product <= "+b.num(*p.Max))
		}
		if len(parts) == 0 {
			return "1 = 1", nil
		}
		return strings.Join(parts, " AND "), nil

	case entities.ExclusionFilter:
		if len(p.Factors) == 0 {
			return "1 = 1", nil
		}
		return fmt.Sprintf("t.multiplicand NOT IN (%s) AND t.multiplier NOT IN (%s)",
			b.list(p.Factors), b.list(p.Factors)), nil

	case entities.DivisibilityFilter:
		if p.Divisor == 0 {
			return "1 = 1", nil
		}
		return "t.product % " + b.num(p.Divisor) + " = 0", nil

	case entities.FactorFilter:
		x := b.num(p.Factor)
		y := b.num(p.Factor)
		return fmt.Sprintf("(t.multiplicand = %s OR t.multiplier = %s)", x, y), nil

	case entities.DedupeFilter:
		return "t.multiplicand <= t.multiplier", nil

	case entities.MasteryFilter:
		return "(p.user_id IS NULL OR p.correct < " + b.num(p.Threshold) + ")", nil

	default:
		return "", fmt.Errorf("unsupported predicate %T", p)
	}
}
