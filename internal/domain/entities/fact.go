// Package entities contains domain entities used across the application.
package entities

const (
	// MinOperand is the smallest operand in the seeded fact table.
	MinOperand = 1
	// MaxOperand is the largest operand in the seeded fact table.
	MaxOperand = 30
)

// Fact is a single multiplication fact such as 7 x 8 = 56.
type Fact struct {
	Multiplicand int `json:"multiplicand" db:"multiplicand"`
	Multiplier   int `json:"multiplier" db:"multiplier"`
	Product      int `json:"product" db:"product"`
}

// NewFact builds a fact from its operands.
func NewFact(multiplicand, multiplier int) Fact {
	return Fact{
		Multiplicand: multiplicand,
		Multiplier:   multiplier,
		Product:      multiplicand * multiplier,
	}
}

// FactKey identifies a fact by its ordered operand pair.
type FactKey struct {
	Multiplicand int
	Multiplier   int
}

// Key returns the operand pair of the fact.
func (f Fact) Key() FactKey {
	return FactKey{Multiplicand: f.Multiplicand, Multiplier: f.Multiplier}
}

// AllFacts returns the full reference set for operands in [MinOperand..maxOperand],
// ordered by multiplicand and then multiplier.
func AllFacts(maxOperand int) []Fact {
	if maxOperand < MinOperand {
		return nil
	}

	n := maxOperand - MinOperand + 1
	facts := make([]Fact, 0, n*n)
	for a := MinOperand; a <= maxOperand; a++ {
		for b := MinOperand; b <= maxOperand; b++ {
			facts = append(facts, NewFact(a, b))
		}
	}
	return facts
}
