package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/aliskhannn/factdrill/internal/domain/entities"
)

// ProblemSelector draws random practice problems from the fact store.
type ProblemSelector struct {
	facts FactRepository

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// NewProblemSelector creates a new ProblemSelector.
func NewProblemSelector(facts FactRepository) *ProblemSelector {
	return newProblemSelector(facts, rand.NewSource(time.Now().UnixNano()))
}

func newProblemSelector(facts FactRepository, src rand.Source) *ProblemSelector {
	return &ProblemSelector{
		facts: facts,
		rng:   rand.New(src),
	}
}

// Select returns up to q.Count distinct facts chosen uniformly at random
// from those matching every active option of q. A non-positive count
// returns an empty slice without querying the store.
func (s *ProblemSelector) Select(ctx context.Context, q entities.ProblemQuery) ([]entities.Fact, error) {
	if q.Count <= 0 {
		return []entities.Fact{}, nil
	}

	candidates, err := s.facts.Query(ctx, entities.NewFactFilter(q))
	if err != nil {
		return nil, fmt.Errorf("select problems: %w", err)
	}

	return s.sample(candidates, q.Count), nil
}

// sample performs a partial Fisher-Yates shuffle in place and returns the
// first k elements, or all of them when fewer than k are available.
func (s *ProblemSelector) sample(facts []entities.Fact, k int) []entities.Fact {
	n := len(facts)
	if k > n {
		k = n
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < k; i++ {
		j := i + s.rng.Intn(n-i)
		facts[i], facts[j] = facts[j], facts[i]
	}

	return facts[:k]
}
