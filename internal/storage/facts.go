// Package storage provides in-process implementations of the fact and
// progress stores, used for the "memory" driver and in tests.
package storage

import (
	"context"
	"sync"

	"github.com/aliskhannn/factdrill/internal/domain/entities"
)

// FactStorage keeps the fact table in memory. Facts are written once by
// SeedIfEmpty and only read afterwards.
type FactStorage struct {
	mu         sync.RWMutex
	facts      []entities.Fact
	maxOperand int
	progress   *ProgressStorage
}

// NewFactStorage creates an empty FactStorage. Mastery filters are resolved
// against progress.
func NewFactStorage(maxOperand int, progress *ProgressStorage) *FactStorage {
	return &FactStorage{maxOperand: maxOperand, progress: progress}
}

// SeedIfEmpty fills the table when it is empty and reports whether it did.
func (s *FactStorage) SeedIfEmpty(_ context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.facts) > 0 {
		return false, nil
	}
	s.facts = entities.AllFacts(s.maxOperand)
	return true, nil
}

// Count returns the number of stored facts.
func (s *FactStorage) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.facts), nil
}

// Query returns the facts matching filter.
func (s *FactStorage) Query(ctx context.Context, filter entities.FactFilter) ([]entities.Fact, error) {
	var history entities.History
	if m, ok := filter.Mastery(); ok && s.progress != nil {
		records, err := s.progress.ListByLearner(ctx, m.LearnerID)
		if err != nil {
			return nil, err
		}
		history = entities.NewProgressIndex(records)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter.Apply(s.facts, history), nil
}
