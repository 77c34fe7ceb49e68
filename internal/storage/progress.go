package storage

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/aliskhannn/factdrill/internal/domain/entities"
)

type progressKey struct {
	learnerID    int64
	multiplicand int
	multiplier   int
}

type progressEntry struct {
	mu     sync.Mutex
	record entities.ProgressRecord
}

// ProgressStorage keeps progress records in memory. Each key has its own
// lock, so attempts on different facts never wait for each other.
type ProgressStorage struct {
	entries sync.Map // progressKey -> *progressEntry
}

// NewProgressStorage creates an empty ProgressStorage.
func NewProgressStorage() *ProgressStorage {
	return &ProgressStorage{}
}

// UpsertAttempt records one attempt for the key.
func (s *ProgressStorage) UpsertAttempt(
	ctx context.Context,
	learnerID int64,
	multiplicand, multiplier int,
	wasCorrect bool,
	at time.Time,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := progressKey{learnerID: learnerID, multiplicand: multiplicand, multiplier: multiplier}
	v, _ := s.entries.LoadOrStore(key, &progressEntry{
		record: entities.ProgressRecord{
			LearnerID:    learnerID,
			Multiplicand: multiplicand,
			Multiplier:   multiplier,
		},
	})

	e := v.(*progressEntry)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record.RecordAttempt(wasCorrect, at)

	return nil
}

// Get returns a copy of the record for the key.
func (s *ProgressStorage) Get(_ context.Context, learnerID int64, multiplicand, multiplier int) (*entities.ProgressRecord, error) {
	v, ok := s.entries.Load(progressKey{learnerID: learnerID, multiplicand: multiplicand, multiplier: multiplier})
	if !ok {
		return nil, entities.ErrProgressNotFound
	}

	r := v.(*progressEntry).snapshot()
	if r.Attempts == 0 {
		// Created by a concurrent upsert that has not applied yet.
		return nil, entities.ErrProgressNotFound
	}
	return r, nil
}

// ListByLearner returns copies of the learner's records ordered by fact.
func (s *ProgressStorage) ListByLearner(_ context.Context, learnerID int64) ([]*entities.ProgressRecord, error) {
	var records []*entities.ProgressRecord
	s.entries.Range(func(k, v any) bool {
		if k.(progressKey).learnerID != learnerID {
			return true
		}
		if r := v.(*progressEntry).snapshot(); r.Attempts > 0 {
			records = append(records, r)
		}
		return true
	})

	slices.SortFunc(records, func(a, b *entities.ProgressRecord) int {
		return cmp.Or(
			cmp.Compare(a.Multiplicand, b.Multiplicand),
			cmp.Compare(a.Multiplier, b.Multiplier),
		)
	})

	return records, nil
}

func (e *progressEntry) snapshot() *entities.ProgressRecord {
	e.mu.Lock()
	defer e.mu.Unlock()

	r := e.record
	if r.LastAttempt != nil {
		t := *r.LastAttempt
		r.LastAttempt = &t
	}
	return &r
}
