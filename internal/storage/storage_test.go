package storage

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/factdrill/internal/domain/entities"
)

func TestFactStorage_SeedIfEmpty(t *testing.T) {
	ctx := context.Background()
	s := NewFactStorage(entities.MaxOperand, NewProgressStorage())

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.SeedIfEmpty(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 900, count)

	seeded, err := s.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)
}

func TestFactStorage_QueryMastery(t *testing.T) {
	ctx := context.Background()
	progress := NewProgressStorage()
	s := NewFactStorage(entities.MaxOperand, progress)
	_, err := s.SeedIfEmpty(ctx)
	require.NoError(t, err)

	for range 3 {
		require.NoError(t, progress.UpsertAttempt(ctx, 1, 4, 6, true, time.Now()))
	}

	q := entities.NewProblemQuery()
	q.ExcludeMastered = true
	facts, err := s.Query(ctx, entities.NewFactFilter(q))
	require.NoError(t, err)
	assert.Len(t, facts, 899)
	assert.NotContains(t, facts, entities.NewFact(4, 6))

	// Another learner is unaffected.
	q.LearnerID = 2
	facts, err = s.Query(ctx, entities.NewFactFilter(q))
	require.NoError(t, err)
	assert.Len(t, facts, 900)
}

func TestProgressStorage_ConcurrentUpserts(t *testing.T) {
	ctx := context.Background()
	s := NewProgressStorage()

	const k = 200
	var wg sync.WaitGroup
	for i := range k {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.UpsertAttempt(ctx, 1, 3, 7, true, time.Now()))
			// Unrelated keys interleave with the contended one.
			assert.NoError(t, s.UpsertAttempt(ctx, 1, i%30+1, 1, i%2 == 0, time.Now()))
		}()
	}
	wg.Wait()

	p, err := s.Get(ctx, 1, 3, 7)
	require.NoError(t, err)
	assert.Equal(t, k, p.Attempts)
	assert.Equal(t, k, p.Correct)
	require.NotNil(t, p.LastAttempt)
}

func TestProgressStorage_GetAndList(t *testing.T) {
	ctx := context.Background()
	s := NewProgressStorage()

	_, err := s.Get(ctx, 1, 2, 3)
	require.ErrorIs(t, err, entities.ErrProgressNotFound)

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, s.UpsertAttempt(ctx, 1, 9, 9, false, at))
	require.NoError(t, s.UpsertAttempt(ctx, 1, 2, 3, true, at))
	require.NoError(t, s.UpsertAttempt(ctx, 2, 2, 3, true, at))

	p, err := s.Get(ctx, 1, 9, 9)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Attempts)
	assert.Equal(t, 0, p.Correct)
	assert.Equal(t, at, *p.LastAttempt)

	// Returned records are copies.
	p.Correct = 100
	again, err := s.Get(ctx, 1, 9, 9)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Correct)

	records, err := s.ListByLearner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 2, records[0].Multiplicand)
	assert.Equal(t, 9, records[1].Multiplicand)
}

func TestProgressStorage_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewProgressStorage()
	require.ErrorIs(t, s.UpsertAttempt(ctx, 1, 2, 3, true, time.Now()), context.Canceled)

	_, err := s.Get(context.Background(), 1, 2, 3)
	require.ErrorIs(t, err, entities.ErrProgressNotFound)
}
