package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/factdrill/internal/domain/entities"
	"github.com/aliskhannn/factdrill/internal/storage"
)

func ptr[T any](v T) *T { return &v }

type recordingProgress struct {
	ProgressRepository
	calls int
	err   error
}

func (r *recordingProgress) UpsertAttempt(context.Context, int64, int, int, bool, time.Time) error {
	r.calls++
	return r.err
}

func TestAttemptValidator(t *testing.T) {
	v := NewAttemptValidator()

	tests := []struct {
		name    string
		in      AttemptInput
		want    Attempt
		wantErr string
	}{
		{
			name: "all fields",
			in:   AttemptInput{LearnerID: ptr[int64](7), Multiplicand: ptr(4), Multiplier: ptr(6), WasCorrect: ptr(true)},
			want: Attempt{LearnerID: 7, Multiplicand: 4, Multiplier: 6, WasCorrect: true},
		},
		{
			name: "defaults learner and outcome",
			in:   AttemptInput{Multiplicand: ptr(4), Multiplier: ptr(6)},
			want: Attempt{LearnerID: entities.DefaultLearnerID, Multiplicand: 4, Multiplier: 6},
		},
		{
			name:    "missing multiplicand",
			in:      AttemptInput{Multiplier: ptr(6)},
			wantErr: "multiplicand",
		},
		{
			name:    "missing multiplier",
			in:      AttemptInput{Multiplicand: ptr(4)},
			wantErr: "multiplier",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Validate(tt.in)
			if tt.wantErr != "" {
				require.ErrorIs(t, err, entities.ErrValidation)
				var ve *entities.ValidationError
				require.True(t, errors.As(err, &ve))
				assert.Equal(t, tt.wantErr, ve.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAttemptRecorder_ValidationShortCircuits(t *testing.T) {
	repo := &recordingProgress{}
	r := NewAttemptRecorder(repo)

	err := r.Record(context.Background(), AttemptInput{Multiplier: ptr(3)})
	require.ErrorIs(t, err, entities.ErrValidation)
	assert.Zero(t, repo.calls, "store must not be touched")
}

func TestAttemptRecorder_StoreError(t *testing.T) {
	repo := &recordingProgress{err: entities.ErrStoreUnavailable}
	r := NewAttemptRecorder(repo)

	err := r.Record(context.Background(), AttemptInput{Multiplicand: ptr(3), Multiplier: ptr(3)})
	require.ErrorIs(t, err, entities.ErrStoreUnavailable)
	assert.Equal(t, 1, repo.calls)
}

func TestAttemptRecorder_ConcurrentAttempts(t *testing.T) {
	progress := storage.NewProgressStorage()
	r := NewAttemptRecorder(progress)
	ctx := context.Background()

	const k = 64
	var wg sync.WaitGroup
	for range k {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, r.Record(ctx, AttemptInput{
				LearnerID:    ptr[int64](5),
				Multiplicand: ptr(6),
				Multiplier:   ptr(9),
				WasCorrect:   ptr(true),
			}))
		}()
	}
	wg.Wait()

	p, err := progress.Get(ctx, 5, 6, 9)
	require.NoError(t, err)
	assert.Equal(t, k, p.Attempts)
	assert.Equal(t, k, p.Correct)
}

func TestAttemptRecorder_StampsLastAttempt(t *testing.T) {
	progress := storage.NewProgressStorage()
	r := NewAttemptRecorder(progress)
	fixed := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	require.NoError(t, r.Record(context.Background(), AttemptInput{Multiplicand: ptr(2), Multiplier: ptr(2)}))

	p, err := progress.Get(context.Background(), entities.DefaultLearnerID, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Attempts)
	assert.Equal(t, 0, p.Correct)
	assert.Equal(t, fixed, *p.LastAttempt)
}
