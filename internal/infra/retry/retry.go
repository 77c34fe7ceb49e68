// Package retry re-runs store writes that failed on transient contention.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/aliskhannn/factdrill/internal/domain/entities"
)

// Policy bounds how long a conflicting write keeps being retried.
type Policy struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsed      time.Duration
}

// DefaultPolicy is used by the progress repositories.
var DefaultPolicy = Policy{
	InitialInterval: 5 * time.Millisecond,
	MaxInterval:     250 * time.Millisecond,
	MaxElapsed:      30 * time.Second,
}

// OnConflict runs op until it succeeds, returns an error that is not
// entities.ErrConcurrencyConflict, the policy expires, or ctx is done.
func (p Policy) OnConflict(ctx context.Context, op func(ctx context.Context) error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialInterval
	b.MaxInterval = p.MaxInterval

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := op(ctx)
		switch {
		case err == nil:
			return struct{}{}, nil
		case errors.Is(err, entities.ErrConcurrencyConflict):
			return struct{}{}, err
		default:
			return struct{}{}, backoff.Permanent(err)
		}
	}, backoff.WithBackOff(b), backoff.WithMaxElapsedTime(p.MaxElapsed))

	return err
}
