package httputil

import (
	"context"
	"errors"
	"time"

	apperr "github.com/toldot/toldot/pkg/errors"
)

const (
	DefaultAttempts = 3
	DefaultDelay    = time.Second

	// MaxRetryAfter caps how long a Retry-After header can stall a load.
	MaxRetryAfter = 30 * time.Second
)

// RetryableError marks a failure worth another attempt.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err as a RetryableError. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err carries a RetryableError.
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// Retry calls fn up to attempts times. After a retryable failure it sleeps
// for delay, doubling it each round, or for the backend's Retry-After hint
// when that is longer. Non-retryable errors end the loop at once and a
// cancelled ctx returns ctx.Err().
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	var err error
	for i := 0; i < max(attempts, 1); i++ {
		if i > 0 {
			timer := time.NewTimer(backoff(err, delay))
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
			delay *= 2
		}
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
	}
	return err
}

func backoff(err error, delay time.Duration) time.Duration {
	var rl *apperr.RateLimitedError
	if errors.As(err, &rl) {
		if hint := time.Duration(rl.RetryAfter) * time.Second; hint > delay {
			return min(hint, MaxRetryAfter)
		}
	}
	return delay
}

// RetryWithBackoff is Retry with DefaultAttempts and DefaultDelay.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, DefaultAttempts, DefaultDelay, fn)
}
