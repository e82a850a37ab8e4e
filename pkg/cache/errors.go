package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks a backend that could not be reached: refused or timed out
// connections and closed pools.
var ErrNetwork = errors.New("network error")

// RetryableError marks a failure that may succeed on a later attempt.
type RetryableError struct{ Err error }

// Retryable marks err as retryable. It returns nil for a nil err.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err, or anything it wraps, was marked with
// [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff controls how [NewRedisCache] retries its initial PING while the
// server is still starting, for example next to the API in docker compose.
type Backoff struct {
	Attempts int           // Total tries, at least one
	Delay    time.Duration // Wait before the second try, doubled after each
	MaxDelay time.Duration // Upper bound for the wait; zero means unbounded
}

// DefaultBackoff waits 0.5s, 1s, 2s and 4s between five tries.
var DefaultBackoff = Backoff{Attempts: 5, Delay: 500 * time.Millisecond, MaxDelay: 4 * time.Second}

// Retry calls fn until it succeeds, fails with an error not marked
// [Retryable], or runs out of attempts. The last error is returned, or
// ctx.Err() if ctx ends while waiting.
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	delay := b.Delay
	var err error
	for attempt := range max(b.Attempts, 1) {
		if attempt > 0 {
			if err := wait(ctx, delay); err != nil {
				return err
			}
			delay *= 2
			if b.MaxDelay > 0 {
				delay = min(delay, b.MaxDelay)
			}
		}
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
	}
	return err
}

func wait(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
