package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNetwork marks a backend that could not be reached or timed out.
	ErrNetwork = errors.New("network error")

	// ErrCacheMiss is returned by [GetJSON] when key is not cached.
	ErrCacheMiss = errors.New("cache miss")
)

// RetryableError marks a transient backend failure.
type RetryableError struct{ Err error }

// Retryable marks err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err or anything it wraps is a [RetryableError].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff settings for [RetryWithBackoff]. Tests shorten retryDelay.
var (
	retryAttempts = 3
	retryDelay    = 100 * time.Millisecond
)

// RetryWithBackoff calls fn until it succeeds, fails with a non-retryable
// error, or runs out of attempts. The wait doubles after each retryable
// failure and is cut short by ctx.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	err := fn()
	delay := retryDelay
	for attempt := 1; attempt < retryAttempts && IsRetryable(err); attempt++ {
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
		err = fn()
	}
	return err
}
