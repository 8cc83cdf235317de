package ai

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

// Default retry policy values.
const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = time.Second
)

// ErrMaxRetriesExceeded is returned if the retry loop ends without a result.
var ErrMaxRetriesExceeded = errors.New("max retries exceeded")

// RetryPolicy controls RetryWithBackoff.
type RetryPolicy struct {
	// MaxRetries is the total number of attempts, including the first.
	MaxRetries int
	// BaseDelay is doubled per attempt unless the error suggests a delay.
	BaseDelay time.Duration
	// OnRetry, when set, is called before each backoff sleep.
	OnRetry func(attempt int, delay time.Duration, err error)
}

// WithDefaults fills unset fields with DefaultMaxRetries and DefaultBaseDelay.
func (p RetryPolicy) WithDefaults() RetryPolicy {
	if p.MaxRetries <= 0 {
		p.MaxRetries = DefaultMaxRetries
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = DefaultBaseDelay
	}
	return p
}

// BackoffDelay is the wait before retrying after the failed attempt with the
// given zero-based index.
func (p RetryPolicy) BackoffDelay(attempt int, err error) time.Duration {
	if d, ok := SuggestedDelay(err); ok {
		return d
	}
	return p.WithDefaults().BaseDelay * time.Duration(1<<attempt)
}

// RetryWithBackoff runs op, retrying only rate limit failures. Any other
// error is returned immediately and unchanged. When attempts run out the last
// error is returned. Cancelling ctx interrupts the backoff sleep and returns
// the context error.
func RetryWithBackoff[T any](ctx context.Context, policy RetryPolicy, op func(context.Context) (T, error)) (T, error) {
	policy = policy.WithDefaults()
	var zero T

	for attempt := 0; attempt < policy.MaxRetries; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		if attempt == policy.MaxRetries-1 || !IsRateLimit(err) {
			return zero, err
		}

		delay := policy.BackoffDelay(attempt, err)
		if policy.OnRetry != nil {
			policy.OnRetry(attempt, delay, err)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	return zero, ErrMaxRetriesExceeded
}

// LogRetries returns an OnRetry hook that logs each backoff.
func LogRetries(log logrus.FieldLogger, call string, maxRetries int) func(int, time.Duration, error) {
	return func(attempt int, delay time.Duration, err error) {
		log.WithFields(logrus.Fields{
			"call":    call,
			"attempt": attempt + 1,
			"of":      maxRetries,
			"delay":   delay.String(),
		}).WithError(err).Warn("Rate limit hit, retrying")
	}
}
