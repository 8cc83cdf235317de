package service

import (
	"context"
	"errors"
	"time"
)

// ErrGenerationTimeout is returned when a generation loses the race against
// its deadline.
var ErrGenerationTimeout = errors.New("request timeout - processing is taking too long")

// RaceTimeout runs fn and returns whichever settles first: its result, or
// ErrGenerationTimeout once timeout elapses. fn receives a context that is
// cancelled when the race is lost, so cooperative work stops; the race does
// not wait for fn to notice.
func RaceTimeout[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1) // buffered so a late fn never blocks
	go func() {
		v, err := fn(ctx)
		done <- outcome{value: v, err: err}
	}()

	select {
	case o := <-done:
		if o.err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, ErrGenerationTimeout
		}
		return o.value, o.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, ErrGenerationTimeout
		}
		return zero, ctx.Err()
	}
}
