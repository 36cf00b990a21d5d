package poll

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// TimeoutError is returned by Until when the predicate did not hold before
// the timeout elapsed.
type TimeoutError struct {
	Message  string
	Attempts int
	Elapsed  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s (gave up after %d attempts in %v)", e.Message, e.Attempts, e.Elapsed.Round(time.Millisecond))
}

// IsTimeout reports whether err is (or wraps) a *TimeoutError.
func IsTimeout(err error) bool {
	var timeoutErr *TimeoutError
	return errors.As(err, &timeoutErr)
}

// Until calls fetch and evaluates predicate on the result. When the predicate
// holds the state is returned immediately. Otherwise it sleeps for interval
// and tries again while the time elapsed since the first call is below
// timeout. A timeout of zero performs exactly one check.
//
// Errors returned by fetch are propagated as-is and end the wait. On timeout
// the last observed state is returned together with a *TimeoutError carrying
// message. The interval is constant; there is no backoff.
func Until[T any](
	ctx context.Context,
	fetch func(context.Context) (T, error),
	predicate func(T) bool,
	timeout, interval time.Duration,
	message string,
) (T, error) {
	start := time.Now()
	attempts := 0

	for {
		state, err := fetch(ctx)
		attempts++
		if err != nil {
			return state, err
		}
		if predicate(state) {
			return state, nil
		}

		elapsed := time.Since(start)
		if elapsed >= timeout {
			return state, &TimeoutError{Message: message, Attempts: attempts, Elapsed: elapsed}
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return state, fmt.Errorf("context cancelled after %d attempts: %w", attempts, ctx.Err())
		case <-timer.C:
		}
	}
}
