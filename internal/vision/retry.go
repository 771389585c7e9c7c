package vision

import (
	"errors"
	"math/rand/v2"
	"time"
)

// MaxRetries is the number of attempts for a single recognition call.
const MaxRetries = 3

// IsRetryable reports whether err is a transient failure.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff returns the wait duration before the given retry attempt,
// exponential with jitter, capped at 30 seconds.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}
