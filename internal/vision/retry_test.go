package vision

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestIsRetryable(t *testing.T) {
	re := &RetryableError{StatusCode: 429, Message: "rate limited"}
	if !IsRetryable(re) {
		t.Error("retryable error not detected")
	}
	if !IsRetryable(fmt.Errorf("wrapped: %w", re)) {
		t.Error("wrapped retryable error not detected")
	}
	if IsRetryable(errors.New("bad request")) {
		t.Error("plain error reported retryable")
	}
	if IsRetryable(nil) {
		t.Error("nil reported retryable")
	}
}

func TestBackoffBounds(t *testing.T) {
	for attempt := 0; attempt < 8; attempt++ {
		base := time.Duration(1<<uint(attempt)) * time.Second
		if base > 30*time.Second {
			base = 30 * time.Second
		}
		for i := 0; i < 20; i++ {
			d := Backoff(attempt)
			if d < base || d >= base+base/2 {
				t.Fatalf("attempt %d: backoff %v outside [%v, %v)", attempt, d, base, base+base/2)
			}
		}
	}
}

func TestBackoffCapped(t *testing.T) {
	for i := 0; i < 20; i++ {
		if d := Backoff(30); d >= 45*time.Second {
			t.Fatalf("capped backoff = %v", d)
		}
	}
}
