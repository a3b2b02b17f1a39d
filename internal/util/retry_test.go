// ABOUTME: Tests for retry utilities including exponential backoff
// ABOUTME: Validates backoff calculation, bounds, and jitter behavior
package util

import (
	"testing"
	"time"
)

func TestBackoff_ZeroAndNegativeAttempts(t *testing.T) {
	if got := Backoff(time.Second, 0); got != 0 {
		t.Errorf("Backoff(1s, 0) = %v, want 0", got)
	}
	if got := Backoff(time.Second, -3); got != 0 {
		t.Errorf("Backoff(1s, -3) = %v, want 0", got)
	}
}

func TestBackoff_ExponentialGrowth(t *testing.T) {
	baseDelay := 100 * time.Millisecond

	for attempt := 1; attempt <= 5; attempt++ {
		expectedBase := baseDelay * time.Duration(1<<uint(attempt))
		minExpected := expectedBase * 3 / 4 // -25%
		maxExpected := expectedBase * 5 / 4 // +25%

		result := Backoff(baseDelay, attempt)

		if result < minExpected || result > maxExpected {
			t.Errorf("attempt %d: expected backoff between %v and %v, got %v",
				attempt, minExpected, maxExpected, result)
		}
	}
}

func TestBackoff_CapsAt30Seconds(t *testing.T) {
	// Attempt 10 would give 2^10 * 1s = 1024s without the cap
	result := Backoff(time.Second, 10)

	maxAllowed := 37500 * time.Millisecond // 30s + 25% jitter
	if result > maxAllowed {
		t.Errorf("expected backoff <= %v, got %v", maxAllowed, result)
	}
}

func TestBackoff_HighAttemptDoesNotOverflow(t *testing.T) {
	result := Backoff(time.Millisecond, 100)

	maxAllowed := 37500 * time.Millisecond
	if result > maxAllowed {
		t.Errorf("expected backoff <= %v for high attempt, got %v", maxAllowed, result)
	}
	if result < 0 {
		t.Error("backoff should never be negative")
	}
}

func TestBackoff_JitterVaries(t *testing.T) {
	baseDelay := time.Second
	attempt := 2 // 4s base

	var results []time.Duration
	for i := 0; i < 100; i++ {
		results = append(results, Backoff(baseDelay, attempt))
	}

	allSame := true
	for i := 1; i < len(results); i++ {
		if results[i] != results[0] {
			allSame = false
			break
		}
	}
	if allSame {
		t.Error("jitter should produce varying results, but all 100 samples were identical")
	}

	// All samples within 4s ± 25%
	for i, r := range results {
		if r < 3*time.Second || r > 5*time.Second {
			t.Errorf("sample %d: expected between 3s and 5s, got %v", i, r)
		}
	}
}
