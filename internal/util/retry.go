// ABOUTME: Retry utilities for API calls with exponential backoff
// ABOUTME: Shared retry policy for embedding and chat completion requests
package util

import (
	"math/rand/v2"
	"time"
)

// maxBackoff caps the delay regardless of attempt count.
const maxBackoff = 30 * time.Second

// Backoff returns exponential backoff with jitter for the given attempt.
// The base delay doubles each attempt, capped at 30 seconds, with random
// jitter of up to 25% in either direction.
func Backoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	// Cap attempt to avoid overflow in the shift
	if attempt > 30 {
		attempt = 30
	}
	delay := baseDelay * time.Duration(1<<uint(attempt))
	if delay > maxBackoff || delay <= 0 {
		delay = maxBackoff
	}
	jitter := time.Duration(rand.Int64N(int64(delay)/2)) - delay/4
	return delay + jitter
}
