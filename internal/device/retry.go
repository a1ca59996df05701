package device

import "time"

// RetryPolicy bounds automatic reacquisition after recoverable device
// failures. It is injected into the session manager so retry behavior is
// testable independently of timers.
type RetryPolicy struct {
	// MaxAttempts is the total number of acquisition attempts, the first
	// one included. Beyond it, only manual retry is offered.
	MaxAttempts int

	// Backoff returns the delay before the given attempt (1-based).
	Backoff func(attempt int) time.Duration
}

// DefaultRetryPolicy matches the product rule: three attempts, short
// linear backoff between them.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Backoff: func(attempt int) time.Duration {
			return time.Duration(attempt) * 500 * time.Millisecond
		},
	}
}

// delay returns the backoff before attempt, tolerating a nil Backoff.
func (p RetryPolicy) delay(attempt int) time.Duration {
	if p.Backoff == nil {
		return 0
	}
	return p.Backoff(attempt)
}
