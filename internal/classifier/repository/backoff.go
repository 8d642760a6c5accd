package repository

import "time"

// BackoffPolicy controls the retry behavior of an AI repository. Sleep is
// injectable so retry timing can be tested without real time.
type BackoffPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	Sleep      func(time.Duration)
}

// NewBackoffPolicy creates a backoff policy with sane defaults for zero values.
func NewBackoffPolicy(maxRetries int, baseDelay time.Duration) BackoffPolicy {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	if baseDelay <= 0 {
		baseDelay = 2 * time.Second
	}
	return BackoffPolicy{
		MaxRetries: maxRetries,
		BaseDelay:  baseDelay,
		Sleep:      time.Sleep,
	}
}

// Delay returns the wait before retrying after the given zero-based failed
// attempt: BaseDelay * 2^attempt.
func (p BackoffPolicy) Delay(attempt int) time.Duration {
	return p.BaseDelay * (1 << attempt)
}
