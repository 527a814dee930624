package worker

import (
	"math"
	"math/rand/v2"
	"time"
)

// RetryPolicy is the exponential backoff schedule the export queue retries
// on. Zero fields get defaults when the policy is used.
type RetryPolicy struct {
	MaxRetries    int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64

	// Jitter spreads each delay by up to this fraction in either direction
	// so queued exports retrying together do not hit the target in lockstep.
	// Zero means a fixed schedule.
	Jitter float64
}

// NextDelay returns the delay before the given attempt (1-based), clamped
// to MaxDelay and jittered when the policy asks for it.
func (r RetryPolicy) NextDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if r.InitialDelay <= 0 {
		r.InitialDelay = time.Second
	}
	if r.BackoffFactor <= 0 {
		r.BackoffFactor = 2
	}

	delay := float64(r.InitialDelay) * math.Pow(r.BackoffFactor, float64(attempt-1))
	if r.Jitter > 0 {
		delay *= 1 + (rand.Float64()*2-1)*r.Jitter
	}

	d := time.Duration(delay)
	if r.MaxDelay > 0 && d > r.MaxDelay {
		d = r.MaxDelay
	}
	if d <= 0 {
		d = time.Second
	}
	return d
}
