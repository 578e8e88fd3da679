// Package rate provides a token bucket rate limiter for controlling request rates.
// It is a thin wrapper around golang.org/x/time/rate with the semantics the
// HTTP client expects: blocking Wait and non-blocking Allow.
package rate

import (
	"context"

	xrate "golang.org/x/time/rate"
)

// Limiter controls the rate of operations using a token bucket.
type Limiter struct {
	inner *xrate.Limiter
}

// New creates a new rate limiter with the specified rate (requests per second)
// and burst size (bucket capacity). Non-positive values are clamped to 1.
//
// Example:
//
//	limiter := rate.New(2, 1) // 2 req/s, no burst
func New(rps float64, burst int) *Limiter {
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{inner: xrate.NewLimiter(xrate.Limit(rps), burst)}
}

// Wait blocks until the limiter allows an operation to proceed or the context
// is canceled. It returns an error if the context is canceled first.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.inner.Wait(ctx)
}

// Allow reports whether an operation can proceed immediately,
// consuming one token if available.
func (l *Limiter) Allow() bool {
	return l.inner.Allow()
}

// SetRate updates the token refill rate.
func (l *Limiter) SetRate(rps float64) {
	if rps <= 0 {
		rps = 1
	}
	l.inner.SetLimit(xrate.Limit(rps))
}

// SetBurst updates the bucket capacity.
func (l *Limiter) SetBurst(burst int) {
	if burst <= 0 {
		burst = 1
	}
	l.inner.SetBurst(burst)
}
