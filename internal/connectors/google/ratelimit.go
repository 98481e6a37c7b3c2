package google

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// SheetsReadsPerMinute is the Sheets API per-user read quota.
const SheetsReadsPerMinute = 60

// DefaultBackoff applies when a 429 response carries no Retry-After header.
const DefaultBackoff = time.Minute

// Limiter spaces requests to fit a per-minute quota. After Backoff, every
// request waits until the backoff has passed.
type Limiter struct {
	mu           sync.Mutex
	bucket       *rate.Limiter
	blockedUntil time.Time
}

// NewLimiter creates a limiter for perMinute requests, allowing bursts of
// one twelfth of the quota.
func NewLimiter(perMinute int) *Limiter {
	if perMinute < 1 {
		perMinute = 1
	}
	every := time.Minute / time.Duration(perMinute)
	return &Limiter{bucket: rate.NewLimiter(rate.Every(every), max(1, perMinute/12))}
}

// Wait blocks until a request may be sent or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if d := l.Blocked(); d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return l.bucket.Wait(ctx)
}

// Backoff holds requests for d, or DefaultBackoff when d is not positive.
// A shorter backoff never shortens one already in force.
func (l *Limiter) Backoff(d time.Duration) {
	if d <= 0 {
		d = DefaultBackoff
	}
	until := time.Now().Add(d)

	l.mu.Lock()
	defer l.mu.Unlock()
	if until.After(l.blockedUntil) {
		l.blockedUntil = until
	}
}

// Blocked returns how long requests are still held, or 0.
func (l *Limiter) Blocked() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return max(0, time.Until(l.blockedUntil))
}
