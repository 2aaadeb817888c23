// Package ratelimit provides per-client request throttling over a sliding
// window. It is a best-effort abuse guard, not a security boundary.
package ratelimit

import (
	"sync"
	"time"
)

const (
	// DefaultWindow is the trailing window requests are counted over.
	DefaultWindow = 60 * time.Second

	// DefaultMax is the request ceiling per client per window.
	DefaultMax = 30
)

// Limiter tracks a sliding window of request timestamps per client.
// Entries older than the window are pruned lazily on each admission check;
// a client at the ceiling is denied without recording the attempt.
type Limiter struct {
	mu      sync.Mutex
	windows map[string][]time.Time
	window  time.Duration
	max     int
	now     func() time.Time
}

// NewLimiter creates a limiter allowing max requests per client per window.
func NewLimiter(window time.Duration, max int) *Limiter {
	return &Limiter{
		windows: make(map[string][]time.Time),
		window:  window,
		max:     max,
		now:     time.Now,
	}
}

// Admit records a request for the client and reports whether it is allowed.
func (l *Limiter) Admit(clientID string) bool {
	now := l.now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	stamps := l.windows[clientID]

	// Prune entries that fell out of the window. Timestamps are appended
	// in order, so expired entries are always at the front.
	start := 0
	for start < len(stamps) && !stamps[start].After(cutoff) {
		start++
	}
	stamps = stamps[start:]

	if len(stamps) >= l.max {
		l.windows[clientID] = stamps
		return false
	}

	l.windows[clientID] = append(stamps, now)
	return true
}
