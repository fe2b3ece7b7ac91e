// Package throttle gates high-frequency input to at most one event per interval.
package throttle

import (
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Gate passes the first event and drops the rest until interval has elapsed.
// It is a leading-edge throttle: dropped events are not replayed.
type Gate struct {
	lim      *rate.Limiter
	passed   atomic.Uint64
	rejected atomic.Uint64
}

// New creates a gate. A non-positive interval passes everything.
func New(interval time.Duration) *Gate {
	return &Gate{lim: rate.NewLimiter(limit(interval), 1)}
}

func limit(interval time.Duration) rate.Limit {
	if interval <= 0 {
		return rate.Inf
	}
	return rate.Every(interval)
}

// AllowAt reports whether an event arriving at t may pass
func (g *Gate) AllowAt(t time.Time) bool {
	if g.lim.AllowN(t, 1) {
		g.passed.Add(1)
		return true
	}
	g.rejected.Add(1)
	return false
}

// Passed returns the number of events let through
func (g *Gate) Passed() uint64 { return g.passed.Load() }

// Rejected returns the number of events dropped
func (g *Gate) Rejected() uint64 { return g.rejected.Load() }
