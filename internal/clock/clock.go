// Package clock abstracts wall-clock time so day boundaries, cooldowns and
// inflation windows can be driven deterministically in tests.
package clock

import (
	"sync"
	"time"
)

// Clock provides the current time
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	Until(t time.Time) time.Duration
}

// RealClock uses the system time, always in UTC
type RealClock struct{}

// NewRealClock creates a RealClock
func NewRealClock() *RealClock {
	return &RealClock{}
}

// Now returns the current system time in UTC
func (c *RealClock) Now() time.Time {
	return time.Now().UTC()
}

// Since returns the duration since t
func (c *RealClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// Until returns the duration until t
func (c *RealClock) Until(t time.Time) time.Duration {
	return time.Until(t)
}

// SimulatedClock is a manually driven clock. It is safe for concurrent use.
type SimulatedClock struct {
	mu      sync.RWMutex
	current time.Time
}

// NewSimulatedClock creates a SimulatedClock starting at start
func NewSimulatedClock(start time.Time) *SimulatedClock {
	return &SimulatedClock{current: start}
}

// Now returns the simulated time
func (c *SimulatedClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Since returns the simulated duration since t
func (c *SimulatedClock) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}

// Until returns the simulated duration until t
func (c *SimulatedClock) Until(t time.Time) time.Duration {
	return t.Sub(c.Now())
}

// Advance moves the simulated time forward by d
func (c *SimulatedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.current = c.current.Add(d)
	c.mu.Unlock()
}

// AdvanceHours moves the simulated time forward by a fractional number of hours
func (c *SimulatedClock) AdvanceHours(hours float64) {
	c.Advance(time.Duration(hours * float64(time.Hour)))
}

// AdvanceDays moves the simulated time forward by whole days
func (c *SimulatedClock) AdvanceDays(days int) {
	c.Advance(time.Duration(days) * 24 * time.Hour)
}

// Set jumps to t
func (c *SimulatedClock) Set(t time.Time) {
	c.mu.Lock()
	c.current = t
	c.mu.Unlock()
}

// NextBoundary returns the next day boundary strictly after now. The boundary is midnight
// shifted by offset from UTC, so an offset of -5h rolls the day at 05:00 UTC.
func NextBoundary(now time.Time, offset time.Duration) time.Time {
	local := now.UTC().Add(offset)
	y, m, d := local.Date()
	next := time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC).Add(-offset)
	return next
}

// DayAt returns the calendar day (UTC midnight) that now falls in, for a boundary offset
func DayAt(now time.Time, offset time.Duration) time.Time {
	y, m, d := now.UTC().Add(offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
