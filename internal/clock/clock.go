// Package clock abstracts the time source so plan timestamps and calendar
// exports are deterministic under test.
package clock

import "time"

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system time.
type RealClock struct{}

// Now returns the current system time.
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// Stamp returns c.Now() in UTC truncated to whole seconds, the precision
// plan files and calendar stamps are written with.
func Stamp(c Clock) time.Time {
	return c.Now().UTC().Truncate(time.Second)
}

// FakeClock implements Clock with a settable time for testing.
type FakeClock struct {
	current time.Time
}

// NewFakeClock creates a new FakeClock at t.
func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{current: t}
}

// Now returns the fixed time.
func (c *FakeClock) Now() time.Time {
	return c.current
}

// Set updates the fixed time.
func (c *FakeClock) Set(t time.Time) {
	c.current = t
}

// Advance moves the fixed time by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}
