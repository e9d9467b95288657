package state

import "sync/atomic"

// Clock numbers board revisions. Every state change ticks it, so frame
// consumers can tell a newer frame from a stale one.
type Clock struct {
	counter uint64
}

// Tick increments the clock and returns the new value.
func (c *Clock) Tick() uint64 {
	return atomic.AddUint64(&c.counter, 1)
}

// Now returns the last value handed out by Tick.
func (c *Clock) Now() uint64 {
	return atomic.LoadUint64(&c.counter)
}
