package engine

import "sync/atomic"

// Clock numbers the events of a conflation.
//
// Every event the engine dispatches is stamped with the next value before
// any module sees it, so errors and logs can point at the offending event.
// Sequence numbers start at 1 and never repeat within one engine.
//
// Thread-safety: Clock is safe for concurrent use. The engine itself only
// calls Next from Process.
type Clock struct {
	seq atomic.Uint64
}

// NewClock creates a clock whose first Next returns 1.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock resuming after start.
func NewClockAt(start uint64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number.
func (c *Clock) Next() uint64 {
	return c.seq.Add(1)
}

// Current returns the last sequence number handed out.
func (c *Clock) Current() uint64 {
	return c.seq.Load()
}
