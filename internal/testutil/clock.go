package testutil

import "sync/atomic"

// TraceClock numbers trace events in the order they happen.
//
// It stands in for wall-clock timestamps so that scenario traces are
// reproducible: a fresh clock always hands out 1, 2, 3, ... regardless of
// how long each operation took.
type TraceClock struct {
	seq atomic.Int64
}

// NewTraceClock creates a clock whose first tick is 1.
func NewTraceClock() *TraceClock {
	return &TraceClock{}
}

// Next advances the clock and returns the new sequence number.
func (c *TraceClock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last number handed out, or 0 before the first tick.
func (c *TraceClock) Current() int64 {
	return c.seq.Load()
}

// Reset rewinds the clock. The next tick is 1 again.
func (c *TraceClock) Reset() {
	c.seq.Store(0)
}
