// Package timer provides the 60Hz clock that drives the CHIP-8's
// delay and sound timers. The clock is fed elapsed wall time by the
// emulation loop and is independent of how many instructions were
// executed in that time.
package timer

import (
	"time"

	"github.com/thelolagemann/gochip8/internal/types"
)

// Interval is the period of one timer tick.
const Interval = time.Second / types.TimerFrequency

// Ticker is ticked by the Clock once per Interval.
type Ticker interface {
	TickTimers()
}

// Clock converts elapsed time into timer ticks. The total number of
// ticks fired is always floor(elapsed * 60), computed from the total
// elapsed time so rounding never accumulates.
type Clock struct {
	elapsed time.Duration
	ticks   uint64
	t       Ticker
}

// NewClock returns a clock that ticks t.
func NewClock(t Ticker) *Clock {
	return &Clock{t: t}
}

// Advance moves the clock forward by d, ticking the attached Ticker
// once for every tick that became due. It returns the number of
// ticks fired.
func (c *Clock) Advance(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	c.elapsed += d

	// Interval is truncated to 16666666ns, so the due count is
	// computed from the elapsed nanoseconds instead.
	due := uint64(c.elapsed) * types.TimerFrequency / uint64(time.Second)

	fired := 0
	for c.ticks < due {
		c.ticks++
		fired++
		if c.t != nil {
			c.t.TickTimers()
		}
	}
	return fired
}

// Ticks returns the number of ticks fired since the last reset.
func (c *Clock) Ticks() uint64 {
	return c.ticks
}

// Elapsed returns the time accumulated since the last reset.
func (c *Clock) Elapsed() time.Duration {
	return c.elapsed
}

// UntilNext returns the time remaining until the next tick is due.
func (c *Clock) UntilNext() time.Duration {
	next := time.Duration(((c.ticks+1)*uint64(time.Second) + types.TimerFrequency - 1) / types.TimerFrequency)
	if rem := next - c.elapsed; rem > 0 {
		return rem
	}
	return 0
}

// Reset zeroes the clock.
func (c *Clock) Reset() {
	c.elapsed = 0
	c.ticks = 0
}
