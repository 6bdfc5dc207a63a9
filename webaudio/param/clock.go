package param

import (
	"math"
	"sync/atomic"
)

// Clock is the time source of the owning audio context. A Param only
// borrows it; the context outlives its parameters.
type Clock interface {
	CurrentTime() float64
}

// ManualClock is a Clock advanced explicitly, as an offline renderer does.
// It is safe for concurrent use.
type ManualClock struct {
	bits atomic.Uint64
}

// CurrentTime returns the clock time in seconds.
func (c *ManualClock) CurrentTime() float64 {
	return math.Float64frombits(c.bits.Load())
}

// Set moves the clock to t.
func (c *ManualClock) Set(t float64) {
	c.bits.Store(math.Float64bits(t))
}

// Advance moves the clock forward by dt seconds.
func (c *ManualClock) Advance(dt float64) {
	for {
		old := c.bits.Load()
		next := math.Float64bits(math.Float64frombits(old) + dt)
		if c.bits.CompareAndSwap(old, next) {
			return
		}
	}
}
