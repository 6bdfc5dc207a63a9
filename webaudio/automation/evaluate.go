package automation

import (
	"math"

	"github.com/cwbudde/algo-audioparam/dsp/core"
	"github.com/cwbudde/algo-audioparam/dsp/interp"
)

const maxTime = math.MaxFloat64

// segment is the rule that shapes the value after the most recently applied
// event, until the next event takes over.
type segment struct {
	kind    Kind
	time    float64
	value   float64
	ev      *Event
	initial bool
}

func (s *segment) valueAt(t float64) float64 {
	switch s.kind {
	case KindSetTarget:
		return targetValue(s.value, s.ev.Value, s.ev.TimeConstant, t-s.time)
	case KindSetValueCurve:
		return curveValue(s.ev, t)
	default:
		return s.value
	}
}

func targetValue(v0, target, timeConstant, dt float64) float64 {
	if timeConstant == 0 {
		return target
	}
	if dt <= 0 {
		return v0
	}
	return target + (v0-target)*mathExp(-dt/timeConstant)
}

func curveValue(e *Event, t float64) float64 {
	n := len(e.Curve)
	offset := t - e.Time
	if offset >= e.Duration {
		return e.Curve[n-1]
	}
	return interp.CurveAt(e.Curve, interp.CurveIndex(offset, e.Duration, n))
}

func rampValue(e *Event, t0, v0, t float64) float64 {
	frac := (t - t0) / (e.Time - t0)
	if e.Kind == KindLinearRamp {
		return interp.Linear2(frac, v0, e.Value)
	}
	// Exponential segments that would touch or cross zero hold their start value.
	if !core.SameSign(v0, e.Value) {
		return v0
	}
	return v0 * mathPow(e.Value/v0, frac)
}

// Cursor evaluates a timeline at non-decreasing times, applying each event
// once. Querying an earlier time than the previous query restarts the walk.
// A Cursor is not safe for concurrent use.
type Cursor struct {
	events   []Event
	fallback float64
	next     int
	last     float64
	tail     segment
}

func newCursor(events []Event, fallback float64) *Cursor {
	c := &Cursor{events: events, fallback: fallback}
	c.reset()
	return c
}

func (c *Cursor) reset() {
	c.next = 0
	c.last = math.Inf(-1)
	c.tail = segment{kind: KindSetValue, value: c.fallback, initial: true}
}

// ValueAt returns the unclamped automation value at t.
func (c *Cursor) ValueAt(t float64) float64 {
	if t < c.last {
		c.reset()
	}
	c.last = t

	for c.next < len(c.events) {
		e := &c.events[c.next]
		if t < e.Time {
			if !e.IsRamp() {
				return c.tail.valueAt(t)
			}
			t0, v0 := c.rampOrigin(e)
			if t < t0 {
				return c.tail.valueAt(t)
			}
			return rampValue(e, t0, v0, t)
		}
		c.apply(e)
		c.next++
	}
	return c.tail.valueAt(t)
}

// RenderFrames writes the value at each frame time (frame+i)/sampleRate into dst.
func (c *Cursor) RenderFrames(dst []float64, frame int64, sampleRate float64) {
	for i := range dst {
		dst[i] = c.ValueAt(float64(frame+int64(i)) / sampleRate)
	}
}

func (c *Cursor) applyAll() {
	for c.next < len(c.events) {
		c.apply(&c.events[c.next])
		c.next++
	}
}

func (c *Cursor) apply(e *Event) {
	switch e.Kind {
	case KindSetTarget:
		c.tail = segment{kind: KindSetTarget, time: e.Time, value: c.tail.valueAt(e.Time), ev: e}
	case KindSetValueCurve:
		c.tail = segment{kind: KindSetValueCurve, time: e.Time, value: e.Curve[0], ev: e}
	case KindCancelScheduled:
		c.tail = segment{kind: KindSetValue, time: e.Time, value: c.tail.valueAt(e.Time)}
	default:
		c.tail = segment{kind: KindSetValue, time: e.Time, value: e.Value}
	}
}

// rampOrigin returns the (time, value) point the ramp e interpolates from,
// given the segment in effect before it.
func (c *Cursor) rampOrigin(e *Event) (float64, float64) {
	switch {
	case c.tail.initial:
		if e.anchor == anchorInitial {
			return e.anchorTime, e.anchorValue
		}
		return 0, c.tail.value
	case c.tail.kind == KindSetTarget:
		if e.anchor == anchorTarget && e.anchorTime >= c.tail.time {
			return e.anchorTime, e.anchorValue
		}
		// A ramp scheduled before the setTarget began replaces it.
		return c.tail.time, c.tail.value
	case c.tail.kind == KindSetValueCurve:
		end := c.tail.ev.End()
		return end, c.tail.valueAt(end)
	default:
		return c.tail.time, c.tail.value
	}
}
