package automation

import (
	"fmt"
	"iter"
	"sort"

	"github.com/cwbudde/algo-audioparam/dsp/core"
)

// Timeline is an immutable list of automation events ordered by event time.
// The zero value is an empty timeline.
type Timeline struct {
	events []Event
}

// Len returns the number of scheduled events.
func (tl Timeline) Len() int {
	return len(tl.events)
}

// Empty reports whether no events are scheduled.
func (tl Timeline) Empty() bool {
	return len(tl.events) == 0
}

// Events returns a copy of the scheduled events.
func (tl Timeline) Events() []Event {
	out := make([]Event, len(tl.events))
	for i, e := range tl.events {
		out[i] = e.clone()
	}
	return out
}

// All returns the scheduled events in time order.
func (tl Timeline) All() iter.Seq[Event] {
	return tl.EventsBefore(maxTime)
}

// EventsBefore returns the events whose time is at or before t, in ascending
// order. Each call to the returned sequence starts from the first event.
func (tl Timeline) EventsBefore(t float64) iter.Seq[Event] {
	events := tl.events
	return func(yield func(Event) bool) {
		for _, e := range events {
			if e.Time > t || !yield(e.clone()) {
				return
			}
		}
	}
}

// Insert validates e against the timeline and returns a timeline containing
// it. now is the current context time and fallback the value the parameter
// holds before the first event; both determine where a ramp scheduled without
// a usable predecessor starts. On error the receiver is returned unchanged.
func (tl Timeline) Insert(e Event, now, fallback float64) (Timeline, error) {
	if err := checkShape(e); err != nil {
		return tl, err
	}
	e = e.clone()

	idx := sort.Search(len(tl.events), func(i int) bool {
		return tl.events[i].Time > e.Time
	})

	if e.IsRamp() {
		e = tl.anchorRamp(e, idx, now, fallback)
	}

	next := make([]Event, 0, len(tl.events)+1)
	next = append(next, tl.events[:idx]...)
	next = append(next, e)
	next = append(next, tl.events[idx:]...)

	if err := checkExponential(next, idx, fallback); err != nil {
		return tl, err
	}
	if err := checkCurve(e); err != nil {
		return tl, err
	}
	if err := tl.checkOverlap(e); err != nil {
		return tl, err
	}

	return Timeline{events: next}, nil
}

// anchorRamp records the origin of a ramp whose start depends on the moment
// it was scheduled: ramps without a predecessor start at (now, fallback) and
// ramps following a setTarget that is already running start from that
// setTarget's value at now.
func (tl Timeline) anchorRamp(e Event, idx int, now, fallback float64) Event {
	if idx == 0 {
		e.anchor = anchorInitial
		e.anchorTime = now
		e.anchorValue = fallback
		return e
	}

	prev := tl.events[idx-1]
	if prev.Kind == KindSetTarget && prev.Time <= now {
		at := min(now, e.Time)
		e.anchor = anchorTarget
		e.anchorTime = at
		e.anchorValue = tl.ValueAt(at, fallback)
	}
	return e
}

// CancelScheduledValues removes every event at or after t together with any
// value curve that is still running at t.
func (tl Timeline) CancelScheduledValues(t float64) (Timeline, error) {
	if !core.IsFinite(t) || t < 0 {
		return tl, fmt.Errorf("%w: cancel time %g", ErrInvalidTime, t)
	}

	out := make([]Event, 0, len(tl.events))
	for i, e := range tl.events {
		if e.Time >= t {
			break
		}
		if e.Kind == KindSetValueCurve && tl.curveEnd(i) > t {
			continue
		}
		out = append(out, e)
	}
	return Timeline{events: out}, nil
}

// curveEnd returns the effective end of the curve at index i, which is
// earlier than its nominal end when a cancel-and-hold froze it.
func (tl Timeline) curveEnd(i int) float64 {
	end := tl.events[i].End()
	if i+1 < len(tl.events) && tl.events[i+1].Kind == KindCancelScheduled {
		end = min(end, tl.events[i+1].Time)
	}
	return end
}

// CancelAndHoldAtTime removes every event after t while keeping the value
// the automation would have had at t:
//
//   - a ramp ending after t is shortened to end at t with its value at t;
//   - otherwise a setTarget running at t is replaced by a step to its value at t;
//   - otherwise a value curve running at t is frozen at t with its shape intact.
func (tl Timeline) CancelAndHoldAtTime(t, fallback float64) (Timeline, error) {
	if !core.IsFinite(t) || t < 0 {
		return tl, fmt.Errorf("%w: cancel time %g", ErrInvalidTime, t)
	}

	e2 := sort.Search(len(tl.events), func(i int) bool {
		return tl.events[i].Time > t
	})

	out := make([]Event, 0, e2+1)
	out = append(out, tl.events[:e2]...)

	switch {
	case e2 < len(tl.events) && tl.events[e2].IsRamp():
		ramp := tl.events[e2]
		ramp.Value = tl.ValueAt(t, fallback)
		ramp.Time = t
		out = append(out, ramp)
	case e2 > 0 && tl.events[e2-1].Kind == KindSetTarget:
		out = append(out, SetValue(tl.ValueAt(t, fallback), t))
	case e2 > 0 && tl.events[e2-1].Kind == KindSetValueCurve && t < tl.events[e2-1].End():
		out = append(out, cancelHold(t))
	}

	return Timeline{events: out}, nil
}

// ValueAt returns the unclamped automation value at t.
func (tl Timeline) ValueAt(t, fallback float64) float64 {
	return newCursor(tl.events, fallback).ValueAt(t)
}

// Cursor returns a cursor for evaluating the timeline at increasing times.
func (tl Timeline) Cursor(fallback float64) *Cursor {
	return newCursor(tl.events, fallback)
}
