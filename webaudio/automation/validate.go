package automation

import (
	"fmt"

	"github.com/cwbudde/algo-audioparam/dsp/core"
)

// checkShape applies the checks that need no knowledge of other events:
// times, values and curve layout.
func checkShape(e Event) error {
	if !core.IsFinite(e.Time) || e.Time < 0 {
		return fmt.Errorf("%w: %s time %g", ErrInvalidTime, e.Kind, e.Time)
	}

	switch e.Kind {
	case KindSetTarget:
		if !core.IsFinite(e.TimeConstant) || e.TimeConstant < 0 {
			return fmt.Errorf("%w: time constant %g", ErrInvalidTime, e.TimeConstant)
		}
	case KindSetValueCurve:
		// Curve samples are checked with the curve rule below.
		return nil
	case KindCancelScheduled:
		return fmt.Errorf("%w: %s cannot be scheduled", ErrInvalidValue, e.Kind)
	}

	if !core.IsFinite(e.Value) {
		return fmt.Errorf("%w: %s value %g", ErrInvalidValue, e.Kind, e.Value)
	}

	return nil
}

func checkCurve(e Event) error {
	if e.Kind != KindSetValueCurve {
		return nil
	}
	if !core.IsFinite(e.Duration) || e.Duration <= 0 {
		return fmt.Errorf("%w: duration %g", ErrInvalidCurve, e.Duration)
	}
	if len(e.Curve) < 2 {
		return fmt.Errorf("%w: %d samples, need at least 2", ErrInvalidCurve, len(e.Curve))
	}
	for i, v := range e.Curve {
		if !core.IsFinite(v) {
			return fmt.Errorf("%w: sample %d is %g", ErrInvalidCurve, i, v)
		}
	}
	return nil
}

// checkExponential verifies that the ramp at index idx of events starts from
// a non-zero value of the same sign as its target.
func checkExponential(events []Event, idx int, fallback float64) error {
	e := events[idx]
	if e.Kind != KindExponentialRamp {
		return nil
	}
	if e.Value == 0 {
		return fmt.Errorf("%w: target is zero", ErrInvalidExponentialTarget)
	}

	c := newCursor(events[:idx], fallback)
	c.applyAll()
	_, v0 := c.rampOrigin(&e)
	if !core.SameSign(v0, e.Value) {
		return fmt.Errorf("%w: ramp from %g to %g", ErrInvalidExponentialTarget, v0, e.Value)
	}
	return nil
}

// checkOverlap enforces one event per time and keeps value curves free of
// any other event while they are active. A setTarget may share the end time
// of a ramp, and any event may share the time of a hold marker. A curve
// frozen by a hold marker is active only up to the marker.
func (tl Timeline) checkOverlap(e Event) error {
	for i, x := range tl.events {
		if x.Time == e.Time && x.Kind != KindCancelScheduled && (e.Kind != KindSetTarget || !x.IsRamp()) {
			return fmt.Errorf("%w: %s at %g collides with %s", ErrOverlap, e.Kind, e.Time, x)
		}
		if x.Kind == KindSetValueCurve && e.Time > x.Time && e.Time < tl.curveEnd(i) {
			return fmt.Errorf("%w: %s at %g inside %s", ErrOverlap, e.Kind, e.Time, x)
		}
		if e.Kind == KindSetValueCurve && x.Time > e.Time && x.Time < e.End() {
			return fmt.Errorf("%w: %s inside new %s", ErrOverlap, x, e)
		}
	}
	return nil
}
