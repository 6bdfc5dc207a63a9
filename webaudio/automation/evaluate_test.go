package automation

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-audioparam/internal/testutil"
)

func TestEmptyTimelineReturnsFallback(t *testing.T) {
	var tl Timeline
	for _, q := range []float64{0, 1, 1e6} {
		if got := tl.ValueAt(q, 0.75); got != 0.75 {
			t.Fatalf("ValueAt(%v) = %v, want 0.75", q, got)
		}
	}
}

func TestLinearRamp(t *testing.T) {
	tl := mustInsert(t, Timeline{}, SetValue(0, 0), LinearRamp(10, 1))

	testutil.RequireNearlyEqual(t, "t=0.5", tl.ValueAt(0.5, 0), 5, 1e-12)
	testutil.RequireNearlyEqual(t, "t=0.25", tl.ValueAt(0.25, 0), 2.5, 1e-12)
	testutil.RequireNearlyEqual(t, "t=1", tl.ValueAt(1, 0), 10, 0)
	testutil.RequireNearlyEqual(t, "t=2", tl.ValueAt(2, 0), 10, 0)
}

func TestExponentialRamp(t *testing.T) {
	tl := mustInsert(t, Timeline{}, SetValue(1, 0), ExponentialRamp(8, 3))

	testutil.RequireNearlyEqual(t, "t=1", tl.ValueAt(1, 0), 2, 1e-9)
	testutil.RequireNearlyEqual(t, "t=2", tl.ValueAt(2, 0), 4, 1e-9)
	testutil.RequireNearlyEqual(t, "t=3", tl.ValueAt(3, 0), 8, 0)
}

func TestExponentialRampHoldsWhenOriginLosesSign(t *testing.T) {
	tl := mustInsert(t, Timeline{}, SetValue(1, 0), ExponentialRamp(8, 3))
	// A later step to zero ahead of the ramp is legal; the ramp then holds.
	tl = mustInsert(t, tl, SetValue(0, 1))

	if got := tl.ValueAt(2, 0); got != 0 {
		t.Fatalf("ValueAt(2) = %v, want 0", got)
	}
	if got := tl.ValueAt(3, 0); got != 8 {
		t.Fatalf("ValueAt(3) = %v, want 8", got)
	}
}

func TestSetTarget(t *testing.T) {
	tl := mustInsert(t, Timeline{}, SetValue(1, 0), SetTarget(0, 1, 0.5))

	testutil.RequireNearlyEqual(t, "before start", tl.ValueAt(0.9, 0), 1, 0)
	testutil.RequireNearlyEqual(t, "at start", tl.ValueAt(1, 0), 1, 0)
	testutil.RequireNearlyEqual(t, "one tau", tl.ValueAt(1.5, 0), math.Exp(-1), 1e-12)
	testutil.RequireNearlyEqual(t, "ten tau", tl.ValueAt(6, 0), math.Exp(-10), 1e-12)
}

func TestSetTargetZeroTimeConstantJumps(t *testing.T) {
	tl := mustInsert(t, Timeline{}, SetValue(1, 0), SetTarget(3, 1, 0))

	if got := tl.ValueAt(1, 0); got != 3 {
		t.Fatalf("ValueAt(1) = %v, want 3", got)
	}
}

func TestSetTargetAfterRampStartsFromRampEnd(t *testing.T) {
	tl := mustInsert(t, Timeline{}, SetValue(0, 0), LinearRamp(1, 1), SetTarget(0.5, 1, 1))

	testutil.RequireNearlyEqual(t, "ramp", tl.ValueAt(0.5, 0), 0.5, 1e-12)
	testutil.RequireNearlyEqual(t, "target", tl.ValueAt(2, 0), 0.5+0.5*math.Exp(-1), 1e-12)
}

func TestValueCurve(t *testing.T) {
	tl := mustInsert(t, Timeline{}, SetValue(5, 0), SetValueCurve([]float64{0, 1, 0}, 1, 2))

	for _, tc := range []struct {
		t, want float64
	}{
		{t: 0.5, want: 5},
		{t: 1, want: 0},
		{t: 1.5, want: 0.5},
		{t: 2, want: 1},
		{t: 2.5, want: 0.5},
		{t: 3, want: 0},
		{t: 10, want: 0},
	} {
		testutil.RequireNearlyEqual(t, "curve", tl.ValueAt(tc.t, 0), tc.want, 1e-12)
	}
}

func TestRampAfterCurveStartsAtCurveEnd(t *testing.T) {
	tl := mustInsert(t, Timeline{}, SetValueCurve([]float64{0, 2}, 0, 1), LinearRamp(4, 2))

	testutil.RequireNearlyEqual(t, "curve", tl.ValueAt(0.5, 0), 1, 1e-12)
	testutil.RequireNearlyEqual(t, "ramp", tl.ValueAt(1.5, 0), 3, 1e-12)
}

func TestRampWithoutPredecessorStartsAtInsertTime(t *testing.T) {
	tl, err := Timeline{}.Insert(LinearRamp(10, 2), 1, 0)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	testutil.RequireNearlyEqual(t, "before now", tl.ValueAt(0.5, 0), 0, 0)
	testutil.RequireNearlyEqual(t, "midway", tl.ValueAt(1.5, 0), 5, 1e-12)
	testutil.RequireNearlyEqual(t, "end", tl.ValueAt(2, 0), 10, 0)

	// Once a step precedes the ramp, the ramp starts from it.
	tl = mustInsert(t, tl, SetValue(4, 0))
	testutil.RequireNearlyEqual(t, "from step", tl.ValueAt(1, 0), 7, 1e-12)
}

func TestRampAfterRunningSetTarget(t *testing.T) {
	const fallback = 1.0
	tl, err := Timeline{}.Insert(SetTarget(0, 0, 1), 0, fallback)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	tl, err = tl.Insert(LinearRamp(1, 2), 1, fallback)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	anchor := math.Exp(-1)
	testutil.RequireNearlyEqual(t, "target before anchor", tl.ValueAt(0.5, fallback), math.Exp(-0.5), 1e-12)
	testutil.RequireNearlyEqual(t, "anchor", tl.ValueAt(1, fallback), anchor, 1e-12)
	testutil.RequireNearlyEqual(t, "ramp", tl.ValueAt(1.5, fallback), anchor+(1-anchor)*0.5, 1e-12)
}

func TestRampReplacesPendingSetTarget(t *testing.T) {
	tl := mustInsert(t, Timeline{}, SetValue(1, 0), SetTarget(0, 1, 0.1), LinearRamp(3, 2))

	testutil.RequireNearlyEqual(t, "hold", tl.ValueAt(0.5, 0), 1, 0)
	testutil.RequireNearlyEqual(t, "ramp", tl.ValueAt(1.5, 0), 2, 1e-12)
}

func TestCursorMatchesValueAt(t *testing.T) {
	tl := mustInsert(t, Timeline{},
		SetValue(0.1, 0),
		ExponentialRamp(1, 0.01),
		SetTarget(0.3, 0.01, 0.005),
		LinearRamp(0.9, 0.03),
		SetValueCurve([]float64{0.9, 0.2, 0.6, 0.4}, 0.035, 0.01),
	)

	const sampleRate = 8000.0
	dst := make([]float64, 400)
	tl.Cursor(0).RenderFrames(dst, 0, sampleRate)

	want := make([]float64, len(dst))
	for i := range want {
		want[i] = tl.ValueAt(float64(i)/sampleRate, 0)
	}
	testutil.RequireSliceNearlyEqual(t, dst, want, 0)
	testutil.RequireFinite(t, dst)
}

func TestCursorRestartsOnEarlierTime(t *testing.T) {
	tl := mustInsert(t, Timeline{}, SetValue(0, 0), LinearRamp(10, 1))
	c := tl.Cursor(0)

	first := c.ValueAt(0.25)
	_ = c.ValueAt(5)
	if again := c.ValueAt(0.25); again != first {
		t.Fatalf("ValueAt after rewind = %v, want %v", again, first)
	}
}

func TestValueAtIsIdempotent(t *testing.T) {
	tl := mustInsert(t, Timeline{}, SetValue(1, 0), SetTarget(4, 0.5, 0.3), LinearRamp(2, 2))
	for q := 0.0; q < 3; q += 0.125 {
		if a, b := tl.ValueAt(q, 0), tl.ValueAt(q, 0); a != b {
			t.Fatalf("ValueAt(%v) not idempotent: %v vs %v", q, a, b)
		}
	}
}
