package testutil

import "testing"

func TestRequireHelpersAcceptMatchingData(t *testing.T) {
	RequireNearlyEqual(t, "scalar", 1.0, 1.0+1e-12, 1e-9)
	RequireSliceNearlyEqual(t, []float64{1, 2}, []float64{1, 2 + 1e-12}, 1e-9)
	RequireFinite(t, []float64{0, -1, 1e300})
	RequireWithin(t, []float64{0, 0.5, 1}, 0, 1)
}

func TestRampEndpoints(t *testing.T) {
	r := Ramp(0, 1, 5)
	RequireSliceNearlyEqual(t, r, []float64{0, 0.25, 0.5, 0.75, 1}, 1e-15)
}

func TestDC(t *testing.T) {
	d := DC(0.5, 4)
	for i, v := range d {
		if v != 0.5 {
			t.Fatalf("DC[%d] = %v, want 0.5", i, v)
		}
	}
}
