package interp

import "math"

// Linear2 interpolates from x0 to x1 at frac in [0,1].
func Linear2(frac, x0, x1 float64) float64 {
	return x0 + frac*(x1-x0)
}

// CurveAt returns the piecewise-linear value of values at the fractional
// index pos. Positions before the first sample return values[0]; positions at
// or beyond the last sample return the last sample. An empty curve yields 0.
func CurveAt(values []float64, pos float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	if pos <= 0 || math.IsNaN(pos) {
		return values[0]
	}
	if pos >= float64(n-1) {
		return values[n-1]
	}

	k := int(math.Floor(pos))
	return Linear2(pos-float64(k), values[k], values[k+1])
}

// CurveIndex maps offset seconds into a curve of n samples stretched over
// duration seconds to a fractional sample index, so that offset 0 addresses
// the first sample and offset duration the last.
func CurveIndex(offset, duration float64, n int) float64 {
	if n < 2 || duration <= 0 {
		return 0
	}
	return offset * float64(n-1) / duration
}
