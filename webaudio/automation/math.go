//go:build !fastmath

package automation

import "math"

// mathExp computes e^x using standard library math.
func mathExp(x float64) float64 {
	return math.Exp(x)
}

// mathPow computes base^exp using standard library math.
func mathPow(base, exp float64) float64 {
	return math.Pow(base, exp)
}
