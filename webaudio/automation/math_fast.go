//go:build fastmath

package automation

import "github.com/meko-christian/algo-approx"

// mathExp computes e^x using fast approximation.
func mathExp(x float64) float64 {
	return approx.FastExp(x)
}

// mathPow computes base^exp for base > 0 using fast approximation.
// Uses the identity: b^e = e^(e * ln(b))
func mathPow(base, exp float64) float64 {
	return approx.FastExp(exp * approx.FastLog(base))
}
