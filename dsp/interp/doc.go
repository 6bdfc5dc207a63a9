// Package interp provides the interpolation primitives used when sampling
// automation curves.
//
//   - [Linear2]: 2-point linear interpolation
//   - [CurveAt]: piecewise-linear lookup into a sample array at a fractional index
//   - [CurveIndex]: maps a time offset inside a stretched curve to a fractional index
package interp
