package automation

import "errors"

var (
	// ErrInvalidTime is returned for negative or non-finite event times and
	// time constants.
	ErrInvalidTime = errors.New("automation: invalid time")

	// ErrInvalidValue is returned for NaN or infinite event values.
	ErrInvalidValue = errors.New("automation: non-finite value")

	// ErrInvalidExponentialTarget is returned when an exponential ramp would
	// reach or cross zero.
	ErrInvalidExponentialTarget = errors.New("automation: invalid exponential ramp target")

	// ErrInvalidCurve is returned for value curves with fewer than two samples,
	// non-finite samples or a non-positive duration.
	ErrInvalidCurve = errors.New("automation: invalid value curve")

	// ErrOverlap is returned when an event collides with an existing event.
	ErrOverlap = errors.New("automation: overlapping event")
)
