package param

import "errors"

var (
	// ErrInvalidState wraps every rejected scheduling call, mirroring the
	// InvalidStateError a browser would throw.
	ErrInvalidState = errors.New("param: invalid state")

	// ErrFixedAutomationRate is returned when changing the rate of a
	// parameter whose rate is fixed.
	ErrFixedAutomationRate = errors.New("param: automation rate is fixed")

	// ErrInvalidDescriptor is returned by New for inconsistent bounds.
	ErrInvalidDescriptor = errors.New("param: invalid descriptor")
)
