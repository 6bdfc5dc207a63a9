package automation

import "fmt"

// Kind identifies the interpolation rule of an automation event.
type Kind uint8

const (
	KindSetValue Kind = iota
	KindLinearRamp
	KindExponentialRamp
	KindSetTarget
	KindSetValueCurve
	// KindCancelScheduled marks the point where a cancel-and-hold froze the
	// preceding automation. It is never scheduled directly.
	KindCancelScheduled
)

var kindNames = [...]string{
	KindSetValue:        "setValue",
	KindLinearRamp:      "linearRamp",
	KindExponentialRamp: "exponentialRamp",
	KindSetTarget:       "setTarget",
	KindSetValueCurve:   "setValueCurve",
	KindCancelScheduled: "cancelScheduled",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind returns the Kind for one of the names produced by Kind.String.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("automation: unknown event kind %q", name)
}

type anchorMode uint8

const (
	anchorNone anchorMode = iota
	// anchorInitial: ramp scheduled with no preceding event.
	anchorInitial
	// anchorTarget: ramp scheduled after a setTarget that had already started.
	anchorTarget
)

// Event is a single scheduled automation instruction.
type Event struct {
	Kind Kind

	// Time is the end time for ramps and the start time for all other kinds.
	Time float64

	// Value is the step or ramp end value, or the setTarget target.
	Value float64

	// TimeConstant is the setTarget first-order time constant in seconds.
	TimeConstant float64

	// Curve and Duration describe a setValueCurve event.
	Curve    []float64
	Duration float64

	anchor      anchorMode
	anchorTime  float64
	anchorValue float64
}

// SetValue returns a step to value at time.
func SetValue(value, time float64) Event {
	return Event{Kind: KindSetValue, Value: value, Time: time}
}

// LinearRamp returns a linear ramp reaching value at endTime.
func LinearRamp(value, endTime float64) Event {
	return Event{Kind: KindLinearRamp, Value: value, Time: endTime}
}

// ExponentialRamp returns an exponential ramp reaching value at endTime.
func ExponentialRamp(value, endTime float64) Event {
	return Event{Kind: KindExponentialRamp, Value: value, Time: endTime}
}

// SetTarget returns an exponential approach towards target starting at
// startTime with the given time constant.
func SetTarget(target, startTime, timeConstant float64) Event {
	return Event{Kind: KindSetTarget, Value: target, Time: startTime, TimeConstant: timeConstant}
}

// SetValueCurve returns a curve event. The values are copied.
func SetValueCurve(values []float64, startTime, duration float64) Event {
	return Event{
		Kind:     KindSetValueCurve,
		Curve:    append([]float64(nil), values...),
		Time:     startTime,
		Duration: duration,
	}
}

func cancelHold(time float64) Event {
	return Event{Kind: KindCancelScheduled, Time: time}
}

// IsRamp reports whether e interpolates towards its time from the preceding event.
func (e Event) IsRamp() bool {
	return e.Kind == KindLinearRamp || e.Kind == KindExponentialRamp
}

// End returns the time at which the event stops shaping the value on its
// own. It equals Time for every kind except setValueCurve.
func (e Event) End() float64 {
	if e.Kind == KindSetValueCurve {
		return e.Time + e.Duration
	}
	return e.Time
}

func (e Event) clone() Event {
	if e.Curve != nil {
		e.Curve = append([]float64(nil), e.Curve...)
	}
	return e
}

func (e Event) String() string {
	switch e.Kind {
	case KindSetTarget:
		return fmt.Sprintf("%s(target=%g, t=%g, tau=%g)", e.Kind, e.Value, e.Time, e.TimeConstant)
	case KindSetValueCurve:
		return fmt.Sprintf("%s(n=%d, t=%g, d=%g)", e.Kind, len(e.Curve), e.Time, e.Duration)
	case KindCancelScheduled:
		return fmt.Sprintf("%s(t=%g)", e.Kind, e.Time)
	default:
		return fmt.Sprintf("%s(v=%g, t=%g)", e.Kind, e.Value, e.Time)
	}
}
