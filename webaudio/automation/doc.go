// Package automation implements the automation event timeline behind a Web
// Audio AudioParam.
//
// A [Timeline] is an immutable, time-ordered list of [Event] values. Every
// mutation ([Timeline.Insert], [Timeline.CancelScheduledValues],
// [Timeline.CancelAndHoldAtTime]) validates its input and returns a new
// Timeline, leaving the receiver untouched. This makes a Timeline safe to
// publish to a rendering goroutine as a snapshot.
//
// Values are evaluated with a [Cursor], which walks the events once for
// monotonically increasing query times:
//
//	tl, err := automation.Timeline{}.Insert(automation.SetValue(0, 0), now, direct)
//	tl, err = tl.Insert(automation.LinearRamp(10, 1), now, direct)
//	v := tl.ValueAt(0.5, direct) // 5
//
// Event times are seconds on the owning context's clock. For ramps the event
// time is the ramp's end; every other kind is keyed by its start.
//
// Build with -tags fastmath to evaluate exponential segments with the
// algo-approx approximations instead of the standard library.
package automation
