// Package param implements the Web Audio AudioParam interface on top of an
// automation timeline.
//
// A [Param] owns its bounds, the direct value used while nothing is
// scheduled, the automation rate and one [automation.Timeline]. Control
// methods (SetValueAtTime, LinearRampToValueAtTime, ...) may be called from
// any goroutine; each successful call publishes a new immutable timeline
// snapshot. [Param.Process] runs on the rendering goroutine, loads one
// snapshot per render quantum and never blocks.
//
// Method names and units follow the Web Audio API: values are float32,
// times are float64 seconds on the owning context's [Clock].
package param
