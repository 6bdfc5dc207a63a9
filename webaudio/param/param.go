package param

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-audioparam/dsp/core"
	"github.com/cwbudde/algo-audioparam/webaudio/automation"
)

// MostPositiveSingleFloat is the default nominal range bound.
const MostPositiveSingleFloat = math.MaxFloat32

// Descriptor carries the construction-time properties an audio node gives
// each of its parameters.
type Descriptor struct {
	Name         string
	DefaultValue float32
	MinValue     float32
	MaxValue     float32
	Rate         AutomationRate
	FixedRate    bool
}

// DefaultDescriptor returns a descriptor spanning the full single-precision range.
func DefaultDescriptor(name string, defaultValue float32) Descriptor {
	return Descriptor{
		Name:         name,
		DefaultValue: defaultValue,
		MinValue:     -MostPositiveSingleFloat,
		MaxValue:     MostPositiveSingleFloat,
	}
}

func (d Descriptor) validate() error {
	def, lo, hi := float64(d.DefaultValue), float64(d.MinValue), float64(d.MaxValue)
	if math.IsNaN(def) || math.IsNaN(lo) || math.IsNaN(hi) {
		return fmt.Errorf("%w: %q has NaN bounds", ErrInvalidDescriptor, d.Name)
	}
	if lo > def || def > hi {
		return fmt.Errorf("%w: %q needs min <= default <= max, got %g <= %g <= %g",
			ErrInvalidDescriptor, d.Name, lo, def, hi)
	}
	if d.Rate != ARate && d.Rate != KRate {
		return fmt.Errorf("%w: %q has rate %s", ErrInvalidDescriptor, d.Name, d.Rate)
	}
	return nil
}

// Option configures a Param.
type Option func(*Param)

// WithLogger sets the logger for scheduling diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Param) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithID sets the parameter identity instead of a random one.
func WithID(id uuid.UUID) Option {
	return func(p *Param) {
		p.id = id
	}
}

// state is one published snapshot of everything the render path reads.
type state struct {
	timeline automation.Timeline
	direct   float64
	rate     AutomationRate
}

// Param is a Web Audio AudioParam.
type Param struct {
	id     uuid.UUID
	desc   Descriptor
	clock  Clock
	logger *zap.Logger

	// mu serializes control-side mutations; readers use cur only.
	mu  sync.Mutex
	cur atomic.Pointer[state]

	// Render-side cache, touched only by Process.
	cursor      *automation.Cursor
	cursorState *state
}

// New returns a Param described by desc whose times are read from clock.
// A nil clock reads as time zero.
func New(clock Clock, desc Descriptor, opts ...Option) (*Param, error) {
	if err := desc.validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = &ManualClock{}
	}

	p := &Param{
		id:     uuid.New(),
		desc:   desc,
		clock:  clock,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	p.logger = p.logger.Named("audioparam").With(
		zap.String("param", desc.Name),
		zap.Stringer("id", p.id),
	)
	p.cur.Store(&state{direct: float64(desc.DefaultValue), rate: desc.Rate})
	return p, nil
}

// ID returns the parameter identity.
func (p *Param) ID() uuid.UUID { return p.id }

// Name returns the descriptor name.
func (p *Param) Name() string { return p.desc.Name }

// DefaultValue returns the construction-time default.
func (p *Param) DefaultValue() float32 { return p.desc.DefaultValue }

// MinValue returns the lower nominal range bound.
func (p *Param) MinValue() float32 { return p.desc.MinValue }

// MaxValue returns the upper nominal range bound.
func (p *Param) MaxValue() float32 { return p.desc.MaxValue }

// Timeline returns the currently published automation timeline.
func (p *Param) Timeline() automation.Timeline {
	return p.cur.Load().timeline
}

// Value returns the direct value clamped to the nominal range.
func (p *Param) Value() float32 {
	return float32(p.clamp(p.cur.Load().direct))
}

// SetValue sets the direct value, which must be finite. While automation events are scheduled it
// also schedules a step to value at the current context time; if that step
// is rejected nothing changes.
func (p *Param) SetValue(value float32) error {
	if !core.IsFinite(float64(value)) {
		return fmt.Errorf("%w: %w: direct value %g", ErrInvalidState, automation.ErrInvalidValue, value)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.cur.Load()
	next := *s
	next.direct = float64(value)

	if !s.timeline.Empty() {
		now := p.clock.CurrentTime()
		tl, err := s.timeline.Insert(automation.SetValue(float64(value), now), now, s.direct)
		if err != nil {
			p.logger.Debug("implicit setValueAtTime rejected",
				zap.Float32("value", value), zap.Float64("time", now), zap.Error(err))
			return fmt.Errorf("%w: %w", ErrInvalidState, err)
		}
		next.timeline = tl
	}

	p.cur.Store(&next)
	return nil
}

// AutomationRate returns the current automation rate.
func (p *Param) AutomationRate() AutomationRate {
	return p.cur.Load().rate
}

// SetAutomationRate changes the automation rate unless it is fixed.
func (p *Param) SetAutomationRate(rate AutomationRate) error {
	if rate != ARate && rate != KRate {
		return fmt.Errorf("%w: unknown rate %s", ErrInvalidState, rate)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.cur.Load()
	if rate == s.rate {
		return nil
	}
	if p.desc.FixedRate {
		p.logger.Debug("automation rate change rejected",
			zap.Stringer("from", s.rate), zap.Stringer("to", rate))
		return fmt.Errorf("%w: %w: cannot change %s to %s", ErrInvalidState, ErrFixedAutomationRate, s.rate, rate)
	}

	next := *s
	next.rate = rate
	p.cur.Store(&next)
	return nil
}

// SetValueAtTime schedules a step to value at startTime.
func (p *Param) SetValueAtTime(value float32, startTime float64) (*Param, error) {
	return p.schedule(automation.SetValue(float64(value), startTime))
}

// LinearRampToValueAtTime schedules a linear ramp reaching value at endTime.
func (p *Param) LinearRampToValueAtTime(value float32, endTime float64) (*Param, error) {
	return p.schedule(automation.LinearRamp(float64(value), endTime))
}

// ExponentialRampToValueAtTime schedules an exponential ramp reaching value
// at endTime. The ramp must not reach or cross zero.
func (p *Param) ExponentialRampToValueAtTime(value float32, endTime float64) (*Param, error) {
	return p.schedule(automation.ExponentialRamp(float64(value), endTime))
}

// SetTargetAtTime schedules an exponential approach to target from startTime.
func (p *Param) SetTargetAtTime(target float32, startTime float64, timeConstant float32) (*Param, error) {
	return p.schedule(automation.SetTarget(float64(target), startTime, float64(timeConstant)))
}

// SetValueCurveAtTime schedules values spread evenly over
// [startTime, startTime+duration]. The values are copied.
func (p *Param) SetValueCurveAtTime(values []float32, startTime, duration float64) (*Param, error) {
	curve := make([]float64, len(values))
	for i, v := range values {
		curve[i] = float64(v)
	}
	return p.schedule(automation.SetValueCurve(curve, startTime, duration))
}

func (p *Param) schedule(e automation.Event) (*Param, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.cur.Load()
	tl, err := s.timeline.Insert(e, p.clock.CurrentTime(), s.direct)
	if err != nil {
		p.logger.Debug("automation event rejected", zap.Stringer("event", e), zap.Error(err))
		return p, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}

	next := *s
	next.timeline = tl
	p.cur.Store(&next)
	return p, nil
}

// CancelScheduledValues removes all events at or after cancelTime.
func (p *Param) CancelScheduledValues(cancelTime float64) (*Param, error) {
	return p.cancel("cancelScheduledValues", cancelTime, func(s *state) (automation.Timeline, error) {
		return s.timeline.CancelScheduledValues(cancelTime)
	})
}

// CancelAndHoldAtTime removes all events after cancelTime and holds the
// value the automation had at cancelTime.
func (p *Param) CancelAndHoldAtTime(cancelTime float64) (*Param, error) {
	return p.cancel("cancelAndHoldAtTime", cancelTime, func(s *state) (automation.Timeline, error) {
		return s.timeline.CancelAndHoldAtTime(cancelTime, s.direct)
	})
}

func (p *Param) cancel(op string, cancelTime float64, fn func(*state) (automation.Timeline, error)) (*Param, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.cur.Load()
	tl, err := fn(s)
	if err != nil {
		p.logger.Debug(op+" rejected", zap.Float64("time", cancelTime), zap.Error(err))
		return p, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}

	p.logger.Debug(op, zap.Float64("time", cancelTime),
		zap.Int("before", s.timeline.Len()), zap.Int("after", tl.Len()))

	next := *s
	next.timeline = tl
	p.cur.Store(&next)
	return p, nil
}

// ValueAt returns the intrinsic value at context time t, clamped to the
// nominal range.
func (p *Param) ValueAt(t float64) float32 {
	s := p.cur.Load()
	return float32(p.computed(s.timeline.ValueAt(t, s.direct)))
}

func (p *Param) clamp(v float64) float64 {
	return core.Clamp(v, float64(p.desc.MinValue), float64(p.desc.MaxValue))
}

// computed maps a raw automation value to the value the node sees.
func (p *Param) computed(v float64) float64 {
	if math.IsNaN(v) {
		return float64(p.desc.DefaultValue)
	}
	return p.clamp(v)
}
