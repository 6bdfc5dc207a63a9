package script

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-audioparam/dsp/core"
	"github.com/cwbudde/algo-audioparam/webaudio/automation"
	"github.com/cwbudde/algo-audioparam/webaudio/param"
)

// ErrInvalidScript is returned for scripts that parse but cannot be run.
var ErrInvalidScript = errors.New("script: invalid script")

// Event types that are operations rather than scheduled event kinds.
const (
	opCancelScheduled = "cancelScheduled"
	opCancelAndHold   = "cancelAndHold"
)

// Document is a parsed automation script.
type Document struct {
	SampleRate float64     `yaml:"sample_rate,omitempty"`
	Quantum    int         `yaml:"quantum,omitempty"`
	Duration   float64     `yaml:"duration"`
	Params     []ParamSpec `yaml:"params"`
}

// ParamSpec describes one parameter and the calls made on it.
type ParamSpec struct {
	Name      string      `yaml:"name"`
	Default   float32     `yaml:"default"`
	Min       *float32    `yaml:"min,omitempty"`
	Max       *float32    `yaml:"max,omitempty"`
	Rate      string      `yaml:"rate,omitempty"`
	FixedRate bool        `yaml:"fixed_rate,omitempty"`
	Events    []EventSpec `yaml:"events,omitempty"`
}

// EventSpec is one automation call. Type is an event kind name
// (setValue, linearRamp, exponentialRamp, setTarget, setValueCurve) or one
// of the cancel operations cancelScheduled and cancelAndHold. For ramps Time
// is the end time.
type EventSpec struct {
	Type         string    `yaml:"type"`
	Value        float32   `yaml:"value,omitempty"`
	Time         float64   `yaml:"time"`
	TimeConstant float32   `yaml:"time_constant,omitempty"`
	Values       []float32 `yaml:"values,omitempty"`
	Duration     float64   `yaml:"duration,omitempty"`
}

// Load reads and parses the script at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a YAML script, fills in defaults and checks that it names
// only known parameters, rates and event types.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}

	cfg := core.DefaultProcessorConfig()
	if doc.SampleRate == 0 {
		doc.SampleRate = cfg.SampleRate
	}
	if doc.Quantum == 0 {
		doc.Quantum = cfg.BlockSize
	}

	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *Document) validate() error {
	if d.SampleRate < 0 || d.Quantum < 0 {
		return fmt.Errorf("%w: sample_rate and quantum must be positive", ErrInvalidScript)
	}
	if !core.IsFinite(d.Duration) || d.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalidScript, d.Duration)
	}

	seen := make(map[string]bool, len(d.Params))
	for _, ps := range d.Params {
		if ps.Name == "" {
			return fmt.Errorf("%w: parameter without name", ErrInvalidScript)
		}
		if seen[ps.Name] {
			return fmt.Errorf("%w: duplicate parameter %q", ErrInvalidScript, ps.Name)
		}
		seen[ps.Name] = true

		if _, err := ps.Descriptor(); err != nil {
			return err
		}
		for i, ev := range ps.Events {
			if !knownType(ev.Type) {
				return fmt.Errorf("%w: %s event %d: unknown type %q", ErrInvalidScript, ps.Name, i, ev.Type)
			}
		}
	}
	return nil
}

func knownType(t string) bool {
	if t == opCancelAndHold {
		return true
	}
	_, err := automation.ParseKind(t)
	return err == nil
}

// Config returns the processing configuration the script asks for.
func (d *Document) Config() core.ProcessorConfig {
	return core.ApplyProcessorOptions(
		core.WithSampleRate(d.SampleRate),
		core.WithBlockSize(d.Quantum),
	)
}

// Descriptor returns the parameter descriptor. Missing bounds span the full
// single-precision range.
func (ps ParamSpec) Descriptor() (param.Descriptor, error) {
	desc := param.DefaultDescriptor(ps.Name, ps.Default)
	if ps.Min != nil {
		desc.MinValue = *ps.Min
	}
	if ps.Max != nil {
		desc.MaxValue = *ps.Max
	}
	if ps.Rate != "" {
		rate, err := param.ParseAutomationRate(ps.Rate)
		if err != nil {
			return desc, fmt.Errorf("%w: %s: %w", ErrInvalidScript, ps.Name, err)
		}
		desc.Rate = rate
	}
	desc.FixedRate = ps.FixedRate
	return desc, nil
}

// Build creates one parameter per ParamSpec and applies its events.
func (d *Document) Build(clock param.Clock, opts ...param.Option) ([]*param.Param, error) {
	params := make([]*param.Param, 0, len(d.Params))
	for _, ps := range d.Params {
		desc, err := ps.Descriptor()
		if err != nil {
			return nil, err
		}
		p, err := param.New(clock, desc, opts...)
		if err != nil {
			return nil, err
		}
		if err := Apply(p, ps.Events); err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}

// Apply makes the calls described by events on p, stopping at the first
// rejected call.
func Apply(p *param.Param, events []EventSpec) error {
	for i, ev := range events {
		if err := apply(p, ev); err != nil {
			return fmt.Errorf("script: %s event %d (%s at %g): %w", p.Name(), i, ev.Type, ev.Time, err)
		}
	}
	return nil
}

func apply(p *param.Param, ev EventSpec) error {
	if ev.Type == opCancelAndHold {
		_, err := p.CancelAndHoldAtTime(ev.Time)
		return err
	}

	kind, err := automation.ParseKind(ev.Type)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScript, err)
	}

	switch kind {
	case automation.KindSetValue:
		_, err = p.SetValueAtTime(ev.Value, ev.Time)
	case automation.KindLinearRamp:
		_, err = p.LinearRampToValueAtTime(ev.Value, ev.Time)
	case automation.KindExponentialRamp:
		_, err = p.ExponentialRampToValueAtTime(ev.Value, ev.Time)
	case automation.KindSetTarget:
		_, err = p.SetTargetAtTime(ev.Value, ev.Time, ev.TimeConstant)
	case automation.KindSetValueCurve:
		_, err = p.SetValueCurveAtTime(ev.Values, ev.Time, ev.Duration)
	case automation.KindCancelScheduled:
		_, err = p.CancelScheduledValues(ev.Time)
	}
	return err
}
