package script

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-audioparam/internal/testutil"
	"github.com/cwbudde/algo-audioparam/webaudio/automation"
	"github.com/cwbudde/algo-audioparam/webaudio/param"
)

const rampScript = `
sample_rate: 8
quantum: 4
duration: 1.5
params:
  - name: gain
    default: 1
    min: 0
    max: 10
    events:
      - {type: setValue, value: 0, time: 0}
      - {type: linearRamp, value: 8, time: 1}
  - name: detune
    rate: k-rate
    fixed_rate: true
`

func TestParseDefaults(t *testing.T) {
	doc, err := Parse([]byte("duration: 1\nparams: [{name: gain}]\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cfg := doc.Config()
	if cfg.SampleRate != 48000 || cfg.BlockSize != 128 {
		t.Fatalf("config = %+v, want 48000/128", cfg)
	}

	desc, err := doc.Params[0].Descriptor()
	if err != nil {
		t.Fatalf("Descriptor: %v", err)
	}
	if desc.MinValue != -param.MostPositiveSingleFloat || desc.MaxValue != param.MostPositiveSingleFloat {
		t.Fatalf("range = [%v, %v]", desc.MinValue, desc.MaxValue)
	}
	if desc.Rate != param.ARate || desc.FixedRate {
		t.Fatalf("rate = %s fixed=%v", desc.Rate, desc.FixedRate)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no duration", "params: [{name: gain}]"},
		{"negative duration", "duration: -1"},
		{"unnamed param", "duration: 1\nparams: [{default: 1}]"},
		{"duplicate param", "duration: 1\nparams: [{name: a}, {name: a}]"},
		{"unknown rate", "duration: 1\nparams: [{name: a, rate: x-rate}]"},
		{"unknown event", "duration: 1\nparams: [{name: a, events: [{type: jump, time: 0}]}]"},
		{"negative sample rate", "duration: 1\nsample_rate: -1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.src)); !errors.Is(err, ErrInvalidScript) {
				t.Fatalf("err = %v, want ErrInvalidScript", err)
			}
		})
	}

	if _, err := Parse([]byte("duration: [")); err == nil {
		t.Fatal("expected YAML syntax error")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ramp.yaml")
	if err := os.WriteFile(path, []byte(rampScript), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(doc.Params) != 2 || doc.Params[0].Name != "gain" || len(doc.Params[0].Events) != 2 {
		t.Fatalf("doc = %+v", doc)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestBuild(t *testing.T) {
	doc, err := Parse([]byte(rampScript))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	params, err := doc.Build(nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(params) != 2 {
		t.Fatalf("len(params) = %d, want 2", len(params))
	}
	if got := params[0].ValueAt(0.5); got != 4 {
		t.Fatalf("gain at 0.5 = %v, want 4", got)
	}
	if params[1].AutomationRate() != param.KRate {
		t.Fatalf("detune rate = %s", params[1].AutomationRate())
	}
	if err := params[1].SetAutomationRate(param.ARate); !errors.Is(err, param.ErrFixedAutomationRate) {
		t.Fatalf("err = %v, want ErrFixedAutomationRate", err)
	}
}

func TestApplyAllEventTypes(t *testing.T) {
	p, err := param.New(nil, param.DefaultDescriptor("freq", 0))
	if err != nil {
		t.Fatalf("param.New: %v", err)
	}

	err = Apply(p, []EventSpec{
		{Type: "setValue", Value: 1, Time: 0},
		{Type: "exponentialRamp", Value: 4, Time: 2},
		{Type: "setTarget", Value: 0, Time: 3, TimeConstant: 0.5},
		{Type: "setValueCurve", Values: []float32{1, 2}, Time: 4, Duration: 1},
		{Type: "linearRamp", Value: 0, Time: 6},
		{Type: "cancelScheduled", Time: 5.5},
		{Type: "cancelAndHold", Time: 4.5},
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	testutil.RequireNearlyEqual(t, "exp midpoint", float64(p.ValueAt(1)), 2, 1e-5)
	testutil.RequireNearlyEqual(t, "held curve", float64(p.ValueAt(10)), 1.5, 1e-6)
}

func TestApplyReportsFailingEvent(t *testing.T) {
	p, err := param.New(nil, param.DefaultDescriptor("gain", 1))
	if err != nil {
		t.Fatalf("param.New: %v", err)
	}

	err = Apply(p, []EventSpec{
		{Type: "setValueCurve", Values: []float32{0, 1}, Time: 0, Duration: 2},
		{Type: "setValue", Value: 1, Time: 1},
	})
	if !errors.Is(err, automation.ErrOverlap) || !errors.Is(err, param.ErrInvalidState) {
		t.Fatalf("err = %v, want ErrOverlap", err)
	}
	if want := "script: gain event 1 (setValue at 1): "; !strings.HasPrefix(err.Error(), want) {
		t.Fatalf("err = %q, want prefix %q", err, want)
	}
}

func TestRunRendersQuanta(t *testing.T) {
	doc, err := Parse([]byte(rampScript))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tracks, err := Run(doc)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(tracks) != 2 || tracks[0].Name != "gain" || tracks[1].Name != "detune" {
		t.Fatalf("tracks = %+v", tracks)
	}
	want := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 8, 8, 8}
	testutil.RequireSliceNearlyEqual(t, tracks[0].Samples, want, 1e-12)
	testutil.RequireSliceNearlyEqual(t, tracks[1].Samples, make([]float64, 12), 0)
}

func TestRendererTruncatesLastQuantum(t *testing.T) {
	clock := &param.ManualClock{}
	p, err := param.New(clock, param.DefaultDescriptor("gain", 0.5))
	if err != nil {
		t.Fatalf("param.New: %v", err)
	}

	r := NewRenderer(clock)
	tracks := r.Render([]*param.Param{p}, 0.01)
	if got, want := len(tracks[0].Samples), r.Config().Frames(0.01); got != want {
		t.Fatalf("len = %d, want %d", got, want)
	}
	testutil.RequireWithin(t, tracks[0].Samples, 0.5, 0.5)
	if got := clock.CurrentTime(); got != r.Config().FrameTime(int64(len(tracks[0].Samples))) {
		t.Fatalf("clock = %v, want end of render", got)
	}
}
