package script

import (
	"github.com/cwbudde/algo-audioparam/dsp/buffer"
	"github.com/cwbudde/algo-audioparam/dsp/core"
	"github.com/cwbudde/algo-audioparam/webaudio/param"
)

// Track is the rendered output of one parameter.
type Track struct {
	Name    string
	Samples []float64
}

// Renderer drives parameters the way an offline audio context does:
// one quantum at a time, with the context clock set to the first frame of
// the quantum before it is processed.
type Renderer struct {
	cfg   core.ProcessorConfig
	clock *param.ManualClock
	pool  *buffer.Pool
}

// NewRenderer returns a Renderer that advances clock. clock should be the
// one the rendered parameters were built with.
func NewRenderer(clock *param.ManualClock, opts ...core.ProcessorOption) *Renderer {
	if clock == nil {
		clock = &param.ManualClock{}
	}
	return &Renderer{
		cfg:   core.ApplyProcessorOptions(opts...),
		clock: clock,
		pool:  buffer.NewPool(),
	}
}

// Config returns the processing configuration.
func (r *Renderer) Config() core.ProcessorConfig { return r.cfg }

// Render processes seconds of audio time and returns one track per param.
// The final quantum is truncated to the requested length.
func (r *Renderer) Render(params []*param.Param, seconds float64) []Track {
	total := r.cfg.Frames(seconds)
	tracks := make([]Track, len(params))
	for i, p := range params {
		tracks[i] = Track{Name: p.Name(), Samples: make([]float64, 0, total)}
	}

	for frame := 0; frame < total; frame += r.cfg.BlockSize {
		n := min(r.cfg.BlockSize, total-frame)
		r.clock.Set(r.cfg.FrameTime(int64(frame)))

		for i, p := range params {
			buf := r.pool.Get(n)
			p.Process(buf.Samples(), nil, int64(frame), r.cfg.SampleRate)
			tracks[i].Samples = buf.AppendTo(tracks[i].Samples)
			r.pool.Put(buf)
		}
	}
	r.clock.Set(r.cfg.FrameTime(int64(total)))
	return tracks
}

// Run builds the document's parameters on a fresh clock and renders them
// for the document's duration.
func Run(doc *Document, opts ...param.Option) ([]Track, error) {
	clock := &param.ManualClock{}
	params, err := doc.Build(clock, opts...)
	if err != nil {
		return nil, err
	}
	cfg := doc.Config()
	r := NewRenderer(clock, core.WithSampleRate(cfg.SampleRate), core.WithBlockSize(cfg.BlockSize))
	return r.Render(params, doc.Duration), nil
}
