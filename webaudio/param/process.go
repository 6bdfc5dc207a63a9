package param

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-audioparam/dsp/core"
	"github.com/cwbudde/algo-audioparam/webaudio/automation"
)

// Process writes the computed parameter value for the render quantum that
// starts at frame into dst. input, when non-nil, is the summed audio-rate
// modulation connected to the parameter and is added to the intrinsic value
// before clamping. For k-rate parameters the first frame of the quantum
// determines the value of the whole block.
//
// Process must be called from a single goroutine.
func (p *Param) Process(dst, input []float64, frame int64, sampleRate float64) {
	if len(dst) == 0 || sampleRate <= 0 {
		return
	}

	s := p.cur.Load()
	c := p.renderCursor(s)

	if s.rate == KRate {
		v := c.ValueAt(float64(frame) / sampleRate)
		if len(input) > 0 {
			v += input[0]
		}
		core.Fill(dst, p.computed(v))
		return
	}

	c.RenderFrames(dst, frame, sampleRate)
	if n := min(len(dst), len(input)); n > 0 {
		vecmath.AddBlockInPlace(dst[:n], input[:n])
	}
	for i, v := range dst {
		dst[i] = p.computed(v)
	}
}

func (p *Param) renderCursor(s *state) *automation.Cursor {
	if p.cursorState != s {
		p.cursor = s.timeline.Cursor(s.direct)
		p.cursorState = s
	}
	return p.cursor
}
