package buffer

import "github.com/cwbudde/algo-audioparam/dsp/core"

// Buffer wraps a float64 slice with reuse-friendly semantics.
type Buffer struct {
	samples []float64
}

// New returns a zero-filled Buffer of the given length.
func New(length int) *Buffer {
	if length < 0 {
		length = 0
	}
	return &Buffer{samples: make([]float64, length)}
}

// Samples returns the underlying slice.
func (b *Buffer) Samples() []float64 {
	return b.samples
}

// Len returns the current number of samples.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Resize sets the length to n, reusing existing capacity when possible.
// The whole buffer is zeroed, so stale frames from a previous quantum never leak.
func (b *Buffer) Resize(n int) {
	b.samples = core.EnsureLen(b.samples, n)
	core.Fill(b.samples, 0)
}

// AppendTo appends the buffer contents to dst and returns the extended slice.
func (b *Buffer) AppendTo(dst []float64) []float64 {
	return append(dst, b.samples...)
}
