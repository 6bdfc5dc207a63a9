// Package zipper measures "zipper noise": the high-frequency energy a
// parameter signal picks up when it changes in steps instead of smoothly,
// as a k-rate parameter does once per render quantum.
package zipper

import (
	"errors"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-audioparam/dsp/core"
)

// ErrEmptySignal is returned when there is nothing to analyze.
var ErrEmptySignal = errors.New("zipper: empty signal")

// Config controls the analysis.
type Config struct {
	SampleRate float64
	// CutoffHz is the lower edge of the band counted as zipper noise.
	// Zero selects the render quantum rate, SampleRate/128.
	CutoffHz float64
	// FFTSize zero selects the next power of two above the signal length.
	FFTSize int
}

// Option mutates a Config.
type Option func(*Config)

// WithSampleRate sets the sample rate of the analyzed signal.
func WithSampleRate(sampleRate float64) Option {
	return func(c *Config) {
		if sampleRate > 0 {
			c.SampleRate = sampleRate
		}
	}
}

// WithCutoff sets the lower edge of the zipper band.
func WithCutoff(hz float64) Option {
	return func(c *Config) {
		if hz > 0 {
			c.CutoffHz = hz
		}
	}
}

// WithFFTSize fixes the transform size. Longer signals are truncated.
func WithFFTSize(n int) Option {
	return func(c *Config) {
		if n > 1 {
			c.FFTSize = n
		}
	}
}

// Result holds the band energies of one analysis.
type Result struct {
	FFTSize        int
	CutoffHz       float64
	TotalEnergy    float64
	HighBandEnergy float64
	// Ratio is HighBandEnergy/TotalEnergy, zero for a silent signal.
	Ratio float64
}

// Analyze returns the share of the Hann-windowed signal's energy that lies
// at or above the cutoff frequency.
func Analyze(signal []float64, opts ...Option) (Result, error) {
	if len(signal) == 0 {
		return Result{}, ErrEmptySignal
	}

	cfg := Config{SampleRate: core.DefaultProcessorConfig().SampleRate}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.CutoffHz <= 0 {
		cfg.CutoffHz = cfg.SampleRate / core.RenderQuantumSize
	}

	fftSize := cfg.FFTSize
	if fftSize <= 0 {
		fftSize = nextPowerOf2(len(signal))
	}
	n := min(len(signal), fftSize)

	windowed := make([]float64, n)
	copy(windowed, signal[:n])
	vecmath.MulBlockInPlace(windowed, hann(n))

	in := make([]complex128, fftSize)
	for i, v := range windowed {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Result{}, err
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return Result{}, err
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range bins {
		re[i], im[i] = real(out[i]), imag(out[i])
	}
	power := make([]float64, bins)
	vecmath.Power(power, re, im)

	binHz := cfg.SampleRate / float64(fftSize)
	cutoffBin := min(int(math.Ceil(cfg.CutoffHz/binHz)), bins)

	res := Result{FFTSize: fftSize, CutoffHz: cfg.CutoffHz}
	for i, p := range power {
		res.TotalEnergy += p
		if i >= cutoffBin {
			res.HighBandEnergy += p
		}
	}
	if res.TotalEnergy > 0 {
		res.Ratio = res.HighBandEnergy / res.TotalEnergy
	}
	return res, nil
}

// hann returns a symmetric Hann window of length n.
func hann(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return max(p, 2)
}
