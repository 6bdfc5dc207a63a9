package core

// RenderQuantumSize is the number of frames the Web Audio rendering model
// processes per block.
const RenderQuantumSize = 128

// ProcessorConfig defines common rendering settings.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns a 48 kHz config with one render quantum per block.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 48000,
		BlockSize:  RenderQuantumSize,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the processing block size.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// FrameTime returns the context time in seconds of the given frame index.
func (c ProcessorConfig) FrameTime(frame int64) float64 {
	return float64(frame) / c.SampleRate
}

// Frames returns the number of whole frames needed to cover seconds.
func (c ProcessorConfig) Frames(seconds float64) int {
	if seconds <= 0 {
		return 0
	}
	n := int(seconds * c.SampleRate)
	if float64(n) < seconds*c.SampleRate {
		n++
	}
	return n
}
