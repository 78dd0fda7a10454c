package core

// ProcessorConfig holds settings shared by signal generators and renderers.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
}

// ProcessorOption adjusts a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig is 48 kHz in blocks of 256 frames.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{SampleRate: 48000, BlockSize: 256}
}

// WithSampleRate sets the sample rate. Values <= 0 are ignored.
func WithSampleRate(hz float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if hz > 0 {
			cfg.SampleRate = hz
		}
	}
}

// WithBlockSize sets the block size in frames. Values <= 0 are ignored.
func WithBlockSize(frames int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if frames > 0 {
			cfg.BlockSize = frames
		}
	}
}

// ApplyProcessorOptions applies opts to DefaultProcessorConfig. Nil options
// are skipped.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
