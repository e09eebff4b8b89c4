package core

// Compile-time pipeline constants.
const (
	// SampleCount is the number of ADC conversions per acquisition and the
	// FFT length.
	SampleCount = 1024

	// SpectrumBins is the number of complex bins a real FFT of SampleCount
	// points yields in packed form.
	SpectrumBins = SampleCount / 2

	// ReportThrottleUS is the pause after each reported bin so the log
	// transport keeps up.
	ReportThrottleUS = 100

	// IdleIntervalMS is the sleep between wake-ups in the terminal idle loop.
	IdleIntervalMS = 1000

	// DefaultResolution is the ADC bit depth requested at setup.
	DefaultResolution = 12
)

// Config holds everything the pipeline needs that is not a driver.
// Targets start from DefaultConfig and override board-specific fields.
type Config struct {
	Channel    ADCChannelID   // ADC input sampled by the pipeline
	Resolution uint32         // ADC bit depth
	Clocks     ClockPlan      // Rates the ADC and DMA depend on
	Transfer   TransferConfig // DMA stream configuration
	MaxPolls   uint32         // Completion poll limit, 0 waits forever
}

// DefaultConfig returns the configuration used by the firmware: channel 0,
// 12-bit samples, memory increment with 4-beat peripheral bursts, and an
// unbounded completion wait.
func DefaultConfig() Config {
	return Config{
		Channel:    0,
		Resolution: DefaultResolution,
		Transfer:   DefaultTransferConfig(),
	}
}

// applyDefaults fills zero fields with defaults
func applyDefaults(cfg *Config) {
	if cfg.Resolution == 0 {
		cfg.Resolution = DefaultResolution
	}
	if cfg.Transfer == (TransferConfig{}) {
		cfg.Transfer = DefaultTransferConfig()
	}
}
