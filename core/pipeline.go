package core

// Run performs the whole acquisition once: initialize the sample buffer,
// check clocks, set up the ADC, acquire, analyze and report. The caller
// moves to Idle on success and Halt on error.
func Run(p *Peripherals, cfg Config) (*Spectrum, error) {
	applyDefaults(&cfg)

	buf, err := InitSampleBuffer()
	if err != nil {
		return nil, err
	}
	RecordTiming(EvtBufferReady, SampleCount)

	Info("Setup clocks...")
	if p.Clocks != nil {
		if err := VerifyClocks(cfg.Clocks, p.Clocks); err != nil {
			return nil, err
		}
	}

	Info("Setup ADC...")
	if err := p.ADC.Init(ADCConfig{Resolution: cfg.Resolution}); err != nil {
		return nil, err
	}
	if err := p.ADC.ConfigureChannel(cfg.Channel); err != nil {
		return nil, err
	}

	buf, err = Acquire(p, buf, AcquireConfig{
		Channel:  cfg.Channel,
		Transfer: cfg.Transfer,
		MaxPolls: cfg.MaxPolls,
	})
	if err != nil {
		return nil, err
	}

	spectrum := NewAnalyzer().Analyze(buf)
	Info("Average: " + ftoa(spectrum.Mean))

	Report(spectrum, p.Delay)
	return spectrum, nil
}
