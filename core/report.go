package core

// Report writes one "<index>,<magnitude>" line per bin, pausing
// ReportThrottleUS after each so the log transport is not flooded.
func Report(s *Spectrum, d Delay) {
	for i := 0; i < SpectrumBins; i++ {
		Info(itoa(i) + "," + ftoa(s.Magnitude(i)))
		d.DelayUS(ReportThrottleUS)
	}
	RecordTiming(EvtReported, SpectrumBins)
}

// Idle is the terminal state: sleep, then wait for an interrupt, forever.
// wait may be nil on hosts without a low-power wait.
func Idle(d Delay, wait func()) {
	for {
		idleOnce(d, wait)
	}
}

func idleOnce(d Delay, wait func()) {
	d.DelayMS(IdleIntervalMS)
	if wait != nil {
		wait()
	}
}

// Halt logs a fatal error with the timing ring and parks in the idle loop.
func Halt(stage string, err error, d Delay, wait func()) {
	RecordTiming(EvtFault, 0)
	Info("FATAL: " + stage + ": " + err.Error())
	DumpTimingRing()
	if d == nil {
		d = noDelay{}
	}
	Idle(d, wait)
}
