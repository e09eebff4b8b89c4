package core

// ClockPlan lists the rates the pipeline depends on. Zero means the rate is
// not checked.
type ClockPlan struct {
	SysClockHz uint32 // CPU and bus clock, also clocks the DMA engine
	ADCClockHz uint32 // ADC conversion clock
}

// ClockSource reports the rates the clock tree actually settled on.
type ClockSource interface {
	SysClockHz() uint32
	ADCClockHz() uint32
}

var clockSource ClockSource

// SetClockSource is called by target-specific code after it has frozen its
// clock configuration.
func SetClockSource(c ClockSource) {
	clockSource = c
}

// VerifyClocks fails with ErrClockMismatch if a planned rate was not reached.
func VerifyClocks(plan ClockPlan, src ClockSource) error {
	if plan.SysClockHz != 0 && src.SysClockHz() != plan.SysClockHz {
		return ErrClockMismatch
	}
	if plan.ADCClockHz != 0 && src.ADCClockHz() != plan.ADCClockHz {
		return ErrClockMismatch
	}
	return nil
}
