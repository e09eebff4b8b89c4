//go:build rp2040 || rp2350

package main

import (
	"machine"

	"adcfft/core"
)

// clk_adc is driven from the 48MHz USB PLL on both chips.
const adcClockHz = 48000000

// clockPlan is what the pipeline requires of the clock tree.
var clockPlan = core.ClockPlan{
	SysClockHz: sysClockHz,
	ADCClockHz: adcClockHz,
}

// rpClocks reports the rates the runtime configured at boot.
type rpClocks struct{}

func (rpClocks) SysClockHz() uint32 { return machine.CPUFrequency() }
func (rpClocks) ADCClockHz() uint32 { return adcClockHz }

// InitClock registers the clock tree and the 1MHz hardware timer with core
func InitClock() {
	core.SetClockSource(rpClocks{})
	core.SetTickSource(GetHardwareTime)
}

// GetHardwareTime returns the low 32 bits of the microsecond counter
func GetHardwareTime() uint32 {
	return timerRawL.Get()
}
