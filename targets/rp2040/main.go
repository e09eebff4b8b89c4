//go:build rp2040 || rp2350

package main

import (
	"machine"
	"time"

	"adcfft/core"
)

const (
	// adcChannel is ADC0 on GPIO26.
	adcChannel core.ADCChannelID = 0

	// dmaChannel is reserved for the acquisition. TinyGo's machine package
	// does not claim DMA channels on these chips.
	dmaChannel = 0

	// startupDelay gives the host time to open the USB serial port before
	// the report starts.
	startupDelay = 2 * time.Second
)

func main() {
	InitUSB()
	core.InitLog(usbPrintln)
	time.Sleep(startupDelay)

	// Disable the watchdog so a previous boot's configuration cannot reset
	// us in the middle of the report.
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		core.Halt("watchdog", err, rpDelay{}, wfi)
	}

	InitClock()

	adc := NewRPAdcDriver()
	core.SetADCDriver(adc)
	core.SetDMAStream(NewRPDMAStream(dmaChannel, adc))
	core.SetDelay(rpDelay{})

	p, err := core.TakePeripherals()
	if err != nil {
		core.Halt("peripherals", err, rpDelay{}, wfi)
	}

	cfg := core.DefaultConfig()
	cfg.Channel = adcChannel
	cfg.Clocks = clockPlan

	if _, err := core.Run(p, cfg); err != nil {
		core.Halt("acquisition", err, p.Delay, wfi)
	}

	core.Idle(p.Delay, wfi)
}
