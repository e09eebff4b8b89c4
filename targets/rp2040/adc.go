//go:build rp2040 || rp2350

package main

import (
	"errors"
	"machine"

	"adcfft/core"
)

var (
	errUnsupportedChannel = errors.New("unsupported ADC channel")
	errCircularMode       = errors.New("circular ADC DMA not supported")
)

// adcPins maps core.ADCChannelID to the analog pins ADC0-ADC3.
var adcPins = [...]machine.Pin{machine.ADC0, machine.ADC1, machine.ADC2, machine.ADC3}

// RpAdcDriver implements core.ADCDriver with the ADC feeding its FIFO and
// raising DMA requests instead of being read by the CPU.
type RpAdcDriver struct {
	configured [len(adcPins)]bool
	threshold  uint32 // FIFO level that raises DREQ
}

// NewRPAdcDriver constructs the driver but does not Init() it yet.
func NewRPAdcDriver() *RpAdcDriver {
	return &RpAdcDriver{threshold: 1}
}

// Init resets and enables the ADC. The converter is fixed at 12 bits.
func (d *RpAdcDriver) Init(cfg core.ADCConfig) error {
	if cfg.Resolution != 12 {
		return core.ErrInvalidResolution
	}
	machine.InitADC()

	// Free-running at full speed: 48MHz / 96 cycles = 500ksps
	adcDIVReg.Set(0)
	return nil
}

// ConfigureChannel puts the channel's pin into analog mode (digital input
// and pulls disabled).
func (d *RpAdcDriver) ConfigureChannel(ch core.ADCChannelID) error {
	if int(ch) >= len(adcPins) {
		return errUnsupportedChannel
	}
	if d.configured[ch] {
		return nil
	}
	adc := machine.ADC{Pin: adcPins[ch]}
	if err := adc.Configure(machine.ADCConfig{}); err != nil {
		return err
	}
	d.configured[ch] = true
	return nil
}

// setDREQThreshold makes the FIFO request service once beats results are
// queued. Called by the DMA stream when it is configured.
func (d *RpAdcDriver) setDREQThreshold(beats int) {
	d.threshold = uint32(beats)
}

// StartConversionDMA selects ch and starts free-running conversions into
// the FIFO. The DMA transfer count bounds how many results are taken.
func (d *RpAdcDriver) StartConversionDMA(ch core.ADCChannelID, mode core.ADCDMAMode) error {
	if mode != core.ADCDMAOneShot {
		return errCircularMode
	}
	if int(ch) >= len(adcPins) || !d.configured[ch] {
		return errUnsupportedChannel
	}

	adcCSReg.ReplaceBits(uint32(ch), adcCSAinselMsk, adcCSAinselPos)
	drainFIFO()

	// FIFO on, 12-bit results (no SHIFT), DREQ at the burst threshold;
	// writing ones clears stale UNDER/OVER flags.
	adcFCSReg.Set(fcsEn | fcsDreqEn | fcsUnder | fcsOver |
		d.threshold<<fcsThreshPos)

	adcCSReg.SetBits(adcCSEn | adcCSStartMany)
	return nil
}

// StopConversion stops free-running mode, waits for the conversion in
// progress and drops any results the DMA did not take.
func (d *RpAdcDriver) StopConversion() {
	adcCSReg.ClearBits(adcCSStartMany)
	if adcCSReg.HasBits(adcCSEn) {
		for !adcCSReg.HasBits(adcCSReady) {
		}
	}
	adcFCSReg.Set(0)
	drainFIFO()
}

func drainFIFO() {
	for (adcFCSReg.Get()>>fcsLevelPos)&fcsLevelMsk != 0 {
		adcFIFOReg.Get()
	}
}
