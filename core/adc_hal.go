package core

// ADCChannelID identifies a logical ADC channel. The target maps it to a pin
// and puts that pin into analog mode in ConfigureChannel.
type ADCChannelID uint8

// ADCConfig is the setup the core asks of the ADC peripheral.
type ADCConfig struct {
	// Resolution is the conversion bit depth. Drivers reject depths the
	// hardware cannot produce with ErrInvalidResolution.
	Resolution uint32
}

// ADCDMAMode selects how a DMA-fed conversion sequence runs.
type ADCDMAMode uint8

const (
	// ADCDMAOneShot converts until the bound DMA transfer has taken its
	// full count, then stops being serviced.
	ADCDMAOneShot ADCDMAMode = iota
	// ADCDMACircular keeps converting indefinitely. Not used by the pipeline.
	ADCDMACircular
)

// ADCDriver is the abstract ADC interface that core code uses.
type ADCDriver interface {
	// Init powers up the peripheral and sets its resolution.
	Init(cfg ADCConfig) error

	// ConfigureChannel places the channel's pin into analog input mode.
	ConfigureChannel(ch ADCChannelID) error

	// StartConversionDMA starts a conversion sequence on ch whose results
	// are pushed to the DMA request line instead of being read by the CPU.
	StartConversionDMA(ch ADCChannelID, mode ADCDMAMode) error

	// StopConversion halts the sequence and discards anything left queued.
	StopConversion()
}

// Global singleton used by core code.
var adcDriver ADCDriver

// SetADCDriver is called by target-specific code to register its driver.
func SetADCDriver(d ADCDriver) {
	adcDriver = d
}

// MustADC returns the configured driver or panics if missing.
func MustADC() ADCDriver {
	if adcDriver == nil {
		panic("ADC driver not configured")
	}
	return adcDriver
}
