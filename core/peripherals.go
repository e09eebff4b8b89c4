package core

// Peripherals bundles the drivers one acquisition run needs. It can be taken
// once per boot.
type Peripherals struct {
	ADC    ADCDriver
	DMA    DMAStream
	Delay  Delay
	Clocks ClockSource
}

var peripheralsTaken bool

// TakePeripherals hands out the registered drivers. The second call fails
// with ErrPeripheralsTaken. Panics if the ADC or DMA driver is missing.
func TakePeripherals() (*Peripherals, error) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if peripheralsTaken {
		return nil, ErrPeripheralsTaken
	}
	p := &Peripherals{
		ADC:    MustADC(),
		DMA:    MustDMA(),
		Delay:  delayDriver,
		Clocks: clockSource,
	}
	if p.Delay == nil {
		p.Delay = noDelay{}
	}
	peripheralsTaken = true
	return p, nil
}

// ResetPeripherals makes the drivers takeable again (for testing and host
// simulation; firmware never calls it).
func ResetPeripherals() {
	state := disableInterrupts()
	peripheralsTaken = false
	restoreInterrupts(state)
}

type noDelay struct{}

func (noDelay) DelayUS(uint32) {}
func (noDelay) DelayMS(uint32) {}
