package core

// BurstMode is the number of beats a DMA stream moves per peripheral
// request.
type BurstMode uint8

const (
	BurstSingle BurstMode = 1
	Burst4      BurstMode = 4
	Burst8      BurstMode = 8
	Burst16     BurstMode = 16
)

// Beats returns the number of transfers per burst, or 0 for an unknown mode.
func (b BurstMode) Beats() int {
	switch b {
	case BurstSingle, Burst4, Burst8, Burst16:
		return int(b)
	default:
		return 0
	}
}

// TransferConfig describes a peripheral-to-memory DMA transfer. It is an
// immutable value: the builder methods return modified copies.
type TransferConfig struct {
	memoryIncrement bool
	peripheralBurst BurstMode
}

// NewTransferConfig returns the hardware reset configuration: fixed memory
// address, single-beat requests.
func NewTransferConfig() TransferConfig {
	return TransferConfig{peripheralBurst: BurstSingle}
}

// DefaultTransferConfig is the configuration the pipeline acquires with.
// The ADC FIFO can feed 4-beat bursts.
func DefaultTransferConfig() TransferConfig {
	return NewTransferConfig().
		MemoryIncrement(true).
		PeripheralBurst(Burst4)
}

// MemoryIncrement returns a copy with the memory pointer increment set.
func (c TransferConfig) MemoryIncrement(on bool) TransferConfig {
	c.memoryIncrement = on
	return c
}

// PeripheralBurst returns a copy with the peripheral burst set.
func (c TransferConfig) PeripheralBurst(b BurstMode) TransferConfig {
	c.peripheralBurst = b
	return c
}

// MemoryIncrementEnabled reports whether each beat advances the write address.
func (c TransferConfig) MemoryIncrementEnabled() bool {
	return c.memoryIncrement
}

// Burst returns the peripheral burst mode.
func (c TransferConfig) Burst() BurstMode {
	return c.peripheralBurst
}

// Validate checks the configuration against the largest burst the stream's
// peripheral can service.
func (c TransferConfig) Validate(maxBurst BurstMode) error {
	if c.peripheralBurst.Beats() == 0 {
		return ErrInvalidBurst
	}
	if c.peripheralBurst.Beats() > maxBurst.Beats() {
		return ErrInvalidBurst
	}
	if !c.memoryIncrement {
		// A one-shot block capture with a fixed destination would leave
		// every sample in slot 0.
		return ErrNoMemoryIncrement
	}
	return nil
}

// DMAStream is one DMA channel as seen by core code.
type DMAStream interface {
	// MaxBurst is the largest burst the bound peripheral can service.
	MaxBurst() BurstMode

	// Configure binds the stream as a one-shot, peripheral-to-memory
	// transfer from the ADC channel src into dst. Completion is tracked by
	// flag only; no interrupt handler is installed.
	Configure(cfg TransferConfig, src ADCChannelID, dst []uint16) error

	// Enable arms the stream. Data moves once the peripheral raises
	// requests.
	Enable() error

	// TransferComplete reads the stream's transfer-complete flag.
	TransferComplete() bool

	// Disable stops the stream and clears its flags.
	Disable()
}

var dmaStream DMAStream

// SetDMAStream is called by target-specific code to register the stream
// reserved for acquisitions.
func SetDMAStream(s DMAStream) {
	dmaStream = s
}

// MustDMA returns the registered stream or panics if missing.
func MustDMA() DMAStream {
	if dmaStream == nil {
		panic("DMA stream not configured")
	}
	return dmaStream
}
