package core

// noCopy makes go vet's copylocks check flag copies of a Transfer.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// TransferState tracks a Transfer through its one-shot life.
type TransferState uint8

const (
	TransferIdle     TransferState = iota // configured, stream not enabled
	TransferRunning                       // stream enabled, conversions running
	TransferDone                          // completion flag observed
	TransferReleased                      // buffer handed back, handle spent
	TransferAborted                       // stopped before completion
)

// Transfer is an in-flight (or completed) one-shot DMA transfer from an ADC
// channel into a SampleBuffer. The transfer owns the buffer from InitTransfer
// until Release. Always use it through a pointer.
type Transfer struct {
	noCopy noCopy

	stream  DMAStream
	adc     ADCDriver
	channel ADCChannelID
	buf     *SampleBuffer
	state   TransferState
	polls   uint32
}

// InitTransfer validates cfg against the stream and binds the stream to buf
// (destination) and channel ch (source). Nothing is started: a rejected
// configuration never reaches the ADC.
func InitTransfer(stream DMAStream, adc ADCDriver, ch ADCChannelID, buf *SampleBuffer, cfg TransferConfig) (*Transfer, error) {
	if err := cfg.Validate(stream.MaxBurst()); err != nil {
		return nil, err
	}
	if err := stream.Configure(cfg, ch, buf[:]); err != nil {
		return nil, err
	}
	return &Transfer{
		stream:  stream,
		adc:     adc,
		channel: ch,
		buf:     buf,
	}, nil
}

// Start enables the stream and then runs trigger, which must start the
// conversions feeding it. trigger runs before Start returns.
func (t *Transfer) Start(trigger func(adc ADCDriver, ch ADCChannelID) error) error {
	if t.state != TransferIdle {
		return ErrTransferStarted
	}
	if err := t.stream.Enable(); err != nil {
		return err
	}
	t.state = TransferRunning
	RecordTiming(EvtTransferStart, uint32(t.channel))

	if trigger != nil {
		if err := trigger(t.adc, t.channel); err != nil {
			t.Abort()
			return err
		}
	}
	return nil
}

// TransferComplete reads the completion flag.
func (t *Transfer) TransferComplete() bool {
	if t.state == TransferDone {
		return true
	}
	if t.state != TransferRunning {
		return false
	}
	return t.stream.TransferComplete()
}

// Wait busy-polls the completion flag. With maxPolls 0 it polls until the
// flag is set, however long that takes. Otherwise it gives up after maxPolls
// unsuccessful reads with ErrTransferTimeout and leaves the transfer running.
func (t *Transfer) Wait(maxPolls uint32) error {
	switch t.state {
	case TransferDone:
		return nil
	case TransferRunning:
	default:
		return ErrTransferNotStarted
	}

	for !t.stream.TransferComplete() {
		t.polls++
		if maxPolls != 0 && t.polls >= maxPolls {
			RecordTiming(EvtTransferTimeout, t.polls)
			return ErrTransferTimeout
		}
	}
	t.state = TransferDone
	RecordTiming(EvtTransferDone, t.polls)
	return nil
}

// Polls returns the number of flag reads that found the transfer running.
func (t *Transfer) Polls() uint32 {
	return t.polls
}

// State returns the transfer state.
func (t *Transfer) State() TransferState {
	return t.state
}

// Release stops the conversion sequence and hands the filled buffer back.
// It fails with ErrTransferIncomplete unless Wait observed completion. The
// transfer is unusable afterwards.
func (t *Transfer) Release() (*SampleBuffer, error) {
	if t.state != TransferDone {
		return nil, ErrTransferIncomplete
	}
	t.adc.StopConversion()
	t.stream.Disable()

	buf := t.buf
	t.buf = nil
	t.state = TransferReleased
	return buf, nil
}

// Abort stops the stream and the conversions of a transfer that will not be
// waited for. The buffer stays with the transfer.
func (t *Transfer) Abort() {
	if t.state != TransferRunning {
		return
	}
	t.adc.StopConversion()
	t.stream.Disable()
	t.state = TransferAborted
}

// AcquireConfig parameterizes Acquire.
type AcquireConfig struct {
	Channel  ADCChannelID
	Transfer TransferConfig
	MaxPolls uint32 // 0 waits forever
}

// Acquire fills buf with SampleCount conversions from the configured channel
// in one DMA transfer and returns it once the transfer is complete.
func Acquire(p *Peripherals, buf *SampleBuffer, cfg AcquireConfig) (*SampleBuffer, error) {
	xfer, err := InitTransfer(p.DMA, p.ADC, cfg.Channel, buf, cfg.Transfer)
	if err != nil {
		return nil, err
	}

	Info("About to start transfer...")
	if err := xfer.Start(startOneShot); err != nil {
		return nil, err
	}

	if err := xfer.Wait(cfg.MaxPolls); err != nil {
		xfer.Abort()
		return nil, err
	}
	Debug("Transfer complete after " + utoa(xfer.Polls()) + " polls")

	return xfer.Release()
}

// startOneShot runs right after the stream is enabled
func startOneShot(adc ADCDriver, ch ADCChannelID) error {
	return adc.StartConversionDMA(ch, ADCDMAOneShot)
}
