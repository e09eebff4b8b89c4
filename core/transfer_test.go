package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStream completes after a fixed number of flag reads
type mockStream struct {
	maxBurst      BurstMode
	completeAfter int
	reads         int

	configured bool
	enabled    bool
	disabled   bool
	cfg        TransferConfig
	dst        []uint16
}

func (s *mockStream) MaxBurst() BurstMode { return s.maxBurst }

func (s *mockStream) Configure(cfg TransferConfig, src ADCChannelID, dst []uint16) error {
	s.configured = true
	s.cfg = cfg
	s.dst = dst
	return nil
}

func (s *mockStream) Enable() error {
	s.enabled = true
	return nil
}

func (s *mockStream) TransferComplete() bool {
	s.reads++
	return s.reads > s.completeAfter
}

func (s *mockStream) Disable() {
	s.enabled = false
	s.disabled = true
}

// mockADC records conversion control calls
type mockADC struct {
	startErr  error
	started   int
	stopped   int
	streamOn  bool // stream state seen when conversions started
	stream    *mockStream
	lastMode  ADCDMAMode
	lastCh    ADCChannelID
	initCfg   ADCConfig
	channelOK map[ADCChannelID]bool
}

func (a *mockADC) Init(cfg ADCConfig) error {
	a.initCfg = cfg
	return nil
}

func (a *mockADC) ConfigureChannel(ch ADCChannelID) error {
	if a.channelOK == nil {
		a.channelOK = make(map[ADCChannelID]bool)
	}
	a.channelOK[ch] = true
	return nil
}

func (a *mockADC) StartConversionDMA(ch ADCChannelID, mode ADCDMAMode) error {
	if a.startErr != nil {
		return a.startErr
	}
	a.started++
	a.lastCh = ch
	a.lastMode = mode
	if a.stream != nil {
		a.streamOn = a.stream.enabled
	}
	return nil
}

func (a *mockADC) StopConversion() {
	a.stopped++
}

func newMocks(completeAfter int) (*mockStream, *mockADC) {
	stream := &mockStream{maxBurst: Burst4, completeAfter: completeAfter}
	return stream, &mockADC{stream: stream}
}

func TestTransferConfigValidate(t *testing.T) {
	testCases := []struct {
		name string
		cfg  TransferConfig
		max  BurstMode
		want error
	}{
		{"default", DefaultTransferConfig(), Burst4, nil},
		{"single beat", NewTransferConfig().MemoryIncrement(true), Burst4, nil},
		{"burst above FIFO depth", DefaultTransferConfig().PeripheralBurst(Burst8), Burst4, ErrInvalidBurst},
		{"burst 16 on deep FIFO", DefaultTransferConfig().PeripheralBurst(Burst16), Burst16, nil},
		{"unknown burst", DefaultTransferConfig().PeripheralBurst(BurstMode(3)), Burst16, ErrInvalidBurst},
		{"zero value", TransferConfig{}, Burst4, ErrInvalidBurst},
		{"reset config", NewTransferConfig(), Burst4, ErrNoMemoryIncrement},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate(tc.max)
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func TestTransferConfigBuilderCopies(t *testing.T) {
	base := NewTransferConfig()
	derived := base.MemoryIncrement(true).PeripheralBurst(Burst4)

	assert.False(t, base.MemoryIncrementEnabled())
	assert.Equal(t, BurstSingle, base.Burst())
	assert.True(t, derived.MemoryIncrementEnabled())
	assert.Equal(t, Burst4, derived.Burst())
}

func TestInitTransferRejectsBadBurstBeforeHardware(t *testing.T) {
	stream, adc := newMocks(0)
	var buf SampleBuffer

	xfer, err := InitTransfer(stream, adc, 0, &buf, DefaultTransferConfig().PeripheralBurst(Burst16))

	assert.ErrorIs(t, err, ErrInvalidBurst)
	assert.Nil(t, xfer)
	assert.False(t, stream.configured, "stream must not be configured")
	assert.Zero(t, adc.started, "no conversion may start")
}

func TestTransferStartTriggersAfterEnable(t *testing.T) {
	stream, adc := newMocks(0)
	var buf SampleBuffer

	xfer, err := InitTransfer(stream, adc, 2, &buf, DefaultTransferConfig())
	require.NoError(t, err)
	assert.Len(t, stream.dst, SampleCount)

	require.NoError(t, xfer.Start(startOneShot))

	assert.Equal(t, 1, adc.started)
	assert.True(t, adc.streamOn, "conversions must start after the stream is enabled")
	assert.Equal(t, ADCChannelID(2), adc.lastCh)
	assert.Equal(t, ADCDMAOneShot, adc.lastMode)
	assert.Equal(t, TransferRunning, xfer.State())

	assert.ErrorIs(t, xfer.Start(startOneShot), ErrTransferStarted)
	assert.Equal(t, 1, adc.started)
}

func TestTransferTriggerFailureAborts(t *testing.T) {
	stream, adc := newMocks(0)
	adc.startErr = errors.New("adc busy")
	var buf SampleBuffer

	xfer, err := InitTransfer(stream, adc, 0, &buf, DefaultTransferConfig())
	require.NoError(t, err)

	err = xfer.Start(startOneShot)
	assert.EqualError(t, err, "adc busy")
	assert.Equal(t, TransferAborted, xfer.State())
	assert.True(t, stream.disabled)
	assert.ErrorIs(t, xfer.Wait(0), ErrTransferNotStarted)
}

func TestTransferWaitDoesNotReturnEarly(t *testing.T) {
	for _, completeAfter := range []int{0, 1, 50, 10000} {
		stream, adc := newMocks(completeAfter)
		var buf SampleBuffer

		xfer, err := InitTransfer(stream, adc, 0, &buf, DefaultTransferConfig())
		require.NoError(t, err)
		require.NoError(t, xfer.Start(startOneShot))

		require.NoError(t, xfer.Wait(0))

		assert.Equal(t, completeAfter+1, stream.reads, "flag must be read until it is set")
		assert.Equal(t, uint32(completeAfter), xfer.Polls())
		assert.True(t, xfer.TransferComplete())
		assert.Equal(t, TransferDone, xfer.State())
	}
}

func TestTransferWaitTimeout(t *testing.T) {
	stream, adc := newMocks(100)
	var buf SampleBuffer

	xfer, err := InitTransfer(stream, adc, 0, &buf, DefaultTransferConfig())
	require.NoError(t, err)
	require.NoError(t, xfer.Start(startOneShot))

	assert.ErrorIs(t, xfer.Wait(10), ErrTransferTimeout)
	assert.Equal(t, uint32(10), xfer.Polls())
	assert.Equal(t, TransferRunning, xfer.State())

	released, err := xfer.Release()
	assert.ErrorIs(t, err, ErrTransferIncomplete)
	assert.Nil(t, released)

	// A larger budget lets the same transfer finish.
	require.NoError(t, xfer.Wait(1000))
	assert.Equal(t, uint32(100), xfer.Polls())
}

func TestTransferWaitBeforeStart(t *testing.T) {
	stream, adc := newMocks(0)
	var buf SampleBuffer

	xfer, err := InitTransfer(stream, adc, 0, &buf, DefaultTransferConfig())
	require.NoError(t, err)

	assert.ErrorIs(t, xfer.Wait(0), ErrTransferNotStarted)
	assert.False(t, xfer.TransferComplete())
	assert.Zero(t, stream.reads)
}

func TestTransferRelease(t *testing.T) {
	stream, adc := newMocks(3)
	var buf SampleBuffer

	xfer, err := InitTransfer(stream, adc, 0, &buf, DefaultTransferConfig())
	require.NoError(t, err)
	require.NoError(t, xfer.Start(startOneShot))
	require.NoError(t, xfer.Wait(0))

	got, err := xfer.Release()
	require.NoError(t, err)
	assert.Same(t, &buf, got)
	assert.Equal(t, 1, adc.stopped)
	assert.True(t, stream.disabled)
	assert.Equal(t, TransferReleased, xfer.State())

	_, err = xfer.Release()
	assert.ErrorIs(t, err, ErrTransferIncomplete)
}

func TestAcquireTimeoutStopsConversions(t *testing.T) {
	stream, adc := newMocks(1 << 20)
	var buf SampleBuffer
	p := &Peripherals{ADC: adc, DMA: stream, Delay: noDelay{}}

	got, err := Acquire(p, &buf, AcquireConfig{Transfer: DefaultTransferConfig(), MaxPolls: 64})

	assert.ErrorIs(t, err, ErrTransferTimeout)
	assert.Nil(t, got)
	assert.Equal(t, 1, adc.stopped)
	assert.False(t, stream.enabled)
}
