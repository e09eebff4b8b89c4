// Package sim provides host implementations of the core peripheral drivers.
//
// The simulated DMA stream moves one peripheral burst into the destination
// each time its completion flag is polled, so a caller that stops polling
// early sees a partially filled buffer. Nothing here sleeps or spawns
// goroutines; runs are deterministic.
package sim

import (
	"errors"
	"math"

	"adcfft/core"
)

// MaxChannel is the highest channel the simulated ADC accepts.
const MaxChannel core.ADCChannelID = 3

var (
	ErrUnknownChannel = errors.New("sim: unsupported ADC channel")
	ErrNotConfigured  = errors.New("sim: channel not configured")
	ErrNotInitialized = errors.New("sim: ADC not initialized")
	ErrNoDestination  = errors.New("sim: DMA destination is empty")
)

// Waveform returns the raw conversion result for sample n.
type Waveform func(n int) uint16

// Constant returns v for every sample.
func Constant(v uint16) Waveform {
	return func(int) uint16 { return v }
}

// Alternating returns lo for even samples and hi for odd ones.
func Alternating(lo, hi uint16) Waveform {
	return func(n int) uint16 {
		if n%2 == 0 {
			return lo
		}
		return hi
	}
}

// Sine returns a full-scale sinusoid for the given bit depth that completes
// cycles periods over core.SampleCount samples.
func Sine(cycles float64, resolution uint32) Waveform {
	half := fullScale(resolution) / 2
	return func(n int) uint16 {
		phase := 2 * math.Pi * cycles * float64(n) / core.SampleCount
		return uint16(math.Round(half + half*math.Sin(phase)))
	}
}

// Square returns a full-scale square wave with cycles periods per block.
func Square(cycles float64, resolution uint32) Waveform {
	top := uint16(fullScale(resolution))
	return func(n int) uint16 {
		pos := math.Mod(cycles*float64(n)/core.SampleCount, 1)
		if pos < 0.5 {
			return top
		}
		return 0
	}
}

func fullScale(resolution uint32) float64 {
	return float64(uint32(1)<<resolution - 1)
}

// ADC simulates a single-converter ADC with a DMA request output.
type ADC struct {
	wave       Waveform
	resolution uint32
	configured [MaxChannel + 1]bool
	running    bool
	channel    core.ADCChannelID
	mode       core.ADCDMAMode

	// Conversions counts results taken by the DMA stream.
	Conversions int
}

// NewADC returns an ADC whose every channel reads w.
func NewADC(w Waveform) *ADC {
	return &ADC{wave: w}
}

func (a *ADC) Init(cfg core.ADCConfig) error {
	if cfg.Resolution < 8 || cfg.Resolution > 16 {
		return core.ErrInvalidResolution
	}
	a.resolution = cfg.Resolution
	return nil
}

func (a *ADC) ConfigureChannel(ch core.ADCChannelID) error {
	if ch > MaxChannel {
		return ErrUnknownChannel
	}
	a.configured[ch] = true
	return nil
}

func (a *ADC) StartConversionDMA(ch core.ADCChannelID, mode core.ADCDMAMode) error {
	if a.resolution == 0 {
		return ErrNotInitialized
	}
	if ch > MaxChannel {
		return ErrUnknownChannel
	}
	if !a.configured[ch] {
		return ErrNotConfigured
	}
	a.channel = ch
	a.mode = mode
	a.running = true
	return nil
}

func (a *ADC) StopConversion() {
	a.running = false
}

// Running reports whether a conversion sequence is active.
func (a *ADC) Running() bool {
	return a.running
}

// convert produces the next result, clipped to the configured resolution.
func (a *ADC) convert() uint16 {
	v := a.wave(a.Conversions)
	a.Conversions++
	if top := uint16(fullScale(a.resolution)); v > top {
		v = top
	}
	return v
}

// DMA simulates one DMA stream serviced by an ADC.
type DMA struct {
	source   *ADC
	maxBurst core.BurstMode
	cfg      core.TransferConfig
	channel  core.ADCChannelID
	dst      []uint16
	next     int
	enabled  bool
	complete bool

	// Stalled stops data movement, as if requests were never raised.
	Stalled bool
	// Polls counts completion flag reads.
	Polls int
}

// NewDMA returns a stream fed by source. The ADC FIFO is four entries deep,
// so bursts above Burst4 are rejected.
func NewDMA(source *ADC) *DMA {
	return &DMA{source: source, maxBurst: core.Burst4}
}

func (d *DMA) MaxBurst() core.BurstMode {
	return d.maxBurst
}

func (d *DMA) Configure(cfg core.TransferConfig, src core.ADCChannelID, dst []uint16) error {
	if len(dst) == 0 {
		return ErrNoDestination
	}
	d.cfg = cfg
	d.channel = src
	d.dst = dst
	d.next = 0
	d.complete = false
	return nil
}

func (d *DMA) Enable() error {
	d.enabled = true
	return nil
}

// TransferComplete moves one burst if the ADC is converting and reports the
// flag as it stood before the move.
func (d *DMA) TransferComplete() bool {
	d.Polls++
	if d.complete {
		return true
	}
	if !d.enabled || d.Stalled || !d.source.running || d.source.channel != d.channel {
		return false
	}

	for beat := 0; beat < d.cfg.Burst().Beats() && d.next < len(d.dst); beat++ {
		d.dst[d.next] = d.source.convert()
		if d.cfg.MemoryIncrementEnabled() {
			d.next++
		}
	}
	if d.next == len(d.dst) {
		d.complete = true
	}
	return false
}

func (d *DMA) Disable() {
	d.enabled = false
}

// Written returns how many destination slots the stream has filled.
func (d *DMA) Written() int {
	return d.next
}

// Delay records requested waits without sleeping.
type Delay struct {
	TotalUS uint64
	TotalMS uint64
	Calls   int
}

func (d *Delay) DelayUS(us uint32) {
	d.TotalUS += uint64(us)
	d.Calls++
}

func (d *Delay) DelayMS(ms uint32) {
	d.TotalMS += uint64(ms)
	d.Calls++
}

// Clocks reports fixed clock rates.
type Clocks struct {
	Sys uint32
	ADC uint32
}

func (c Clocks) SysClockHz() uint32 { return c.Sys }
func (c Clocks) ADCClockHz() uint32 { return c.ADC }

// Board wires a simulated ADC, DMA stream, delay and clock tree together.
type Board struct {
	ADC    *ADC
	DMA    *DMA
	Delay  *Delay
	Clocks Clocks
}

// RP2040 clock rates, used as the simulated board's defaults.
const (
	DefaultSysClockHz = 125000000
	DefaultADCClockHz = 48000000
)

// NewBoard returns a board whose ADC reads w.
func NewBoard(w Waveform) *Board {
	adc := NewADC(w)
	return &Board{
		ADC:    adc,
		DMA:    NewDMA(adc),
		Delay:  &Delay{},
		Clocks: Clocks{Sys: DefaultSysClockHz, ADC: DefaultADCClockHz},
	}
}

// Register installs the board's drivers as the core's peripherals and
// resets the one-shot claims so core.TakePeripherals and
// core.InitSampleBuffer succeed again.
func (b *Board) Register() {
	core.SetADCDriver(b.ADC)
	core.SetDMAStream(b.DMA)
	core.SetDelay(b.Delay)
	core.SetClockSource(b.Clocks)
	core.ResetPeripherals()
	core.ResetSampleBuffer()
}

// Plan returns the clock plan the board satisfies.
func (b *Board) Plan() core.ClockPlan {
	return core.ClockPlan{SysClockHz: b.Clocks.Sys, ADCClockHz: b.Clocks.ADC}
}
