//go:build rp2040 || rp2350

package main

import (
	"sync/atomic"
	"unsafe"

	"adcfft/core"
)

// dmaFence is touched with a sequentially consistent access once the
// completion flag is seen, so later buffer reads are not hoisted above it.
var dmaFence uint32

// RpDMAStream implements core.DMAStream on one DMA channel paced by the
// ADC's DREQ.
type RpDMAStream struct {
	channel uint8
	adc     *RpAdcDriver
	ctrl    uint32
}

// NewRPDMAStream returns a stream on channel ch serviced by adc.
func NewRPDMAStream(ch uint8, adc *RpAdcDriver) *RpDMAStream {
	return &RpDMAStream{channel: ch, adc: adc}
}

// MaxBurst is bounded by the ADC FIFO: DREQ cannot ask for more results
// than it holds.
func (s *RpDMAStream) MaxBurst() core.BurstMode {
	return core.BurstMode(adcFIFODepth)
}

// Configure programs addresses and count. The channel chains to itself
// (chaining disabled) and stays quiet on the IRQ lines; only the raw INTR
// bit is polled.
func (s *RpDMAStream) Configure(cfg core.TransferConfig, src core.ADCChannelID, dst []uint16) error {
	s.adc.setDREQThreshold(cfg.Burst().Beats())

	ctrl := uint32(dmaSizeHalfword)<<ctrlDataSizePos |
		uint32(s.channel)<<ctrlChainToPos |
		uint32(dreqADC)<<ctrlTreqSelPos
	if cfg.MemoryIncrementEnabled() {
		ctrl |= ctrlIncrWrite
	}
	s.ctrl = ctrl

	dmaReg(s.channel, dmaAl1Ctrl).Set(0)
	dmaReg(s.channel, dmaReadAddr).Set(uint32(adcFIFO))
	dmaReg(s.channel, dmaWriteAddr).Set(uint32(uintptr(unsafe.Pointer(&dst[0]))))
	dmaReg(s.channel, dmaTransCount).Set(uint32(len(dst)))
	return nil
}

// Enable clears a stale completion flag and arms the channel. It waits for
// DREQ, so nothing moves until the ADC starts converting.
func (s *RpDMAStream) Enable() error {
	dmaINTRReg.Set(1 << s.channel)
	dmaReg(s.channel, dmaCtrlTrig).Set(s.ctrl | ctrlEN)
	return nil
}

// TransferComplete reads the channel's raw interrupt flag.
func (s *RpDMAStream) TransferComplete() bool {
	if !dmaINTRReg.HasBits(1 << s.channel) {
		return false
	}
	atomic.AddUint32(&dmaFence, 1)
	return true
}

// Disable clears EN through the non-triggering alias, waits for the
// channel to go idle and acknowledges the flag.
func (s *RpDMAStream) Disable() {
	dmaReg(s.channel, dmaAl1Ctrl).Set(s.ctrl)
	for dmaReg(s.channel, dmaCtrlTrig).HasBits(ctrlBusy) {
	}
	dmaINTRReg.Set(1 << s.channel)
}
