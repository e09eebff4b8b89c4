//go:build rp2040 || rp2350

package main

import (
	"runtime/volatile"
	"unsafe"
)

// ADC registers
const (
	adcCS   = adcBase + 0x00
	adcFCS  = adcBase + 0x08
	adcFIFO = adcBase + 0x0c
	adcDIV  = adcBase + 0x10

	adcCSEn        = 1 << 0
	adcCSStartMany = 1 << 3
	adcCSReady     = 1 << 8
	adcCSAinselPos = 12
	adcCSAinselMsk = 0xf

	fcsEn        = 1 << 0
	fcsDreqEn    = 1 << 3
	fcsUnder     = 1 << 10
	fcsOver      = 1 << 11
	fcsLevelPos  = 16
	fcsLevelMsk  = 0xf
	fcsThreshPos = 24

	// adcFIFODepth is the number of results the ADC FIFO holds, so the
	// largest burst a DMA request can be raised for.
	adcFIFODepth = 4
)

// DMA registers
const (
	dmaChannelStride = 0x40
	dmaReadAddr      = 0x00
	dmaWriteAddr     = 0x04
	dmaTransCount    = 0x08
	dmaCtrlTrig      = 0x0c
	dmaAl1Ctrl       = 0x10 // CTRL alias that does not trigger
	dmaINTR          = dmaBase + 0x400

	dmaSizeHalfword = 1
)

// Timer registers
const (
	timerRAWL = timerBase + 0x28 // Raw timer low word, no latching
)

func reg(addr uintptr) *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Pointer(addr))
}

var (
	adcCSReg   = reg(adcCS)
	adcFCSReg  = reg(adcFCS)
	adcFIFOReg = reg(adcFIFO)
	adcDIVReg  = reg(adcDIV)
	dmaINTRReg = reg(dmaINTR)
	timerRawL  = reg(timerRAWL)
)

// dmaReg returns register off of DMA channel ch
func dmaReg(ch uint8, off uintptr) *volatile.Register32 {
	return reg(dmaBase + uintptr(ch)*dmaChannelStride + off)
}
