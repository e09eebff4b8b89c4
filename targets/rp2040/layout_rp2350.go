//go:build rp2350

package main

// RP2350 peripheral layout
const (
	adcBase   = 0x400a0000
	dmaBase   = 0x50000000
	timerBase = 0x400b0000 // TIMER0

	dreqADC = 48

	// DMA CHx_CTRL_TRIG fields; INCR_READ_REV/INCR_WRITE_REV shift the rest up
	ctrlEN          = 1 << 0
	ctrlDataSizePos = 2
	ctrlIncrWrite   = 1 << 6
	ctrlChainToPos  = 13
	ctrlTreqSelPos  = 17
	ctrlBusy        = 1 << 26

	sysClockHz = 150000000
)
