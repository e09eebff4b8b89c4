//go:build rp2040

package main

// RP2040 peripheral layout
const (
	adcBase   = 0x4004c000
	dmaBase   = 0x50000000
	timerBase = 0x40054000

	dreqADC = 36

	// DMA CHx_CTRL_TRIG fields
	ctrlEN          = 1 << 0
	ctrlDataSizePos = 2
	ctrlIncrWrite   = 1 << 5
	ctrlChainToPos  = 11
	ctrlTreqSelPos  = 15
	ctrlBusy        = 1 << 24

	sysClockHz = 125000000
)
