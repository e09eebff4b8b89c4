package core

import "errors"

// Setup errors. All of these are fatal on the device: the target logs them
// and halts before (or instead of) starting an acquisition.
var (
	ErrClockMismatch     = errors.New("clock rate not honored")
	ErrInvalidResolution = errors.New("unsupported ADC resolution")
	ErrInvalidBurst      = errors.New("invalid DMA peripheral burst")
	ErrNoMemoryIncrement = errors.New("DMA memory increment must be enabled")
	ErrPeripheralsTaken  = errors.New("peripherals already taken")
)

// Sample buffer lifecycle errors.
var (
	ErrBufferClaimed    = errors.New("sample buffer already claimed")
	ErrBufferIncomplete = errors.New("sample buffer has unwritten slots")
	ErrBufferFinalized  = errors.New("sample buffer already finalized")
)

// Transfer errors.
var (
	ErrTransferStarted    = errors.New("transfer already started")
	ErrTransferNotStarted = errors.New("transfer not started")
	ErrTransferIncomplete = errors.New("transfer not complete")
	ErrTransferTimeout    = errors.New("transfer timed out")
)
