package core

// SampleBuffer is a block of raw ADC conversions, one per slot.
type SampleBuffer [SampleCount]uint16

// sampleRegion is the one DMA-visible sample block. It is a package-level
// array so the linker places it in .bss; every SRAM bank on the RP2040 and
// RP2350 is reachable by the DMA engine. Nothing outside this file names it.
var (
	sampleRegion  SampleBuffer
	sampleClaimed bool
)

// RawSampleBuffer is the sample region before initialization. It only
// allows writes; a *SampleBuffer is produced by Finalize once every slot has
// been written.
type RawSampleBuffer struct {
	region  *SampleBuffer
	written [SampleCount / 32]uint32 // one bit per slot
	count   int
	spent   bool
}

// ClaimSampleBuffer returns the write-only handle to the sample region.
// Only the first call succeeds; later calls get ErrBufferClaimed.
func ClaimSampleBuffer() (*RawSampleBuffer, error) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if sampleClaimed {
		return nil, ErrBufferClaimed
	}
	sampleClaimed = true
	return &RawSampleBuffer{region: &sampleRegion}, nil
}

// Len returns the number of slots.
func (r *RawSampleBuffer) Len() int {
	return SampleCount
}

// Write stores v into slot i. The slot's previous content is never read.
func (r *RawSampleBuffer) Write(i int, v uint16) error {
	if r.spent {
		return ErrBufferFinalized
	}
	r.region[i] = v

	word, bit := i/32, uint32(1)<<(uint(i)%32)
	if r.written[word]&bit == 0 {
		r.written[word] |= bit
		r.count++
	}
	return nil
}

// Written reports whether slot i has been written.
func (r *RawSampleBuffer) Written(i int) bool {
	return r.written[i/32]&(uint32(1)<<(uint(i)%32)) != 0
}

// Remaining returns the number of slots not yet written.
func (r *RawSampleBuffer) Remaining() int {
	return SampleCount - r.count
}

// Finalize converts the handle into the initialized buffer. It fails with
// ErrBufferIncomplete while any slot is unwritten. After success the raw
// handle is spent.
func (r *RawSampleBuffer) Finalize() (*SampleBuffer, error) {
	if r.spent {
		return nil, ErrBufferFinalized
	}
	if r.count != SampleCount {
		return nil, ErrBufferIncomplete
	}
	r.spent = true
	buf := r.region
	r.region = nil
	return buf, nil
}

// InitSampleBuffer claims the sample region, zeroes it slot by slot in index
// order and returns the initialized buffer.
func InitSampleBuffer() (*SampleBuffer, error) {
	raw, err := ClaimSampleBuffer()
	if err != nil {
		return nil, err
	}
	for i := 0; i < raw.Len(); i++ {
		if err := raw.Write(i, 0); err != nil {
			return nil, err
		}
	}
	return raw.Finalize()
}

// ResetSampleBuffer releases the claim on the sample region (for testing and
// host simulation; firmware never calls it).
func ResetSampleBuffer() {
	state := disableInterrupts()
	sampleClaimed = false
	restoreInterrupts(state)
}
