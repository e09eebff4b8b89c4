//go:build rp2040 || rp2350

package main

import (
	"device/arm"
	"time"
)

// rpDelay implements core.Delay with the runtime's timer-backed sleep
type rpDelay struct{}

func (rpDelay) DelayUS(us uint32) {
	time.Sleep(time.Duration(us) * time.Microsecond)
}

func (rpDelay) DelayMS(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// wfi parks the core until the next interrupt
func wfi() {
	arm.Asm("wfi")
}
