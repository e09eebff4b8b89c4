//go:build !tinygo

package core

// State stands in for the saved interrupt mask on hosted builds
type State uintptr

// disableInterrupts is a no-op outside the firmware
func disableInterrupts() State {
	return 0
}

// restoreInterrupts is a no-op outside the firmware
func restoreInterrupts(State) {}
