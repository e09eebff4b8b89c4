package core

// TimerFreq is the tick rate of GetTime. Both supported chips run their
// system timer at 1MHz.
const TimerFreq = 1000000

var (
	systemTicks uint32
	tickSource  func() uint32
)

// SetTickSource installs a hardware counter read by GetTime.
func SetTickSource(fn func() uint32) {
	tickSource = fn
}

// GetTime returns the current system time in timer ticks
func GetTime() uint32 {
	if tickSource != nil {
		return tickSource()
	}
	return getSystemTicks()
}

// SetTime sets the current system time (for testing without a tick source)
func SetTime(ticks uint32) {
	setSystemTicks(ticks)
}

// TimerToUS converts timer ticks to microseconds
func TimerToUS(ticks uint32) uint32 {
	return uint32(uint64(ticks) * 1000000 / TimerFreq)
}
