package core

// Delay provides blocking waits.
type Delay interface {
	DelayUS(us uint32)
	DelayMS(ms uint32)
}

var delayDriver Delay

// SetDelay is called by target-specific code to register its delay provider.
func SetDelay(d Delay) {
	delayDriver = d
}
