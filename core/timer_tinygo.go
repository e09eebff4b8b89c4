//go:build tinygo

package core

import "sync/atomic"

var systemTicksValue uint32

// getSystemTicks reads the tick mirror; interrupt handlers may update it
func getSystemTicks() uint32 {
	return atomic.LoadUint32(&systemTicksValue)
}

func setSystemTicks(ticks uint32) {
	atomic.StoreUint32(&systemTicksValue, ticks)
}
