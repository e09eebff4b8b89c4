package core

// LogWriter writes one line of log output. Targets route it to USB CDC,
// UART or RTT; the core never formats with fmt.
type LogWriter func(string)

// TimingEvent captures a pipeline stage for post-mortem output
type TimingEvent struct {
	EventType uint8  // Event type code
	Clock     uint32 // System clock at event
	Value     uint32 // Context-dependent value
}

// Event type codes
const (
	EvtBufferReady     = 1 // Sample buffer initialized, value = slots
	EvtTransferStart   = 2 // DMA stream enabled and conversions triggered
	EvtTransferDone    = 3 // Completion flag observed, value = polls
	EvtTransferTimeout = 4 // Poll limit reached, value = polls
	EvtAnalyzed        = 5 // Spectrum computed
	EvtReported        = 6 // All bins emitted, value = bins
	EvtFault           = 7 // Fatal error on the way to Halt
)

const (
	TimingRingSize = 16
)

var (
	// logPrintln is the global log output (can be set by platform code)
	logPrintln LogWriter = func(string) {}

	// debugEnabled gates Debug output; Info is always written
	debugEnabled bool

	timingRing     [TimingRingSize]TimingEvent
	timingRingHead uint8
)

// InitLog installs the platform log writer. Passing nil silences output.
func InitLog(w LogWriter) {
	if w == nil {
		w = func(string) {}
	}
	logPrintln = w
}

// SetDebugEnabled enables or disables Debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// Info writes an informational line
func Info(msg string) {
	logPrintln(msg)
}

// Debug writes a line only when debug output is enabled
func Debug(msg string) {
	if debugEnabled {
		logPrintln(msg)
	}
}

// RecordTiming captures an event in the ring buffer. It never blocks.
func RecordTiming(eventType uint8, value uint32) {
	idx := timingRingHead
	timingRing[idx] = TimingEvent{
		EventType: eventType,
		Clock:     GetTime(),
		Value:     value,
	}
	timingRingHead = (idx + 1) % TimingRingSize
}

// TimingEvents returns the recorded events, oldest first.
func TimingEvents() []TimingEvent {
	events := make([]TimingEvent, 0, TimingRingSize)
	start := timingRingHead
	for i := uint8(0); i < TimingRingSize; i++ {
		evt := timingRing[(start+i)%TimingRingSize]
		if evt.EventType == 0 {
			continue // Empty slot
		}
		events = append(events, evt)
	}
	return events
}

// DumpTimingRing writes the timing ring to the log (call on fatal errors)
func DumpTimingRing() {
	logPrintln("[TIMING] === Timing Ring Dump ===")
	for _, evt := range TimingEvents() {
		logPrintln("[TIMING] " + eventName(evt.EventType) +
			" clock=" + utoa(evt.Clock) +
			" v=" + utoa(evt.Value))
	}
	logPrintln("[TIMING] === End Dump ===")
}

// ClearTimingRing clears the timing buffer
func ClearTimingRing() {
	for i := range timingRing {
		timingRing[i] = TimingEvent{}
	}
	timingRingHead = 0
}

func eventName(t uint8) string {
	switch t {
	case EvtBufferReady:
		return "BUFFER_READY"
	case EvtTransferStart:
		return "XFER_START"
	case EvtTransferDone:
		return "XFER_DONE"
	case EvtTransferTimeout:
		return "XFER_TIMEOUT!"
	case EvtAnalyzed:
		return "ANALYZED"
	case EvtReported:
		return "REPORTED"
	case EvtFault:
		return "FAULT!"
	default:
		return "UNKNOWN"
	}
}
