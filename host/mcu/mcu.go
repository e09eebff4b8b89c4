package mcu

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"adcfft/host/report"
	"adcfft/host/serial"
)

var ErrNotConnected = errors.New("not connected to board")

// MCU is a connection to a board running the spectrum firmware
type MCU struct {
	// Serial port
	port serial.Port

	// Echo, if set, receives every line read from the board
	Echo func(line string)

	// Connection state
	connected bool
}

// NewMCU creates a new MCU instance (not yet connected)
func NewMCU() *MCU {
	return &MCU{
		connected: false,
	}
}

// Connect connects to a board via serial port
func (m *MCU) Connect(device string) error {
	return m.ConnectWithConfig(serial.DefaultConfig(device))
}

// ConnectWithConfig connects to a board with a custom serial config
func (m *MCU) ConnectWithConfig(cfg *serial.Config) error {
	port, err := serial.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open serial port: %w", err)
	}
	m.Attach(port)

	// Give the USB CDC endpoint time to settle after enumeration
	time.Sleep(100 * time.Millisecond)

	return nil
}

// Attach uses an already open port
func (m *MCU) Attach(port serial.Port) {
	m.port = port
	m.connected = true
}

// Close closes the connection to the board
func (m *MCU) Close() error {
	if m.port != nil {
		if err := m.port.Close(); err != nil {
			return err
		}
	}
	m.connected = false
	return nil
}

// IsConnected returns whether we're connected to a board
func (m *MCU) IsConnected() bool {
	return m.connected
}

// DiscardInput drops anything the board sent before now
func (m *MCU) DiscardInput() error {
	if !m.connected {
		return ErrNotConnected
	}
	return m.port.Flush()
}

// Capture reads board output until a report with bins magnitudes has been
// received, ctx is done, or the port fails. Read timeouts are retried, so a
// board that is still booting only delays the capture.
func (m *MCU) Capture(ctx context.Context, bins int) (*report.Report, error) {
	if !m.connected {
		return nil, ErrNotConnected
	}

	collector := report.NewCollector(bins)
	chunk := make([]byte, 256)
	var pending []byte

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("capture stopped after %d bins: %w",
				len(collector.Report().Magnitudes), err)
		}

		n, err := m.port.Read(chunk)
		pending = append(pending, chunk[:n]...)

		for {
			i := bytes.IndexByte(pending, '\n')
			if i < 0 {
				break
			}
			line := strings.TrimRight(string(pending[:i]), "\r")
			pending = pending[i+1:]

			if m.Echo != nil {
				m.Echo(line)
			}
			done, cerr := collector.Add(line)
			if cerr != nil {
				return nil, cerr
			}
			if done {
				return collector.Report(), nil
			}
		}

		// tarm/serial reports a read timeout as (0, io.EOF)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read from board: %w", err)
		}
	}
}
