// Package report parses the spectrum report a board prints over USB serial
// and summarizes it on the host.
//
// A report is one "Average: <mean>" line followed by one "<bin>,<magnitude>"
// line per spectrum bin. Logs saved by older tooling hold bare magnitudes,
// one per line; those are accepted too and numbered in arrival order.
package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const averagePrefix = "Average:"

var (
	ErrMalformedLine = errors.New("malformed report line")
	ErrBinOrder      = errors.New("spectrum bin out of order")
	ErrDeviceFault   = errors.New("device reported a fatal error")
	ErrShortReport   = errors.New("report ended before all bins were received")
)

// LineKind classifies a line of board output.
type LineKind uint8

const (
	LineOther     LineKind = iota // progress and timing output
	LineAverage                   // "Average: <mean>"
	LineBin                       // "<bin>,<magnitude>"
	LineMagnitude                 // "<magnitude>"
	LineFault                     // "FATAL: <stage>: <err>"
)

// Line is one parsed line.
type Line struct {
	Kind  LineKind
	Index int
	Value float64
	Text  string
}

// ParseLine classifies s. Lines that look like report data but do not parse
// return ErrMalformedLine.
func ParseLine(s string) (Line, error) {
	s = strings.TrimSpace(s)
	line := Line{Kind: LineOther, Text: s}

	switch {
	case s == "":
		return line, nil

	case strings.HasPrefix(s, "FATAL:"):
		line.Kind = LineFault
		return line, nil

	case strings.HasPrefix(s, averagePrefix):
		v, err := strconv.ParseFloat(strings.TrimSpace(s[len(averagePrefix):]), 64)
		if err != nil {
			return line, fmt.Errorf("%w: %q", ErrMalformedLine, s)
		}
		line.Kind = LineAverage
		line.Value = v
		return line, nil
	}

	if !startsNumeric(s) {
		return line, nil
	}

	idx, mag, found := strings.Cut(s, ",")
	if !found {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return line, fmt.Errorf("%w: %q", ErrMalformedLine, s)
		}
		line.Kind = LineMagnitude
		line.Value = v
		return line, nil
	}

	i, err := strconv.Atoi(strings.TrimSpace(idx))
	if err != nil || i < 0 {
		return line, fmt.Errorf("%w: %q", ErrMalformedLine, s)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(mag), 64)
	if err != nil {
		return line, fmt.Errorf("%w: %q", ErrMalformedLine, s)
	}
	line.Kind = LineBin
	line.Index = i
	line.Value = v
	return line, nil
}

func startsNumeric(s string) bool {
	c := s[0]
	return (c >= '0' && c <= '9') || c == '-' || c == '+' || c == '.'
}

// Report is a collected spectrum.
type Report struct {
	Average    float64
	HasAverage bool
	Magnitudes []float64
}

// Collector assembles a Report from lines as they arrive.
type Collector struct {
	bins   int
	report Report
}

// NewCollector returns a collector that completes after bins magnitudes.
func NewCollector(bins int) *Collector {
	return &Collector{
		bins:   bins,
		report: Report{Magnitudes: make([]float64, 0, bins)},
	}
}

// Add feeds one line. It reports true once every bin has been received.
// Bins seen before the first "Average:" or bin 0 are skipped, and a new
// "Average:" line restarts collection, so a capture that joins in the middle
// of a report picks up the next complete one. A gap once collection has
// started is ErrBinOrder.
func (c *Collector) Add(s string) (bool, error) {
	line, err := ParseLine(s)
	if err != nil {
		return false, err
	}

	switch line.Kind {
	case LineFault:
		return false, fmt.Errorf("%w: %s", ErrDeviceFault, line.Text)

	case LineAverage:
		c.report = Report{
			Average:    line.Value,
			HasAverage: true,
			Magnitudes: c.report.Magnitudes[:0],
		}

	case LineBin:
		if !c.report.HasAverage && len(c.report.Magnitudes) == 0 && line.Index != 0 {
			// Joined mid-report; wait for the next one to start.
			return false, nil
		}
		if line.Index != len(c.report.Magnitudes) {
			return false, fmt.Errorf("%w: got bin %d, want %d",
				ErrBinOrder, line.Index, len(c.report.Magnitudes))
		}
		c.report.Magnitudes = append(c.report.Magnitudes, line.Value)

	case LineMagnitude:
		c.report.Magnitudes = append(c.report.Magnitudes, line.Value)
	}

	return c.Done(), nil
}

// Done reports whether every bin has been received.
func (c *Collector) Done() bool {
	return c.bins > 0 && len(c.report.Magnitudes) >= c.bins
}

// Report returns what has been collected so far.
func (c *Collector) Report() *Report {
	r := c.report
	r.Magnitudes = append([]float64(nil), c.report.Magnitudes...)
	return &r
}

// Collect reads lines from r until bins magnitudes are collected. With bins
// 0 it reads to EOF and returns whatever magnitudes it found.
func Collect(r io.Reader, bins int) (*Report, error) {
	c := NewCollector(bins)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		done, err := c.Add(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if done {
			return c.Report(), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if bins > 0 {
		return nil, fmt.Errorf("%w: %d of %d", ErrShortReport, len(c.report.Magnitudes), bins)
	}
	return c.Report(), nil
}
