package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"adcfft/core"
	"adcfft/host/mcu"
	"adcfft/host/serial"
)

type captureOptions struct {
	device  string
	baud    int
	timeout time.Duration
	discard bool
	verbose bool
	output  string
	peaks   peakOptions
}

func newCaptureCmd() *cobra.Command {
	opts := captureOptions{}

	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Read one spectrum report from a board over USB serial",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCapture(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.device, "device", "d", "/dev/ttyACM0", "Serial device path")
	cmd.Flags().IntVarP(&opts.baud, "baud", "b", 115200, "Baud rate (ignored for USB CDC)")
	cmd.Flags().DurationVarP(&opts.timeout, "timeout", "t", 30*time.Second,
		"Give up after this long, 0 waits until interrupted")
	cmd.Flags().BoolVar(&opts.discard, "discard", false, "Drop output the board sent before the port was opened")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Echo every line the board sends")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Also save the magnitudes, one per line, to this file")
	opts.peaks.register(cmd)

	return cmd
}

func runCapture(cmd *cobra.Command, opts captureOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	cfg := serial.DefaultConfig(opts.device)
	cfg.Baud = opts.baud

	board := mcu.NewMCU()
	fmt.Fprintf(cmd.ErrOrStderr(), "Connecting to board on %s...\n", opts.device)
	if err := board.ConnectWithConfig(cfg); err != nil {
		return err
	}
	defer board.Close()

	if opts.discard {
		if err := board.DiscardInput(); err != nil {
			return fmt.Errorf("failed to discard input: %w", err)
		}
	}
	if opts.verbose {
		board.Echo = func(line string) {
			fmt.Fprintln(cmd.ErrOrStderr(), line)
		}
	}

	r, err := board.Capture(ctx, core.SpectrumBins)
	if err != nil {
		return err
	}

	if opts.output != "" {
		if err := saveMagnitudes(opts.output, r.Magnitudes); err != nil {
			return err
		}
	}
	return printSummary(cmd.OutOrStdout(), r, opts.peaks)
}

// saveMagnitudes writes the half spectrum in the one-value-per-line form the
// analyze command reads back.
func saveMagnitudes(path string, mags []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	for _, m := range mags {
		if _, err := fmt.Fprintf(f, "%.3f\n", m); err != nil {
			f.Close()
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return f.Close()
}
