package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"adcfft/core"
	"adcfft/sim"
)

var errStallNeedsLimit = errors.New("--stall needs --max-polls, the transfer never completes")

type simulateOptions struct {
	wave       string
	cycles     float64
	value      uint16
	resolution uint32
	wavFile    string
	burst      int
	maxPolls   uint32
	stall      bool
	verbose    bool
}

func newSimulateCmd() *cobra.Command {
	opts := simulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the acquisition pipeline on simulated peripherals and print its report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.wave, "wave", "w", "sine", "Input waveform: sine, square, constant or alternating")
	cmd.Flags().Float64VarP(&opts.cycles, "cycles", "c", 64, "Periods per acquisition for sine and square")
	cmd.Flags().Uint16Var(&opts.value, "value", 1000, "Level of the constant waveform")
	cmd.Flags().Uint32VarP(&opts.resolution, "resolution", "r", core.DefaultResolution, "ADC bit depth")
	cmd.Flags().StringVar(&opts.wavFile, "wav", "", "Read the input from the first channel of a PCM WAV file")
	cmd.Flags().IntVar(&opts.burst, "burst", int(core.Burst4), "DMA peripheral burst in beats (1, 4, 8 or 16)")
	cmd.Flags().Uint32Var(&opts.maxPolls, "max-polls", 0, "Completion poll limit, 0 waits forever")
	cmd.Flags().BoolVar(&opts.stall, "stall", false, "Never raise DMA requests")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print debug lines and the timing ring")

	return cmd
}

func runSimulate(out, diag io.Writer, opts simulateOptions) error {
	if opts.stall && opts.maxPolls == 0 {
		return errStallNeedsLimit
	}

	wave, err := simWaveform(opts)
	if err != nil {
		return err
	}

	board := sim.NewBoard(wave)
	board.DMA.Stalled = opts.stall
	board.Register()

	core.InitLog(func(line string) {
		fmt.Fprintln(out, line)
	})
	defer core.InitLog(nil)
	core.SetDebugEnabled(opts.verbose)
	core.ClearTimingRing()

	// Timestamp the timing ring with wall time in microseconds
	start := time.Now()
	core.SetTickSource(func() uint32 {
		return uint32(time.Since(start).Microseconds())
	})
	defer core.SetTickSource(nil)

	p, err := core.TakePeripherals()
	if err != nil {
		return err
	}

	cfg := core.DefaultConfig()
	cfg.Resolution = opts.resolution
	cfg.Clocks = board.Plan()
	cfg.Transfer = core.DefaultTransferConfig().PeripheralBurst(core.BurstMode(opts.burst))
	cfg.MaxPolls = opts.maxPolls

	if _, err := core.Run(p, cfg); err != nil {
		if opts.verbose {
			core.DumpTimingRing()
		}
		return fmt.Errorf("simulation failed: %w", err)
	}

	fmt.Fprintf(diag, "polls: %d  conversions: %d  throttle: %dus\n",
		board.DMA.Polls, board.ADC.Conversions, board.Delay.TotalUS)
	if events := core.TimingEvents(); len(events) > 1 {
		elapsed := events[len(events)-1].Clock - events[0].Clock
		fmt.Fprintf(diag, "elapsed: %dus\n", core.TimerToUS(elapsed))
	}
	if opts.verbose {
		core.DumpTimingRing()
	}
	return nil
}

func simWaveform(opts simulateOptions) (sim.Waveform, error) {
	if opts.wavFile != "" {
		f, err := os.Open(opts.wavFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open WAV file: %w", err)
		}
		defer f.Close()
		return sim.LoadWAV(f, opts.resolution)
	}

	switch opts.wave {
	case "sine":
		return sim.Sine(opts.cycles, opts.resolution), nil
	case "square":
		return sim.Square(opts.cycles, opts.resolution), nil
	case "constant":
		return sim.Constant(opts.value), nil
	case "alternating":
		top := uint16(uint32(1)<<min(opts.resolution, 16) - 1)
		return sim.Alternating(0, top), nil
	}
	return nil, fmt.Errorf("unknown waveform %q", opts.wave)
}
