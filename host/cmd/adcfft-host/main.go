// Command adcfft-host captures, analyzes and simulates the spectrum reports
// printed by the adcfft firmware.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"adcfft/host/report"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "adcfft-host",
		Short:         "Host tools for the ADC spectrum firmware",
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
			HiddenDefaultCmd:    true,
		},
	}
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddCommand(newCaptureCmd())
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newSimulateCmd())
	return rootCmd
}

// peakOptions are shared by every command that prints a spectrum summary
type peakOptions struct {
	height   float64
	noMirror bool
}

func (o *peakOptions) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&o.height, "height", report.DefaultPeakHeight,
		"Minimum magnitude of a reported peak")
	cmd.Flags().BoolVar(&o.noMirror, "no-mirror", false,
		"Search the half spectrum as received instead of its mirrored full view")
}

// printSummary writes the summary line and the peaks of r
func printSummary(w io.Writer, r *report.Report, o peakOptions) error {
	s, err := report.Summarize(r.Magnitudes)
	if err != nil {
		return err
	}

	if r.HasAverage {
		fmt.Fprintf(w, "average:  %.3f\n", r.Average)
	}
	fmt.Fprintf(w, "bins:     %d\n", s.Bins)
	fmt.Fprintf(w, "max:      %.3f at bin %d\n", s.Peak, s.PeakAt)
	fmt.Fprintf(w, "mean:     %.3f (std dev %.3f)\n", s.Mean, s.StdDev)

	series := r.Magnitudes
	if !o.noMirror {
		series = report.Mirror(series)
	}
	peaks := report.FindPeaks(series, o.height)
	fmt.Fprintf(w, "peaks:    %d above %.0f\n", len(peaks), o.height)
	for _, i := range peaks {
		fmt.Fprintf(w, "  %5d  %.3f\n", i, series[i])
	}
	return nil
}
