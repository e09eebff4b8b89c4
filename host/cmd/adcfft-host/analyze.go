package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"adcfft/host/report"
)

type analyzeOptions struct {
	bins  int
	peaks peakOptions
}

func newAnalyzeCmd() *cobra.Command {
	opts := analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Summarize a saved report log (stdin when no file or \"-\")",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open log: %w", err)
				}
				defer f.Close()
				in = f
			}
			return runAnalyze(in, cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().IntVar(&opts.bins, "bins", 0, "Stop after this many bins, 0 reads the whole log")
	opts.peaks.register(cmd)

	return cmd
}

func runAnalyze(in io.Reader, out io.Writer, opts analyzeOptions) error {
	r, err := report.Collect(in, opts.bins)
	if err != nil {
		return fmt.Errorf("failed to read log: %w", err)
	}
	return printSummary(out, r, opts.peaks)
}
