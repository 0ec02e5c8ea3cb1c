package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/assaylab/assay/internal/fixture"
	"github.com/assaylab/assay/internal/report"
	"github.com/assaylab/assay/internal/samplelog"
	"github.com/assaylab/assay/internal/scopebench"
	"github.com/assaylab/assay/internal/suites"
)

// BenchOptions holds flags for the bench command.
type BenchOptions struct {
	*RootOptions
	SleepsMs   []int
	Samples    int
	Resolution string
	Trace      bool

	// RunID allows overriding the run identity generator (for testing).
	// If nil, defaults to UUIDv7RunID.
	RunID report.RunIDGenerator
}

// BenchResult holds the bench command output: the run report plus,
// when tracing is on, every raw sample the timers recorded.
type BenchResult struct {
	Report  *report.RunReport  `json:"report"`
	Samples []samplelog.Sample `json:"samples,omitempty"`
}

// NewBenchCommand creates the bench command.
func NewBenchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BenchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run the sleep calibration benchmark",
		Long: `Run the sleep calibration benchmark suite on its own.

The suite sleeps for each configured duration a number of times,
benchmarks every sleep with a scoped timer, and asserts that the
aggregated totals, bounds and iteration counts line up with the
requested sleeps.

With --trace every raw sample is also journaled and dumped after
the report, which is useful when a calibration assertion fails and
the aggregate alone does not show which sample was off.

Examples:
  assay bench
  assay bench --sleep-ms 5 --sleep-ms 1 --samples 10
  assay bench --resolution us --trace
  assay bench --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(opts, cmd)
		},
	}

	cmd.Flags().IntSliceVar(&opts.SleepsMs, "sleep-ms", nil, "sleep durations in milliseconds (repeatable)")
	cmd.Flags().IntVar(&opts.Samples, "samples", 0, "samples per sleep duration (0 for the default)")
	cmd.Flags().StringVar(&opts.Resolution, "resolution", "ms", "timer resolution: s, ms, us or ns")
	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "journal raw samples and dump them after the run")

	return cmd
}

func runBench(opts *BenchOptions, cmd *cobra.Command) error {
	configureLogging(opts.Verbose)

	res, err := scopebench.ParseResolution(opts.Resolution)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("invalid resolution %q", opts.Resolution), err)
	}

	cfg := suites.CalibrationConfig{
		Samples:    opts.Samples,
		Resolution: res,
	}
	for _, ms := range opts.SleepsMs {
		if ms < 0 {
			return NewExitError(ExitCommandError, fmt.Sprintf("sleep duration must not be negative, got %d", ms))
		}
		cfg.Sleeps = append(cfg.Sleeps, time.Duration(ms)*time.Millisecond)
	}

	aggOpts := []scopebench.Option{scopebench.WithLogger(slog.Default())}

	var journal *samplelog.Journal
	if opts.Trace {
		journal, err = samplelog.Open(":memory:")
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open sample journal", err)
		}
		defer journal.Close()
		aggOpts = append(aggOpts, scopebench.WithSampleSink(journal))
	}

	agg := scopebench.New(aggOpts...)

	textOut := cmd.OutOrStdout()
	if opts.Format == "json" {
		textOut = io.Discard
	}

	runner := report.NewRunner(textOut,
		report.WithTitle("Running Performance Tests ..."),
		report.WithRunIDGenerator(opts.RunID),
		report.WithLogger(slog.Default()),
	)
	rep := runner.Run([]*fixture.Case{suites.SleepCalibration(cfg, agg)})

	var samples []samplelog.Sample
	if journal != nil {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		samples, err = journal.All(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read sample journal", err)
		}
	}

	if opts.Format == "json" {
		return outputBenchJSON(cmd, rep, samples)
	}

	if journal != nil {
		writeSampleTrace(cmd.OutOrStdout(), samples)
	}

	if !rep.AllPassed() {
		return NewExitError(ExitFailure, fmt.Sprintf("%d test(s) failed", rep.Total-rep.Passed))
	}
	return nil
}

// outputBenchJSON emits the report and any traced samples in the
// CLIResponse envelope.
func outputBenchJSON(cmd *cobra.Command, rep *report.RunReport, samples []samplelog.Sample) error {
	failed := rep.Total - rep.Passed

	response := CLIResponse{
		Status: "ok",
		Data:   BenchResult{Report: rep, Samples: samples},
	}
	if failed > 0 {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "E_TESTS_FAILED",
			Message: fmt.Sprintf("%d test(s) failed", failed),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d test(s) failed", failed))
	}
	return nil
}

// writeSampleTrace dumps journaled samples in recording order.
func writeSampleTrace(w io.Writer, samples []samplelog.Sample) {
	fmt.Fprintln(w, "=== Samples ===")
	if len(samples) == 0 {
		fmt.Fprintln(w, "  (no samples recorded)")
	} else {
		for _, s := range samples {
			fmt.Fprintf(w, "  [%d] %s  %d ns\n", s.Seq, s.Label, s.Elapsed.Nanoseconds())
		}
	}
	fmt.Fprintln(w)
}
