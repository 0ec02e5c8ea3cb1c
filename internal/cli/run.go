package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	"github.com/spf13/cobra"

	"github.com/assaylab/assay/internal/fixture"
	"github.com/assaylab/assay/internal/report"
	"github.com/assaylab/assay/internal/scopebench"
	"github.com/assaylab/assay/internal/suites"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Filter string
	Plan   string

	// RunID allows overriding the run identity generator (for testing).
	// If nil, defaults to UUIDv7RunID.
	RunID report.RunIDGenerator
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the built-in suites",
		Long: `Run the built-in suites and print the two-phase report:
progress while running, then per-suite verdicts and the pass counters.

Suites can be narrowed with --filter (a glob matched against suite
names). A YAML run plan can set the title, the filter, output options
and the benchmark configuration; plan fields override flags.

Example:
  assay run
  assay run --filter 'Sleep*'
  assay run --plan ./plan.yaml --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuites(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "glob selecting suites by name")
	cmd.Flags().StringVar(&opts.Plan, "plan", "", "path to a YAML run plan")

	return cmd
}

func runSuites(opts *RunOptions, cmd *cobra.Command) error {
	title := ""
	filter := opts.Filter
	benchCfg := suites.CalibrationConfig{}

	if opts.Plan != "" {
		plan, err := LoadPlan(opts.Plan)
		if err != nil {
			f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			_ = f.Error("E_BAD_PLAN", err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to load run plan", err)
		}
		title = plan.Title
		if plan.Filter != "" {
			filter = plan.Filter
		}
		if plan.Format != "" {
			opts.Format = plan.Format
		}
		if plan.Verbose {
			opts.Verbose = true
		}
		if plan.Bench != nil {
			benchCfg, err = benchConfigFromPlan(plan.Bench)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid bench plan", err)
			}
		}
	}

	configureLogging(opts.Verbose)

	agg := scopebench.New(scopebench.WithLogger(slog.Default()))
	cases := []*fixture.Case{
		suites.Color(),
		suites.SleepCalibration(benchCfg, agg),
	}

	selected, err := filterCases(cases, filter)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("invalid filter %q", filter), err)
	}
	if len(selected) == 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("no suites match filter %q", filter))
	}

	// In JSON mode the streaming text report is suppressed; the whole
	// report lands in the response envelope instead.
	textOut := cmd.OutOrStdout()
	if opts.Format == "json" {
		textOut = io.Discard
	}

	runner := report.NewRunner(textOut,
		report.WithTitle(title),
		report.WithRunIDGenerator(opts.RunID),
		report.WithLogger(slog.Default()),
	)
	rep := runner.Run(selected)

	if opts.Format == "json" {
		return outputRunJSON(cmd, rep)
	}

	if !rep.AllPassed() {
		return NewExitError(ExitFailure, fmt.Sprintf("%d test(s) failed", rep.Total-rep.Passed))
	}
	return nil
}

// outputRunJSON emits the report in the CLIResponse envelope. A run
// with failing tests reports status "error" with the report still in
// Data, and exits with ExitFailure.
func outputRunJSON(cmd *cobra.Command, rep *report.RunReport) error {
	failed := rep.Total - rep.Passed

	response := CLIResponse{Status: "ok", Data: rep}
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

// filterCases selects cases whose name matches the glob pattern. An
// empty pattern selects everything.
func filterCases(cases []*fixture.Case, pattern string) ([]*fixture.Case, error) {
	if pattern == "" {
		return cases, nil
	}
	var selected []*fixture.Case
	for _, c := range cases {
		ok, err := path.Match(pattern, c.Name())
		if err != nil {
			return nil, err
		}
		if ok {
			selected = append(selected, c)
		}
	}
	return selected, nil
}

// benchConfigFromPlan converts the plan's benchmark section. The plan
// schema has already constrained ranges, so only the unit mapping can
// fail here.
func benchConfigFromPlan(b *BenchPlan) (suites.CalibrationConfig, error) {
	cfg := suites.CalibrationConfig{Samples: b.Samples}

	for _, ms := range b.SleepsMs {
		cfg.Sleeps = append(cfg.Sleeps, time.Duration(ms)*time.Millisecond)
	}

	if b.Resolution != "" {
		res, err := scopebench.ParseResolution(b.Resolution)
		if err != nil {
			return suites.CalibrationConfig{}, fmt.Errorf("resolution %q: %w", b.Resolution, err)
		}
		cfg.Resolution = res
	}

	return cfg, nil
}
