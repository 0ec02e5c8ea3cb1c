package report

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/assaylab/assay/internal/fixture"
)

const separator = "========================================================"

// Runner executes a set of cases and renders the classic two-phase text
// report: one progress line per case while running, then a summary block
// with per-case verdicts and the final pass counters.
type Runner struct {
	out    io.Writer
	title  string
	runID  RunIDGenerator
	logger *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithTitle sets the report title line. The title is rendered even when
// empty, as a single blank line.
func WithTitle(title string) Option {
	return func(r *Runner) {
		r.title = title
	}
}

// WithRunIDGenerator overrides the run identity source. The default is
// UUIDv7RunID; tests inject a fixed generator for byte-stable output.
func WithRunIDGenerator(g RunIDGenerator) Option {
	return func(r *Runner) {
		if g != nil {
			r.runID = g
		}
	}
}

// WithLogger sets the logger for run tracing. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a Runner writing its text report to out.
func NewRunner(out io.Writer, opts ...Option) *Runner {
	r := &Runner{
		out:    out,
		runID:  UUIDv7RunID{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the cases in order and returns the collected report.
//
// The text report streams to the runner's writer as the run progresses:
// title and run ID, one progress line per case, then the summary. Every
// case is run even when earlier cases fail; the summary is where
// verdicts land.
func (r *Runner) Run(cases []*fixture.Case) *RunReport {
	id := r.runID.Generate()
	r.logger.Info("run started", "run_id", id, "cases", len(cases))

	fmt.Fprintf(r.out, "%s\n", r.title)
	fmt.Fprintf(r.out, "Run ID: %s\n", id)

	for i, c := range cases {
		fmt.Fprintf(r.out, "Running test %d / %d ... \n", i+1, len(cases))
		c.Run()
	}

	rep := &RunReport{
		RunID: id,
		Title: r.title,
		Cases: make([]CaseReport, 0, len(cases)),
		Total: len(cases),
	}

	fmt.Fprintln(r.out)
	for _, c := range cases {
		cr := snapshotCase(c)
		rep.Cases = append(rep.Cases, cr)
		rep.SubTests += cr.SubTests
		rep.PassedSubTests += cr.PassedSubTests
		if cr.Pass {
			rep.Passed++
		}
		r.renderCase(cr)
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, separator)
	fmt.Fprintf(r.out, "Passed tests: %d / %d (SubTests: %d / %d)\n",
		rep.Passed, rep.Total, rep.PassedSubTests, rep.SubTests)
	fmt.Fprintln(r.out, separator)
	fmt.Fprintln(r.out)

	r.logger.Info("run finished",
		"run_id", id,
		"passed", rep.Passed,
		"total", rep.Total,
	)
	return rep
}

// renderCase writes one summary block: the case's info messages, its
// verdict line, and for a failed case its error messages.
//
// The verdict line adapts to what identifies the case: file only, name
// only, or "name in file".
func (r *Runner) renderCase(cr CaseReport) {
	for _, msg := range cr.InfoMessages {
		fmt.Fprintf(r.out, "%s\n", msg)
	}

	if cr.Pass {
		switch {
		case cr.Name == "":
			fmt.Fprintf(r.out, "Test passed: %s(%d)!\n", cr.File, cr.SubTests)
		case cr.File == "":
			fmt.Fprintf(r.out, "Test passed: %s(%d)!\n", cr.Name, cr.SubTests)
		default:
			fmt.Fprintf(r.out, "Test passed: %s(%d) in %s!\n", cr.Name, cr.SubTests, cr.File)
		}
		return
	}

	switch {
	case cr.Name == "":
		fmt.Fprintf(r.out, "Test failed: %s\n", cr.File)
	case cr.File == "":
		fmt.Fprintf(r.out, "Test failed: %s\n", cr.Name)
	default:
		fmt.Fprintf(r.out, "Test failed: %s in %s\n", cr.Name, cr.File)
	}
	for _, msg := range cr.ErrorMessages {
		fmt.Fprintf(r.out, "%s\n", msg)
	}
}
