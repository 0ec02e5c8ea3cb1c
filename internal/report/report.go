package report

import "github.com/assaylab/assay/internal/fixture"

// CaseReport is the outcome of one executed case, detached from the live
// fixture so it can outlive reruns and serialize cleanly.
type CaseReport struct {
	Name           string   `json:"name"`
	File           string   `json:"file"`
	Pass           bool     `json:"pass"`
	SubTests       int      `json:"sub_tests"`
	PassedSubTests int      `json:"passed_sub_tests"`
	InfoMessages   []string `json:"info_messages"`
	ErrorMessages  []string `json:"error_messages"`
}

// RunReport is the outcome of one run over a set of cases.
//
// SubTests and PassedSubTests aggregate over all cases, counting
// registered subtests also for failed cases.
type RunReport struct {
	RunID          string       `json:"run_id"`
	Title          string       `json:"title"`
	Cases          []CaseReport `json:"cases"`
	Passed         int          `json:"passed"`
	Total          int          `json:"total"`
	SubTests       int          `json:"sub_tests"`
	PassedSubTests int          `json:"passed_sub_tests"`
}

// AllPassed reports whether every case in the run passed. True for an
// empty run.
func (r *RunReport) AllPassed() bool {
	return r.Passed == r.Total
}

// snapshotCase copies a case's outcome. Message slices are copied and
// never nil, so JSON renders them as arrays.
func snapshotCase(c *fixture.Case) CaseReport {
	return CaseReport{
		Name:           c.Name(),
		File:           c.File(),
		Pass:           c.Passed(),
		SubTests:       c.SubTestCount(),
		PassedSubTests: c.PassedSubTestCount(),
		InfoMessages:   append([]string{}, c.InfoMessages()...),
		ErrorMessages:  append([]string{}, c.ErrorMessages()...),
	}
}
