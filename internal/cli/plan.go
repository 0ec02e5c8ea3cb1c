package cli

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed plan.cue
var planSchema string

// Plan is a declarative run configuration. Zero-valued fields mean "not
// set": the command keeps whatever its flags say.
type Plan struct {
	Title   string     `yaml:"title" json:"title,omitempty"`
	Filter  string     `yaml:"filter" json:"filter,omitempty"`
	Format  string     `yaml:"format" json:"format,omitempty"`
	Verbose bool       `yaml:"verbose" json:"verbose,omitempty"`
	Bench   *BenchPlan `yaml:"bench" json:"bench,omitempty"`
}

// BenchPlan configures the sleep calibration suite from a plan.
type BenchPlan struct {
	SleepsMs   []int  `yaml:"sleeps_ms" json:"sleeps_ms,omitempty"`
	Samples    int    `yaml:"samples" json:"samples,omitempty"`
	Resolution string `yaml:"resolution" json:"resolution,omitempty"`
}

// LoadPlan reads and parses a run plan YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or violates the plan schema.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like
	// "filtre:" vs "filter:")
	var plan Plan
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validatePlan(&plan); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}

	return &plan, nil
}

// validatePlan unifies the plan with the embedded CUE schema. The
// schema constrains types, enumerations (format, resolution) and value
// ranges (samples, sleep durations); absent fields stay unconstrained.
func validatePlan(p *Plan) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(planSchema)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile plan schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Plan"))
	if err := def.Err(); err != nil {
		return fmt.Errorf("lookup plan schema: %w", err)
	}

	val := ctx.Encode(p)
	if err := val.Err(); err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}

	return def.Unify(val).Validate(cue.Concrete(true))
}
