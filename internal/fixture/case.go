package fixture

import (
	"io"
	"log/slog"
	"strings"
)

// Hooks binds the lifecycle phases of a Case. Every field is optional:
// a nil Initialize, TearDown or Finalize is a no-op, a nil SetUp or
// TestMethod succeeds.
type Hooks struct {
	// Initialize runs once per Case lifetime, before the first timed
	// phase of the first Run. Register subtests here or before Run.
	Initialize func()

	// SetUp runs before the test method and before every subtest.
	// Returning false skips the guarded body but not the matching
	// TearDown.
	SetUp func() bool

	// TestMethod is the main body. It is not invoked if SetUp failed.
	TestMethod func() bool

	// TearDown runs after the test method and after every subtest,
	// also when the guarded body was skipped due to a failed SetUp.
	TearDown func()

	// Finalize runs last on every Run, after all subtests.
	Finalize func()
}

// PhaseObserver is notified around every setUp/tearDown sandwich Run
// performs, for the main method and for each subtest. BeforeSetUp fires
// right before setUp, AfterTearDown right after tearDown. During a
// subtest's sandwich the case reports InSubTest true, so an observer can
// qualify its output with the subtest name.
type PhaseObserver interface {
	BeforeSetUp(c *Case)
	AfterTearDown(c *Case)
}

type subTest struct {
	name string
	fn   func() bool
}

// Case is one test fixture under the lifecycle state machine.
//
// The zero value is not usable; construct with New. A Case can be Run any
// number of times: each Run starts from clean messages and counters, only
// the registered subtests and the once-only Initialize survive between
// runs.
type Case struct {
	name  string
	file  string
	hooks Hooks

	observers []PhaseObserver
	logger    *slog.Logger

	subTests       []subTest
	infoMessages   []string
	errorMessages  []string
	ran            bool
	initialized    bool
	inSubTest      bool
	currentSubTest int
	passedSubTests int
}

// Option configures a Case.
type Option func(*Case)

// WithObserver attaches a phase observer. Observers are invoked in the
// order they were attached.
func WithObserver(o PhaseObserver) Option {
	return func(c *Case) {
		if o != nil {
			c.observers = append(c.observers, o)
		}
	}
}

// WithLogger sets the logger for lifecycle tracing. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Case) {
		c.logger = logger
	}
}

// New creates a Case identified by the file it is defined in and a display
// name. The file keeps only its final path element. When both file and
// name are empty the case is named "Unnamed Test".
func New(file, name string, hooks Hooks, opts ...Option) *Case {
	c := &Case{
		hooks:  hooks,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if name == "" && file == "" {
		c.name = "Unnamed Test"
	} else {
		c.name = name
	}
	if file != "" {
		c.file = baseName(file)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the display name given at construction, or "Unnamed Test".
func (c *Case) Name() string {
	return c.name
}

// File returns the final path element of the file given at construction.
func (c *Case) File() string {
	return c.file
}

// AddSubTest registers a named subtest to run after the main test method.
// Subtests run in registration order. A nil fn is silently ignored.
//
// Registering while Run is executing is a contract violation; the new
// subtest may or may not be picked up by the running loop.
func (c *Case) AddSubTest(name string, fn func() bool) {
	if fn == nil {
		return
	}
	c.subTests = append(c.subTests, subTest{name: name, fn: fn})
}

// AddInfo appends an informational message, reported alongside the verdict.
func (c *Case) AddInfo(msg string) {
	c.infoMessages = append(c.infoMessages, msg)
}

// AddError appends an error message. Any recorded error fails the case.
func (c *Case) AddError(msg string) {
	c.errorMessages = append(c.errorMessages, msg)
}

// InfoMessages returns the informational messages of the last Run, oldest
// first. The slice is owned by the case and valid until the next Run.
func (c *Case) InfoMessages() []string {
	return c.infoMessages
}

// ErrorMessages returns the error messages of the last Run, oldest first.
// The slice is owned by the case and valid until the next Run.
func (c *Case) ErrorMessages() []string {
	return c.errorMessages
}

// SubTestCount returns the number of registered subtests.
func (c *Case) SubTestCount() int {
	return len(c.subTests)
}

// PassedSubTestCount returns the number of subtests that passed in the
// last Run.
func (c *Case) PassedSubTestCount() int {
	return c.passedSubTests
}

// Passed reports whether the case has run at least once and recorded no
// errors.
func (c *Case) Passed() bool {
	return c.ran && len(c.errorMessages) == 0
}

// InSubTest reports whether a subtest is currently running. It is true
// for the whole subtest sandwich: the subtest's setUp, body, tearDown and
// the observer calls around them.
func (c *Case) InSubTest() bool {
	return c.inSubTest
}

// CurrentSubTestName returns the name of the currently running subtest.
// Valid already in the subtest's setUp and still in its tearDown.
//
// Calling it outside a subtest sandwich is a contract violation and
// panics.
func (c *Case) CurrentSubTestName() string {
	if !c.inSubTest {
		panic("Case: CurrentSubTestName called outside a subtest")
	}
	return c.subTests[c.currentSubTest].name
}

// reset puts the case into a rerunnable state. Registered subtests and
// the once-only Initialize guard survive.
func (c *Case) reset() {
	c.ran = false
	c.errorMessages = nil
	c.infoMessages = nil
	c.currentSubTest = 0
	c.inSubTest = false
	c.passedSubTests = 0
}

// baseName strips everything up to the last path separator, accepting
// both slash styles so file identities survive cross-platform builds.
func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
