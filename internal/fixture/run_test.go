package fixture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// journalObserver appends phase notifications to a shared journal.
type journalObserver struct {
	journal *[]string
}

func (o journalObserver) BeforeSetUp(c *Case) {
	*o.journal = append(*o.journal, "observer.beforeSetUp")
}

func (o journalObserver) AfterTearDown(c *Case) {
	*o.journal = append(*o.journal, "observer.afterTearDown")
}

// TestRun_PhaseOrder tests the full lifecycle order with subtests.
func TestRun_PhaseOrder(t *testing.T) {
	var journal []string
	note := func(s string) func() {
		return func() { journal = append(journal, s) }
	}
	noteOK := func(s string) func() bool {
		return func() bool { journal = append(journal, s); return true }
	}

	c := New("f.go", "t", Hooks{
		Initialize: note("initialize"),
		SetUp:      noteOK("setUp"),
		TestMethod: noteOK("testMethod"),
		TearDown:   note("tearDown"),
		Finalize:   note("finalize"),
	}, WithObserver(journalObserver{journal: &journal}))
	c.AddSubTest("s1", noteOK("subtest s1"))
	c.AddSubTest("s2", noteOK("subtest s2"))

	require.True(t, c.Run())

	assert.Equal(t, []string{
		"initialize",
		"observer.beforeSetUp",
		"setUp",
		"testMethod",
		"tearDown",
		"observer.afterTearDown",
		"observer.beforeSetUp",
		"setUp",
		"subtest s1",
		"tearDown",
		"observer.afterTearDown",
		"observer.beforeSetUp",
		"setUp",
		"subtest s2",
		"tearDown",
		"observer.afterTearDown",
		"finalize",
	}, journal)
}

// TestRun_NilHooksPass tests that an all-default case passes.
func TestRun_NilHooksPass(t *testing.T) {
	c := New("f.go", "t", Hooks{})
	assert.True(t, c.Run())
	assert.True(t, c.Passed())
	assert.Empty(t, c.ErrorMessages())
}

// TestRun_TestMethodFailure tests the main-method error message.
func TestRun_TestMethodFailure(t *testing.T) {
	c := New("dir/color_test.go", "t", Hooks{
		TestMethod: func() bool { return false },
	})

	assert.False(t, c.Run())
	assert.Equal(t, []string{"  <color_test.go> failed!"}, c.ErrorMessages())
}

// TestRun_SetUpFailureSkipsMethodAndSubTests tests the skip-everything
// path of a failed main setUp.
func TestRun_SetUpFailureSkipsMethodAndSubTests(t *testing.T) {
	var journal []string

	c := New("f.go", "t", Hooks{
		SetUp:      func() bool { journal = append(journal, "setUp"); return false },
		TestMethod: func() bool { journal = append(journal, "testMethod"); return true },
		TearDown:   func() { journal = append(journal, "tearDown") },
		Finalize:   func() { journal = append(journal, "finalize") },
	})
	c.AddSubTest("s1", func() bool { journal = append(journal, "s1"); return true })

	assert.False(t, c.Run())

	// One setUp attempt, no test method, no subtests, but tearDown and
	// finalize still ran.
	assert.Equal(t, []string{"setUp", "tearDown", "finalize"}, journal)
	assert.Equal(t, []string{"  <f.go> setUp() failed!"}, c.ErrorMessages())
	assert.Equal(t, 0, c.PassedSubTestCount())
}

// TestRun_SubTestFailure tests the per-subtest error message and counter.
func TestRun_SubTestFailure(t *testing.T) {
	c := New("f.go", "t", Hooks{})
	c.AddSubTest("good", func() bool { return true })
	c.AddSubTest("bad", func() bool { return false })
	c.AddSubTest("also good", func() bool { return true })

	assert.False(t, c.Run())
	assert.Equal(t, []string{"  <bad> failed!"}, c.ErrorMessages())
	assert.Equal(t, 3, c.SubTestCount())
	assert.Equal(t, 2, c.PassedSubTestCount())
}

// TestRun_SubTestSetUpFailureContinuesLoop tests that one subtest's
// failed setUp skips only that subtest.
func TestRun_SubTestSetUpFailureContinuesLoop(t *testing.T) {
	subTestSetUps := 0

	var c *Case
	c = New("f.go", "t", Hooks{
		// Fail setUp for the second subtest only.
		SetUp: func() bool {
			if !c.InSubTest() {
				return true
			}
			subTestSetUps++
			return subTestSetUps != 2
		},
	})
	var ran []string
	c.AddSubTest("first", func() bool { ran = append(ran, "first"); return true })
	c.AddSubTest("second", func() bool { ran = append(ran, "second"); return true })
	c.AddSubTest("third", func() bool { ran = append(ran, "third"); return true })

	assert.False(t, c.Run())
	assert.Equal(t, []string{"first", "third"}, ran)
	assert.Equal(t, []string{"  <second> SKIPPED due to setUp() failed!"}, c.ErrorMessages())
	assert.Equal(t, 2, c.PassedSubTestCount())
}

// TestRun_UserErrorFailsCase tests that a manually recorded error fails
// the case even when every hook reports success.
func TestRun_UserErrorFailsCase(t *testing.T) {
	var c *Case
	c = New("f.go", "t", Hooks{
		TestMethod: func() bool {
			c.AddError("manual failure note")
			return true
		},
	})

	assert.False(t, c.Run())
	assert.Equal(t, []string{"manual failure note"}, c.ErrorMessages())
}

// TestRun_InitializeOncePerLifetime tests that repeated runs do not
// re-initialize.
func TestRun_InitializeOncePerLifetime(t *testing.T) {
	initCount := 0
	var c *Case
	c = New("f.go", "t", Hooks{
		Initialize: func() {
			initCount++
			c.AddSubTest("registered once", func() bool { return true })
		},
	})

	require.True(t, c.Run())
	require.True(t, c.Run())
	require.True(t, c.Run())

	assert.Equal(t, 1, initCount)
	assert.Equal(t, 1, c.SubTestCount(), "subtest registration must not accumulate across runs")
}

// TestRun_RerunResetsState tests the clean-slate guarantee of re-running.
func TestRun_RerunResetsState(t *testing.T) {
	shouldFail := true
	var c *Case
	c = New("f.go", "t", Hooks{
		TestMethod: func() bool {
			c.AddInfo("note")
			return !shouldFail
		},
	})
	c.AddSubTest("sub", func() bool { return !shouldFail })

	assert.False(t, c.Run())
	require.Len(t, c.ErrorMessages(), 2)
	require.Len(t, c.InfoMessages(), 1)

	shouldFail = false
	assert.True(t, c.Run())
	assert.Empty(t, c.ErrorMessages(), "errors from the previous run must not leak")
	assert.Equal(t, []string{"note"}, c.InfoMessages(), "info messages must restart, not accumulate")
	assert.Equal(t, 1, c.PassedSubTestCount())
}

// TestRun_InSubTestWindow tests the flag across the whole subtest loop,
// including observer callbacks.
func TestRun_InSubTestWindow(t *testing.T) {
	type flagSample struct {
		phase string
		inSub bool
	}
	var samples []flagSample

	obs := observerFunc{
		before: func(c *Case) {
			samples = append(samples, flagSample{"beforeSetUp", c.InSubTest()})
		},
		after: func(c *Case) {
			samples = append(samples, flagSample{"afterTearDown", c.InSubTest()})
		},
	}

	c := New("f.go", "t", Hooks{}, WithObserver(obs))
	c.AddSubTest("sub", func() bool { return true })

	require.True(t, c.Run())

	assert.Equal(t, []flagSample{
		{"beforeSetUp", false},
		{"afterTearDown", false},
		{"beforeSetUp", true},
		{"afterTearDown", true},
	}, samples)
	assert.False(t, c.InSubTest(), "the flag must be lowered after the loop")
}

// observerFunc adapts two closures into a PhaseObserver.
type observerFunc struct {
	before func(*Case)
	after  func(*Case)
}

func (o observerFunc) BeforeSetUp(c *Case)   { o.before(c) }
func (o observerFunc) AfterTearDown(c *Case) { o.after(c) }
