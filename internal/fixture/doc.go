// Package fixture runs a test case through a fixed lifecycle and collects
// its outcome as ordered info and error messages.
//
// A Case is built from Hooks, plain functions bound at construction:
//
//	c := fixture.New("color_test.go", "color sanity", fixture.Hooks{
//		SetUp:      func() bool { return openScene() },
//		TestMethod: func() bool { return checkScene(c) },
//		TearDown:   func() { closeScene() },
//	})
//	c.AddSubTest("red channel", func() bool { ... })
//	passed := c.Run()
//
// Run drives the phases in a fixed order: Initialize (once per Case
// lifetime), then setUp, the test method and tearDown, then the same
// setUp/tearDown sandwich around every registered subtest, and Finalize
// last. A failed setUp skips the guarded body but never the matching
// tearDown. The verdict is simply "the case ran and recorded no errors".
//
// Components that need to act around every sandwich, such as a timing
// store that must be cleared before and reported after each phase, attach
// a PhaseObserver instead of wrapping the hooks themselves.
//
// Assertions are package-level functions that record a formatted error on
// the case and report the verdict back: they never panic and never abort
// the run, so one phase can collect any number of failures.
//
// Thread-safety: a Case is not safe for concurrent use. Run, the hooks,
// the assertions and the accessors are all meant to be called from one
// goroutine.
package fixture
