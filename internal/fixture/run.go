package fixture

import "fmt"

// Run executes the case. The phases are called in the following order:
//
//  1. Initialize, only if this is the case's first Run
//  2. setUp; on success the test method, otherwise both the test method
//     and the whole subtest loop are skipped
//  3. tearDown
//  4. for every registered subtest: setUp, the subtest on success,
//     tearDown
//  5. Finalize
//
// Observers fire around every setUp/tearDown sandwich. A failed main
// setUp records "<file> setUp() failed!"; a failed subtest setUp records
// a SKIPPED message for that subtest only and the loop continues.
//
// Run returns the verdict of Passed: the case ran and recorded no errors.
func (c *Case) Run() bool {
	c.reset()
	c.ran = true
	c.logger.Debug("case run started", "name", c.name, "file", c.file)

	if !c.initialized {
		c.initialized = true
		if c.hooks.Initialize != nil {
			c.hooks.Initialize()
		}
	}

	skipAllSubTests := false
	c.notifyBeforeSetUp()
	if c.setUp() {
		if !c.testMethod() {
			c.AddError(fmt.Sprintf("  <%s> failed!", c.file))
		}
	} else {
		skipAllSubTests = true
		c.AddError(fmt.Sprintf("  <%s> setUp() failed!", c.file))
	}
	c.tearDown()
	c.notifyAfterTearDown()

	if !skipAllSubTests {
		c.inSubTest = true
		for i := 0; i < len(c.subTests); i++ {
			c.currentSubTest = i
			st := c.subTests[i]

			c.notifyBeforeSetUp()
			if c.setUp() {
				if st.fn() {
					c.passedSubTests++
				} else {
					c.AddError(fmt.Sprintf("  <%s> failed!", st.name))
				}
			} else {
				c.AddError(fmt.Sprintf("  <%s> SKIPPED due to setUp() failed!", st.name))
			}
			c.tearDown()
			c.notifyAfterTearDown()
		}
		c.inSubTest = false
	}

	if c.hooks.Finalize != nil {
		c.hooks.Finalize()
	}

	passed := c.Passed()
	c.logger.Debug("case run finished",
		"name", c.name,
		"passed", passed,
		"errors", len(c.errorMessages),
		"sub_tests_passed", c.passedSubTests,
		"sub_tests", len(c.subTests),
	)
	return passed
}

func (c *Case) setUp() bool {
	if c.hooks.SetUp == nil {
		return true
	}
	return c.hooks.SetUp()
}

func (c *Case) testMethod() bool {
	if c.hooks.TestMethod == nil {
		return true
	}
	return c.hooks.TestMethod()
}

func (c *Case) tearDown() {
	if c.hooks.TearDown != nil {
		c.hooks.TearDown()
	}
}

func (c *Case) notifyBeforeSetUp() {
	for _, o := range c.observers {
		o.BeforeSetUp(c)
	}
}

func (c *Case) notifyAfterTearDown() {
	for _, o := range c.observers {
		o.AfterTearDown(c)
	}
}
