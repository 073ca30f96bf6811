package commands

import "testing"

func TestHelp(t *testing.T) {
	cases := goldenTestSuite{
		"no-arg":     {"help"},
		"extra-args": {"help me please"},
	}

	cases.Run(t)
}
