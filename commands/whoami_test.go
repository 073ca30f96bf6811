package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhoami(t *testing.T) {
	cases := goldenTestSuite{
		"no-arg":     {"whoami"},
		"extra-args": {"whoami --help"},
	}

	cases.Run(t)
}

func TestWhoami_configured(t *testing.T) {
	in := &Interpreter{Identity: Identity{User: "guest"}}

	assert.Equal(t, "guest", in.Run("whoami", 64))
}
