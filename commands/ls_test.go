package commands

import (
	"testing"

	"github.com/josephlewis42/mithlsh/core/kshell"
	"github.com/josephlewis42/mithlsh/core/kshell/kshelltest"
	"github.com/stretchr/testify/assert"
)

func TestList(t *testing.T) {
	in, _, files := newTestInterpreter()
	files.Listing = []byte("0123456789")

	output := make([]byte, 2048)
	for i := range output {
		output[i] = 0xff
	}

	n := in.HandleCommand([]byte("ls"), output)

	assert.Equal(t, 10, n)
	assert.Equal(t, "0123456789", string(output[:10]))
	assert.Equal(t, byte(0), output[10])
	assert.Equal(t, byte(0xff), output[11])
	assert.Equal(t, 1, files.Lists)
}

func TestList_verbatim(t *testing.T) {
	in, _, files := newTestInterpreter()
	files.Listing = []byte("a\x00b\r\n\tc")

	assert.Equal(t, "a\x00b\r\n\tc", in.Run("ls -la", kshell.ScratchSize))
}

func TestList_failure(t *testing.T) {
	in, _, files := newTestInterpreter()
	files.ListErr = kshelltest.ErrInjected

	assert.Equal(t, ListFailed, in.Run("ls", kshell.ScratchSize))

	assert.Equal(t, ListFailed, (&Interpreter{}).Run("ls", kshell.ScratchSize))
}
