package commands

import "github.com/josephlewis42/mithlsh/core/kshell"

// Clear produces an empty response, the terminal clears its own screen.
func Clear(in *Interpreter, cmd kshell.Command, resp *kshell.ResponseBuffer) {
	resp.Reset()
}

var _ CommandFunc = Clear
