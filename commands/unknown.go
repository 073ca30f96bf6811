package commands

import "github.com/josephlewis42/mithlsh/core/kshell"

// UnknownResponse is printed for any unrecognized command.
const UnknownResponse = "Unknown command. Type 'help' for list."

// Unknown handles names that match no builtin.
func Unknown(in *Interpreter, cmd kshell.Command, resp *kshell.ResponseBuffer) {
	resp.SetString(UnknownResponse)
}

var _ CommandFunc = Unknown
