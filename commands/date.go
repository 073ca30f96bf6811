package commands

import "github.com/josephlewis42/mithlsh/core/kshell"

// Date prints the configured date string.
func Date(in *Interpreter, cmd kshell.Command, resp *kshell.ResponseBuffer) {
	resp.SetString(in.Identity.date())
}

var _ CommandFunc = Date
