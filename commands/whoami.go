package commands

import "github.com/josephlewis42/mithlsh/core/kshell"

// Whoami prints the current user.
func Whoami(in *Interpreter, cmd kshell.Command, resp *kshell.ResponseBuffer) {
	resp.SetString(in.Identity.user())
}

var _ CommandFunc = Whoami
