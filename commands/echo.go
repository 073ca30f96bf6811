package commands

import "github.com/josephlewis42/mithlsh/core/kshell"

// Echo prints its arguments. With no arguments the response is empty.
func Echo(in *Interpreter, cmd kshell.Command, resp *kshell.ResponseBuffer) {
	resp.SetString(cmd.EchoText(in.Identity.NormalizeEcho))
}

var _ CommandFunc = Echo
