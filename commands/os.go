package commands

import "github.com/josephlewis42/mithlsh/core/kshell"

// OSInfo prints the operating system identification string.
func OSInfo(in *Interpreter, cmd kshell.Command, resp *kshell.ResponseBuffer) {
	resp.SetString(in.Identity.osName())
}

var _ CommandFunc = OSInfo
