package commands

import "github.com/josephlewis42/mithlsh/core/kshell"

// HelpText is the usage summary printed by help.
const HelpText = "Available commands:\n" +
	"  ls    - List files\n" +
	"  cat   - Show file content\n" +
	"  whoami- Current user\n" +
	"  date  - System date\n" +
	"  clear - Clear screen\n" +
	"  echo  - Echo text\n" +
	"  os    - OS Info\n" +
	"  read  - Read Sector 0"

// Help lists the builtin commands, arguments are ignored.
func Help(in *Interpreter, cmd kshell.Command, resp *kshell.ResponseBuffer) {
	resp.SetString(HelpText)
}

var _ CommandFunc = Help
