package commands

import "github.com/josephlewis42/mithlsh/core/kshell"

// Builtin describes a recognized command.
type Builtin struct {
	Name  string
	Use   string
	Short string
}

// ListBuiltinCommands returns every command the interpreter recognizes.
func ListBuiltinCommands() []Builtin {
	return []Builtin{
		{Name: kshell.NameHelp, Use: "help", Short: "List available commands."},
		{Name: kshell.NameList, Use: "ls", Short: "List files."},
		{Name: kshell.NameCat, Use: "cat <filename>", Short: "Show file content."},
		{Name: kshell.NameWhoami, Use: "whoami", Short: "Print the current user."},
		{Name: kshell.NameDate, Use: "date", Short: "Print the system date."},
		{Name: kshell.NameClear, Use: "clear", Short: "Clear the screen."},
		{Name: kshell.NameEcho, Use: "echo <text>", Short: "Echo text."},
		{Name: kshell.NameOSInfo, Use: "os", Short: "Print OS information."},
		{Name: kshell.NameReadSector0, Use: "read", Short: "Read disk sector 0 and check the boot signature."},
	}
}
