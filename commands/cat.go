package commands

import (
	"github.com/josephlewis42/mithlsh/core/kshell"
)

// Responses from cat.
const (
	CatUsage           = "Usage: cat <filename>"
	CatFilenameTooLong = "Filename too long."
	CatReadFailed      = "File not found or read error."
)

// Cat shows the contents of the file named by the first argument. Any further
// arguments are ignored.
func Cat(in *Interpreter, cmd kshell.Command, resp *kshell.ResponseBuffer) {
	filename, ok := cmd.Filename()
	switch {
	case !ok:
		in.invalidInvocation(cmd, resp, CatUsage)
		return
	case len(filename) > kshell.MaxFilenameLen:
		in.invalidInvocation(cmd, resp, CatFilenameTooLong)
		return
	case in.Files == nil:
		in.serviceFailure(cmd, resp, "fs", errNoFilesystem, CatReadFailed)
		return
	}

	err := resp.Fill(func(buf []byte) (int, error) {
		return in.Files.ReadFile(filename, buf)
	})
	if err != nil {
		in.serviceFailure(cmd, resp, "fs", err, CatReadFailed)
	}
}

var _ CommandFunc = Cat
