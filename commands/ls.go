package commands

import (
	"errors"

	"github.com/josephlewis42/mithlsh/core/kshell"
)

// ListFailed is the response when the filesystem can't produce a listing.
const ListFailed = "Failed to list files."

var errNoFilesystem = errors.New("no filesystem attached")

// List passes the filesystem's directory listing through verbatim.
func List(in *Interpreter, cmd kshell.Command, resp *kshell.ResponseBuffer) {
	if in.Files == nil {
		in.serviceFailure(cmd, resp, "fs", errNoFilesystem, ListFailed)
		return
	}

	if err := resp.Fill(in.Files.ListFiles); err != nil {
		in.serviceFailure(cmd, resp, "fs", err, ListFailed)
	}
}

var _ CommandFunc = List
