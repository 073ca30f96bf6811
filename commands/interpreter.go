package commands

import (
	"log"

	"github.com/josephlewis42/mithlsh/core/kshell"
	"github.com/josephlewis42/mithlsh/core/logger"
)

// Defaults for the fixed strings reported by whoami, os and date.
const (
	DefaultUser   = "root"
	DefaultOSName = "Mithl OS v0.4 (Rust Shell Enabled)"
	// DefaultDate is reported until a real-time clock is wired up.
	DefaultDate = "Sat Dec 14 01:15:00 UTC 2025"
)

// CommandFunc runs a parsed command, writing its result to resp.
type CommandFunc func(in *Interpreter, cmd kshell.Command, resp *kshell.ResponseBuffer)

// Identity holds what the shell reports about the machine.
type Identity struct {
	User   string
	OSName string
	Date   string
	// NormalizeEcho re-joins echo arguments with single spaces rather than
	// printing the rest of the line as typed.
	NormalizeEcho bool
}

func (id Identity) user() string {
	return valueOr(id.User, DefaultUser)
}

func (id Identity) osName() string {
	return valueOr(id.OSName, DefaultOSName)
}

func (id Identity) date() string {
	return valueOr(id.Date, DefaultDate)
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// Interpreter turns raw command lines into bounded responses.
//
// It holds no per-call state so a single Interpreter can serve any number of
// sessions at once, provided its collaborators can.
type Interpreter struct {
	Disk     kshell.SectorReader
	Files    kshell.FileStore
	Identity Identity
	// Events receives a record of every command, it may be nil.
	Events logger.EventRecorder
}

// HandleCommand runs one raw line of input and writes the response into
// output. It returns the number of bytes written, never more than
// len(output). A NUL follows the response when there's room for it.
//
// Input that isn't valid UTF-8 or holds no command produces no output.
func (in *Interpreter) HandleCommand(input, output []byte) int {
	line, ok := kshell.DecodeLine(input)
	if !ok {
		in.record(&logger.InvalidInvocation{Error: "input is not valid UTF-8"})
		return 0
	}

	cmd, ok := kshell.Parse(line)
	if !ok {
		return 0
	}

	var resp kshell.ResponseBuffer
	in.Dispatch(cmd, &resp)
	return resp.CopyTo(output)
}

// Run executes a line and returns the full response, clipped to capacity.
func (in *Interpreter) Run(line string, capacity int) string {
	out := make([]byte, capacity)
	n := in.HandleCommand([]byte(line), out)
	return string(out[:n])
}

// Dispatch routes a parsed command to its builtin.
func (in *Interpreter) Dispatch(cmd kshell.Command, resp *kshell.ResponseBuffer) {
	if cmd.Kind == kshell.KindUnknown {
		in.record(&logger.UnknownCommand{Command: cmd.Argv()})
	} else {
		in.record(&logger.RunCommand{Command: cmd.Argv(), Kind: cmd.Kind.String()})
	}

	switch cmd.Kind {
	case kshell.KindHelp:
		Help(in, cmd, resp)
	case kshell.KindClear:
		Clear(in, cmd, resp)
	case kshell.KindList:
		List(in, cmd, resp)
	case kshell.KindCat:
		Cat(in, cmd, resp)
	case kshell.KindWhoami:
		Whoami(in, cmd, resp)
	case kshell.KindDate:
		Date(in, cmd, resp)
	case kshell.KindEcho:
		Echo(in, cmd, resp)
	case kshell.KindOSInfo:
		OSInfo(in, cmd, resp)
	case kshell.KindReadSector0:
		ReadSector0(in, cmd, resp)
	default:
		Unknown(in, cmd, resp)
	}
}

func (in *Interpreter) record(event logger.LogType) {
	if in.Events == nil {
		return
	}
	if err := in.Events.Record(event); err != nil {
		log.Printf("couldn't record event: %v", err)
	}
}

// invalidInvocation records a usage error and responds with msg.
func (in *Interpreter) invalidInvocation(cmd kshell.Command, resp *kshell.ResponseBuffer, msg string) {
	in.record(&logger.InvalidInvocation{Command: cmd.Argv(), Error: msg})
	resp.SetString(msg)
}

// serviceFailure records a collaborator error and responds with msg.
func (in *Interpreter) serviceFailure(cmd kshell.Command, resp *kshell.ResponseBuffer, service string, err error, msg string) {
	in.record(&logger.ServiceFailure{Command: cmd.Argv(), Service: service, Error: err.Error()})
	resp.SetString(msg)
}
