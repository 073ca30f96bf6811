package kshell

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind identifies which builtin a command line resolved to.
type Kind int

const (
	KindUnknown Kind = iota
	KindHelp
	KindClear
	KindList
	KindCat
	KindWhoami
	KindDate
	KindEcho
	KindOSInfo
	KindReadSector0
)

// Command names as typed by the user.
const (
	NameHelp        = "help"
	NameClear       = "clear"
	NameList        = "ls"
	NameCat         = "cat"
	NameWhoami      = "whoami"
	NameDate        = "date"
	NameEcho        = "echo"
	NameOSInfo      = "os"
	NameReadSector0 = "read"
)

var kindNames = [...]string{
	KindUnknown:     "unknown",
	KindHelp:        NameHelp,
	KindClear:       NameClear,
	KindList:        NameList,
	KindCat:         NameCat,
	KindWhoami:      NameWhoami,
	KindDate:        NameDate,
	KindEcho:        NameEcho,
	KindOSInfo:      NameOSInfo,
	KindReadSector0: NameReadSector0,
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// Command is a single parsed shell invocation.
type Command struct {
	Kind Kind
	// Name holds the first token exactly as typed.
	Name string
	// Args holds the remaining tokens.
	Args []string
	// Line holds the full trimmed command line.
	Line string
}

// Parse classifies a trimmed command line. Names match exactly and are case
// sensitive. It reports false if the line holds no tokens.
func Parse(line string) (Command, bool) {
	tokens := Fields(line)
	if len(tokens) == 0 {
		return Command{}, false
	}

	cmd := Command{
		Kind: lookupKind(tokens[0]),
		Name: tokens[0],
		Args: tokens[1:],
		Line: line,
	}
	return cmd, true
}

func lookupKind(name string) Kind {
	switch name {
	case NameHelp:
		return KindHelp
	case NameClear:
		return KindClear
	case NameList:
		return KindList
	case NameCat:
		return KindCat
	case NameWhoami:
		return KindWhoami
	case NameDate:
		return KindDate
	case NameEcho:
		return KindEcho
	case NameOSInfo:
		return KindOSInfo
	case NameReadSector0:
		return KindReadSector0
	default:
		return KindUnknown
	}
}

// Argv returns the command name followed by its arguments.
func (c Command) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

// Filename returns the first argument, or false if there is none.
func (c Command) Filename() (string, bool) {
	if len(c.Args) == 0 {
		return "", false
	}
	return c.Args[0], true
}

// EchoText returns the text an echo command prints.
//
// By default the text is the raw remainder of the line after the command name
// and the single separator that follows it, so runs of spaces between words
// are kept as typed. With normalize set the arguments are re-joined with single
// spaces instead.
func (c Command) EchoText(normalize bool) string {
	if len(c.Args) == 0 {
		return ""
	}
	if normalize {
		return strings.Join(c.Args, " ")
	}

	rest := strings.TrimPrefix(c.Line, c.Name)
	if r, size := utf8.DecodeRuneInString(rest); size > 0 && unicode.IsSpace(r) {
		rest = rest[size:]
	}
	return rest
}
