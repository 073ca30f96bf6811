// Package console runs interactive kernel shell sessions over a terminal.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"github.com/josephlewis42/mithlsh/commands"
	"github.com/josephlewis42/mithlsh/core/kshell"
	"github.com/juju/ratelimit"
)

const (
	// ExitCommand ends the session, it's handled by the console rather than the
	// interpreter.
	ExitCommand = "exit"

	// ClearScreen homes the cursor and erases the display on VT100 terminals.
	ClearScreen = "\x1b[H\x1b[2J"

	DefaultPrompt = "mithl# "
	DefaultWidth  = 80
)

// ErrFault is returned when a session ended because of a panic.
var ErrFault = errors.New("session fault")

// FaultReporter is told about panics that end a session.
type FaultReporter interface {
	ReportFault(context string, recovered interface{}, stack []byte)
}

// Session connects one terminal to an Interpreter.
type Session struct {
	Interpreter *commands.Interpreter

	Prompt string
	// Capacity is the size of the output buffer handed to the interpreter,
	// responses longer than this are clipped.
	Capacity int

	// PTY sessions get line editing, a colored prompt and screen clearing.
	PTY bool
	// Width reports the terminal width, it may be nil.
	Width func() int
	// MakeRaw and ExitRaw switch a local terminal in and out of raw mode. They
	// may be nil for remote terminals.
	MakeRaw func() error
	ExitRaw func() error

	// BaudRate limits output to the given bytes per second, 0 is unlimited.
	BaudRate int
	Motd     string

	Faults FaultReporter
}

type lineReader interface {
	ReadLine() ([]byte, error)
	Close() error
}

// Run reads commands from rw until the client exits, the input closes or ctx
// is canceled. Cancellation is checked between lines.
func (s *Session) Run(ctx context.Context, rw io.ReadWriter) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if s.Faults != nil {
				s.Faults.ReportFault("console session", r, debug.Stack())
			}
			err = fmt.Errorf("%w: %v", ErrFault, r)
		}
	}()

	out := s.output(rw)

	lines, err := s.lineReader(rw, out)
	if err != nil {
		return err
	}
	defer lines.Close()

	if s.Motd != "" {
		if err := s.writeResponse(out, s.Motd); err != nil {
			return err
		}
	}

	capacity := s.Capacity
	if capacity <= 0 {
		capacity = kshell.ScratchSize
	}
	response := make([]byte, capacity)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, readErr := lines.ReadLine()
		switch {
		case errors.Is(readErr, readline.ErrInterrupt):
			continue
		case readErr != nil && readErr != io.EOF:
			return readErr
		case readErr == io.EOF && len(raw) == 0:
			return nil
		}

		if cmd, ok := parse(raw); ok {
			if cmd.Name == ExitCommand {
				return nil
			}
			if cmd.Kind == kshell.KindClear && s.PTY {
				if _, err := io.WriteString(out, ClearScreen); err != nil {
					return err
				}
			}
		}

		n := s.Interpreter.HandleCommand(raw, response)
		if n > 0 {
			if err := s.writeResponse(out, string(response[:n])); err != nil {
				return err
			}
		}

		if readErr == io.EOF {
			return nil
		}
	}
}

func parse(raw []byte) (kshell.Command, bool) {
	line, ok := kshell.DecodeLine(raw)
	if !ok {
		return kshell.Command{}, false
	}
	return kshell.Parse(line)
}

func (s *Session) writeResponse(w io.Writer, text string) error {
	text = strings.TrimSuffix(text, "\n") + "\n"
	if s.PTY {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	_, err := io.WriteString(w, text)
	return err
}

func (s *Session) output(w io.Writer) io.Writer {
	if s.BaudRate <= 0 {
		return w
	}

	rate := int64(s.BaudRate)
	return ratelimit.Writer(w, ratelimit.NewBucketWithRate(float64(rate), rate))
}

func (s *Session) prompt() string {
	prompt := s.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}
	if !s.PTY {
		return prompt
	}

	c := color.New(color.FgGreen, color.Bold)
	c.EnableColor()
	return c.Sprint(prompt)
}

func (s *Session) lineReader(r io.Reader, out io.Writer) (lineReader, error) {
	if !s.PTY {
		return &rawLineReader{r: bufio.NewReader(r), out: out, prompt: s.prompt()}, nil
	}

	width := s.Width
	if width == nil {
		width = func() int { return DefaultWidth }
	}
	nop := func() error { return nil }
	makeRaw, exitRaw := s.MakeRaw, s.ExitRaw
	if makeRaw == nil {
		makeRaw = nop
	}
	if exitRaw == nil {
		exitRaw = nop
	}

	cfg := &readline.Config{
		Prompt:       s.prompt(),
		HistoryLimit: -1,
		Stdin:        readline.NewCancelableStdin(r),
		Stdout:       out,
		Stderr:       out,
		FuncGetWidth: width,
		FuncIsTerminal: func() bool {
			return true
		},
		FuncMakeRaw:         makeRaw,
		FuncExitRaw:         exitRaw,
		FuncOnWidthChanged:  func(func()) {},
		ForceUseInteractive: true,
	}
	if err := cfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}

	return &readlineReader{rl: rl}, nil
}

type readlineReader struct {
	rl *readline.Instance
}

func (r *readlineReader) ReadLine() ([]byte, error) {
	line, err := r.rl.Readline()
	return []byte(line), err
}

func (r *readlineReader) Close() error {
	return r.rl.Close()
}

// rawLineReader passes bytes through untouched so the interpreter sees exactly
// what the client sent.
type rawLineReader struct {
	r      *bufio.Reader
	out    io.Writer
	prompt string
}

func (r *rawLineReader) ReadLine() ([]byte, error) {
	if _, err := io.WriteString(r.out, r.prompt); err != nil {
		return nil, err
	}
	return r.r.ReadBytes('\n')
}

func (r *rawLineReader) Close() error {
	return nil
}
