package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/josephlewis42/mithlsh/commands"
	"github.com/josephlewis42/mithlsh/core/kshell/kshelltest"
	"github.com/josephlewis42/mithlsh/core/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// terminal is written to by readline's goroutines in PTY mode.
type terminal struct {
	in *strings.Reader

	mu  sync.Mutex
	out bytes.Buffer
}

func (t *terminal) Read(p []byte) (int, error) {
	return t.in.Read(p)
}

func (t *terminal) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.out.Write(p)
}

func (t *terminal) Output() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.out.String()
}

func newTerminal(input string) *terminal {
	return &terminal{in: strings.NewReader(input)}
}

func newSession() *Session {
	return &Session{
		Interpreter: &commands.Interpreter{
			Disk:  kshelltest.NewBootDisk(),
			Files: kshelltest.NewFiles(map[string]string{"README.txt": "Hello, world!"}),
		},
		Prompt: "> ",
	}
}

func TestSession_Run(t *testing.T) {
	cases := map[string]struct {
		input    string
		capacity int
		expected string
	}{
		"single-command": {
			input:    "whoami\n",
			expected: "> root\n> ",
		},
		"no-trailing-newline": {
			input:    "whoami",
			expected: "> root\n",
		},
		"exit-stops-session": {
			input:    "whoami\nexit\nwhoami\n",
			expected: "> root\n> ",
		},
		"blank-lines": {
			input:    "\n   \nwhoami\n",
			expected: "> > > root\n> ",
		},
		"invalid-utf8": {
			input:    "\xff\xfe\n",
			expected: "> > ",
		},
		"clipped": {
			input:    "cat README.txt\n",
			capacity: 5,
			expected: "> Hello\n> ",
		},
		"crlf-line-endings": {
			input:    "cat README.txt\r\n",
			expected: "> Hello, world!\n> ",
		},
		"clear-non-pty": {
			input:    "clear\n",
			expected: "> > ",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			term := newTerminal(tc.input)
			session := newSession()
			session.Capacity = tc.capacity

			err := session.Run(context.Background(), term)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, term.Output())
		})
	}
}

func TestSession_Run_motd(t *testing.T) {
	term := newTerminal("")
	session := newSession()
	session.Motd = "Welcome"

	require.NoError(t, session.Run(context.Background(), term))
	assert.Equal(t, "Welcome\n> ", term.Output())
}

func TestSession_Run_canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	term := newTerminal("whoami\n")
	err := newSession().Run(ctx, term)

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, term.Output())
}

func TestSession_Run_baudRate(t *testing.T) {
	term := newTerminal("whoami\n")
	session := newSession()
	session.BaudRate = 1 << 20

	require.NoError(t, session.Run(context.Background(), term))
	assert.Equal(t, "> root\n> ", term.Output())
}

func TestSession_Run_pty(t *testing.T) {
	term := newTerminal("whoami\rclear\rexit\r")
	session := newSession()
	session.PTY = true

	require.NoError(t, session.Run(context.Background(), term))

	out := term.Output()
	assert.Contains(t, out, "root\r\n")
	assert.Contains(t, out, ClearScreen)
}

type brokenTerminal struct{}

func (brokenTerminal) Read(p []byte) (int, error)  { return 0, io.EOF }
func (brokenTerminal) Write(p []byte) (int, error) { return 0, io.ErrClosedPipe }

func TestSession_Run_motdWriteError(t *testing.T) {
	session := newSession()
	session.Motd = "Welcome"

	err := session.Run(context.Background(), brokenTerminal{})

	assert.True(t, errors.Is(err, io.ErrClosedPipe))
}

type panickingFiles struct{}

func (panickingFiles) ListFiles(buf []byte) (int, error) {
	panic("listing exploded")
}

func (panickingFiles) ReadFile(name string, buf []byte) (int, error) {
	panic("read exploded")
}

type recordedFault struct {
	context   string
	recovered interface{}
	stack     []byte
}

func (r *recordedFault) ReportFault(context string, recovered interface{}, stack []byte) {
	r.context = context
	r.recovered = recovered
	r.stack = stack
}

func TestSession_Run_fault(t *testing.T) {
	faults := &recordedFault{}
	session := newSession()
	session.Interpreter.Files = panickingFiles{}
	session.Faults = faults

	err := session.Run(context.Background(), newTerminal("ls\nwhoami\n"))

	assert.True(t, errors.Is(err, ErrFault))
	assert.Equal(t, "listing exploded", faults.recovered)
	assert.NotEmpty(t, faults.stack)
}

func TestEventFaults(t *testing.T) {
	var entries []*logger.LogEntry
	events := &logger.Logger{Record: func(le *logger.LogEntry) error {
		entries = append(entries, le)
		return nil
	}}

	session := newSession()
	session.Interpreter.Files = panickingFiles{}
	session.Faults = &EventFaults{Events: events.WithSessionID("s1")}

	err := session.Run(context.Background(), newTerminal("cat README.txt\n"))
	assert.Error(t, err)

	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Panic)
	assert.Equal(t, "s1", entries[0].SessionID)
	assert.Equal(t, "console session: read exploded", entries[0].Panic.Context)
}

func TestEventFaults_noRecorder(t *testing.T) {
	faults := &EventFaults{}

	assert.NotPanics(t, func() {
		faults.ReportFault("console session", "boom", nil)
	})
}
