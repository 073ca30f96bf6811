package logger

// LogEntry is a single line of the event log. Exactly one of the event fields
// is set.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`

	LoginAttempt      *LoginAttempt      `json:"login_attempt,omitempty"`
	RunCommand        *RunCommand        `json:"run_command,omitempty"`
	UnknownCommand    *UnknownCommand    `json:"unknown_command,omitempty"`
	InvalidInvocation *InvalidInvocation `json:"invalid_invocation,omitempty"`
	ServiceFailure    *ServiceFailure    `json:"service_failure,omitempty"`
	OpenTTYLog        *OpenTTYLog        `json:"open_tty_log,omitempty"`
	Panic             *Panic             `json:"panic,omitempty"`
}

// LogType is implemented by every event that can be recorded.
type LogType interface {
	attach(le *LogEntry)
}

// GetLogType returns the event stored in the entry or nil if there is none.
func (le *LogEntry) GetLogType() LogType {
	switch {
	case le.LoginAttempt != nil:
		return le.LoginAttempt
	case le.RunCommand != nil:
		return le.RunCommand
	case le.UnknownCommand != nil:
		return le.UnknownCommand
	case le.InvalidInvocation != nil:
		return le.InvalidInvocation
	case le.ServiceFailure != nil:
		return le.ServiceFailure
	case le.OpenTTYLog != nil:
		return le.OpenTTYLog
	case le.Panic != nil:
		return le.Panic
	default:
		return nil
	}
}

// OperationResult is the outcome of an authentication attempt.
type OperationResult string

const (
	OperationResultSuccess OperationResult = "SUCCESS"
	OperationResultFailure OperationResult = "FAILURE"
)

// LoginAttempt is recorded when a terminal session authenticates.
type LoginAttempt struct {
	Result     OperationResult `json:"result"`
	Username   string          `json:"username"`
	PublicKey  []byte          `json:"public_key,omitempty"`
	RemoteAddr string          `json:"remote_addr,omitempty"`
	Term       string          `json:"term,omitempty"`
	IsPTY      bool            `json:"is_pty,omitempty"`
}

func (e *LoginAttempt) attach(le *LogEntry) { le.LoginAttempt = e }

// RunCommand is recorded for every recognized command.
type RunCommand struct {
	Command []string `json:"command"`
	Kind    string   `json:"kind"`
}

func (e *RunCommand) attach(le *LogEntry) { le.RunCommand = e }

// UnknownCommand is recorded when the first token matches no builtin.
type UnknownCommand struct {
	Command []string `json:"command"`
}

func (e *UnknownCommand) attach(le *LogEntry) { le.UnknownCommand = e }

// InvalidInvocation is recorded when a command was used incorrectly or the
// input couldn't be decoded.
type InvalidInvocation struct {
	Command []string `json:"command"`
	Error   string   `json:"error"`
}

func (e *InvalidInvocation) attach(le *LogEntry) { le.InvalidInvocation = e }

// ServiceFailure is recorded when the disk or filesystem reported an error.
type ServiceFailure struct {
	Command []string `json:"command"`
	Service string   `json:"service"`
	Error   string   `json:"error"`
}

func (e *ServiceFailure) attach(le *LogEntry) { le.ServiceFailure = e }

// OpenTTYLog is recorded when a session recording is started.
type OpenTTYLog struct {
	Name string `json:"name"`
}

func (e *OpenTTYLog) attach(le *LogEntry) { le.OpenTTYLog = e }

// Panic is recorded when a session ends with an unrecovered fault.
type Panic struct {
	Context    string `json:"context"`
	Stacktrace string `json:"stacktrace,omitempty"`
}

func (e *Panic) attach(le *LogEntry) { le.Panic = e }
