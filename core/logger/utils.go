package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(le *LogEntry) error

// EventRecorder is the interface components use to record events.
type EventRecorder interface {
	Record(event LogType) error
}

// Logger captures interaction event logs for the shell.
type Logger struct {
	Record LogRecorder

	// Now is used to timestamp entries.
	Now func() time.Time
}

// NewJsonLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format. It's safe to use from multiple sessions.
func NewJsonLinesLogRecorder(w io.Writer) *Logger {
	var mu sync.Mutex

	return &Logger{
		Record: func(le *LogEntry) error {
			entry, err := json.Marshal(le)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
		Now: time.Now,
	}
}

func (l *Logger) recordLogType(sessionID string, event LogType) error {
	now := time.Now
	if l.Now != nil {
		now = l.Now
	}

	le := &LogEntry{}
	le.TimestampMicros = now().UnixMicro()
	le.SessionID = sessionID
	event.attach(le)

	return l.Record(le)
}

// NewSession creates a logger with attached session ID.
func (l *Logger) NewSession() *SessionLogger {
	return l.WithSessionID(uuid.NewString())
}

// WithSessionID creates a logger with the given session ID.
func (l *Logger) WithSessionID(sessionID string) *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: sessionID}
}

// Sessionless creates a logger without a session ID.
func (l *Logger) Sessionless() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: ""}
}

// SessionLogger logs messages with a shared session ID.
type SessionLogger struct {
	*Logger
	sessionID string
}

var _ EventRecorder = (*SessionLogger)(nil)

// SessionID returns the ID attached to every event.
func (l *SessionLogger) SessionID() string {
	return l.sessionID
}

func (l *SessionLogger) Record(event LogType) error {
	return l.recordLogType(l.sessionID, event)
}

// NopRecorder discards all events.
type NopRecorder struct{}

var _ EventRecorder = NopRecorder{}

func (NopRecorder) Record(LogType) error {
	return nil
}
