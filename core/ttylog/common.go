// Package ttylog records and replays terminal sessions.
package ttylog

import (
	"io"
	"log"
	"sync"
	"time"
)

// FD identifies the stream a chunk of terminal IO belongs to.
type FD int

const (
	FDStdin FD = iota
	FDStdout
	FDStderr
)

// Entry is a single recorded terminal event.
type Entry struct {
	TimestampMicros int64
	// Close is set when the terminal closed, FD and Data are unset.
	Close bool
	FD    FD
	Data  []byte
}

// LogSink receives log events.
type LogSink func(e *Entry) error

// LogSource adapts log readers.
type LogSource interface {
	// Next fetches the next available log entry. It returns io.EOF if the source
	// has no more log entries.
	Next() (*Entry, error)
}

// NewRealTimePlayback plays back the results in real-time.
// If maxSleep > 0, it's used as the maximum duration to pause.
func NewRealTimePlayback(maxSleep time.Duration, next LogSink) LogSink {
	var once sync.Once
	var prevTimeMicros int64

	return func(entry *Entry) error {
		once.Do(func() {
			prevTimeMicros = entry.TimestampMicros
		})

		delta := entry.TimestampMicros - prevTimeMicros
		prevTimeMicros = entry.TimestampMicros

		if maxSleep > 0 {
			sleepDuration := time.Duration(delta) * time.Microsecond
			if sleepDuration > maxSleep {
				sleepDuration = maxSleep
			}
			time.Sleep(sleepDuration)
		}

		return next(entry)
	}
}

// NewClientOutput writes stdout and stderr to the given writer
func NewClientOutput(w io.Writer) LogSink {
	return func(entry *Entry) error {
		if entry.Close || entry.FD == FDStdin {
			return nil
		}
		_, err := w.Write(entry.Data)
		return err
	}
}

// Replay reads a stream of events to a callback.
func Replay(recording LogSource, callback LogSink) error {
	for {
		entry, err := recording.Next()
		switch {
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		}

		if err := callback(entry); err != nil {
			return err
		}
	}
}

// Recorder wraps a terminal, forwarding everything read from or written to
// it to a LogSink.
type Recorder struct {
	wrapped io.ReadWriter
	now     func() time.Time

	mutex  sync.Mutex
	output LogSink
}

var _ io.ReadWriteCloser = (*Recorder)(nil)

// NewRecorder creates a logger that forwards all events to output.
func NewRecorder(toWrap io.ReadWriter, output LogSink) *Recorder {
	return &Recorder{
		wrapped: toWrap,
		now:     time.Now,
		output:  output,
	}
}

func (r *Recorder) record(entry *Entry) {
	r.mutex.Lock()
	err := r.output(entry)
	r.mutex.Unlock()
	if err != nil {
		log.Print(err)
	}
}

func (r *Recorder) Read(p []byte) (int, error) {
	eventTime := r.now()
	n, err := r.wrapped.Read(p)
	if n > 0 {
		r.record(&Entry{
			TimestampMicros: eventTime.UnixMicro(),
			FD:              FDStdin,
			Data:            append([]byte(nil), p[:n]...),
		})
	}
	return n, err
}

func (r *Recorder) Write(p []byte) (int, error) {
	eventTime := r.now()
	n, err := r.wrapped.Write(p)
	if n > 0 {
		r.record(&Entry{
			TimestampMicros: eventTime.UnixMicro(),
			FD:              FDStdout,
			Data:            append([]byte(nil), p[:n]...),
		})
	}
	return n, err
}

// Close records the end of the session, it doesn't close the wrapped
// terminal.
func (r *Recorder) Close() error {
	r.record(&Entry{
		TimestampMicros: r.now().UnixMicro(),
		Close:           true,
	})
	return nil
}
