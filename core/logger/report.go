package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

func NewBugReport() *BugReport {
	return &BugReport{
		InvalidInvocations: NewPathCounter("command", "error"),
		UnknownCommands:    NewPathCounter("command"),
		ServiceFailures:    NewPathCounter("service", "error"),
	}
}

// BugReport pulls events that are likely bugs in the shell or its
// collaborators.
type BugReport struct {
	LogEntries int `json:"log_entries"`

	InvalidInvocations *PathCounter `json:"invalid_invocations"`
	UnknownCommands    *PathCounter `json:"unknown_commands"`
	ServiceFailures    *PathCounter `json:"service_failures"`
	Panics             []*Panic     `json:"panics"`
}

func (r *BugReport) Update(le *LogEntry) {
	r.LogEntries++

	switch event := le.GetLogType().(type) {
	case *Panic:
		r.Panics = append(r.Panics, event)
	case *UnknownCommand:
		r.UnknownCommands.Increment(firstOrEmpty(event.Command))
	case *InvalidInvocation:
		r.InvalidInvocations.Increment(firstOrEmpty(event.Command), event.Error)
	case *ServiceFailure:
		r.ServiceFailures.Increment(event.Service, event.Error)
	}
}

type InteractionReport struct {
	// Map of sessionID -> interactions
	interactions map[string]*InteractiveSession
}

type InteractiveSession struct {
	Login struct {
		Username   string `json:"username"`
		RemoteAddr string `json:"remote_addr,omitempty"`
	} `json:"login"`
	TTYLog       string `json:"tty_log"`
	LogEntries   int    `json:"log_entries"`
	TerminalName string `json:"terminal_name"`
	IsPty        bool   `json:"is_pty"`

	Commands []string `json:"commands"`
}

func (i *InteractiveSession) Update(le *LogEntry) {
	i.LogEntries++

	switch event := le.GetLogType().(type) {
	case *LoginAttempt:
		i.Login.Username = event.Username
		i.Login.RemoteAddr = event.RemoteAddr
		i.TerminalName = event.Term
		i.IsPty = event.IsPTY
	case *RunCommand:
		i.Commands = append(i.Commands, strings.Join(event.Command, " "))
	case *UnknownCommand:
		i.Commands = append(i.Commands, strings.Join(event.Command, " "))
	case *InvalidInvocation:
		i.Commands = append(i.Commands, strings.Join(event.Command, " "))
	case *OpenTTYLog:
		i.TTYLog = event.Name
	}
}

func (i *InteractionReport) init() {
	if i.interactions == nil {
		i.interactions = make(map[string]*InteractiveSession)
	}
}

// MarshalJSON implemnts custom JSON marshaler.
func (i *InteractionReport) MarshalJSON() ([]byte, error) {
	i.init()

	return json.Marshal(i.interactions)
}

func (i *InteractionReport) Update(le *LogEntry) {
	i.init()

	sessionID := le.SessionID
	if sessionID == "" {
		return
	}
	report, ok := i.interactions[sessionID]
	if !ok {
		report = &InteractiveSession{}
		i.interactions[sessionID] = report
	}

	report.Update(le)
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	LoginAttempt      LoginAttemptReport      `json:"login_attempt_report"`
	RunCommand        RunCommandReport        `json:"run_command_report"`
	UnknownCommand    UnknownCommandReport    `json:"unknown_command_report"`
	InvalidInvocation InvalidInvocationReport `json:"invalid_invocation_report"`
	ServiceFailure    ServiceFailureReport    `json:"service_failure_report"`
	Panic             PanicReport             `json:"panic_report"`
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++

	switch event := le.GetLogType().(type) {
	case *LoginAttempt:
		r.LoginAttempt.update(event)
	case *RunCommand:
		r.RunCommand.update(event)
	case *Panic:
		r.Panic.update(event)
	case *UnknownCommand:
		r.UnknownCommand.update(event)
	case *InvalidInvocation:
		r.InvalidInvocation.update(event)
	case *ServiceFailure:
		r.ServiceFailure.update(event)
	case *OpenTTYLog:
		// Ignore
	default:
		r.InvalidEntries.Increment(fmt.Sprintf("%T", event))
	}
}

type LoginAttemptReport struct {
	// List of usernames and their counts.
	Usernames StrCounter `json:"usernames"`
	// List of login attempt results and their counts.
	Results StrCounter `json:"results"`
}

func (r *LoginAttemptReport) update(la *LoginAttempt) {
	r.Usernames.Increment(la.Username)
	r.Results.Increment(string(la.Result))
}

type RunCommandReport struct {
	// Name of the command
	CommandNames StrCounter `json:"command_names"`
}

func (r *RunCommandReport) update(rc *RunCommand) {
	r.CommandNames.Increment(rc.Kind)
}

type UnknownCommandReport struct {
	CommandNames StrCounter `json:"command_names"`
}

func (r *UnknownCommandReport) update(logEntry *UnknownCommand) {
	if len(logEntry.Command) > 0 {
		r.CommandNames.Increment(logEntry.Command[0])
	}
}

type InvalidInvocationReport struct {
	CommandNames StrCounter `json:"command_counts"`
}

func (r *InvalidInvocationReport) update(logEntry *InvalidInvocation) {
	r.CommandNames.Increment(firstOrEmpty(logEntry.Command))
}

type ServiceFailureReport struct {
	Services StrCounter `json:"services"`
	Errors   StrCounter `json:"errors"`
}

func (r *ServiceFailureReport) update(sf *ServiceFailure) {
	r.Services.Increment(sf.Service)
	r.Errors.Increment(sf.Error)
}

type PanicReport struct {
	Contexts []string `json:"contexts"`
}

func (r *PanicReport) update(p *Panic) {
	r.Contexts = append(r.Contexts, p.Context)
}

func firstOrEmpty(cmd []string) string {
	if len(cmd) == 0 {
		return ""
	}
	return cmd[0]
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Get returns the count for key.
func (s *StrCounter) Get(key string) int {
	return s.internal[key]
}

// MarshalJSON implemnts custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts the number of times a tuple of strings was seen.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// Get returns the count for the given key.
func (ctr *PathCounter) Get(key ...string) int {
	return ctr.internal[toKey(key...)]
}

// MarshalJSON implemnts custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	out := []Count{}
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
