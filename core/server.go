package core

import (
	"context"
	"crypto/subtle"
	"fmt"
	"io"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gliderlabs/ssh"
	"github.com/josephlewis42/mithlsh/core/config"
	"github.com/josephlewis42/mithlsh/core/console"
	"github.com/josephlewis42/mithlsh/core/logger"
	"github.com/josephlewis42/mithlsh/core/ttylog"
	gossh "golang.org/x/crypto/ssh"
)

type sshContextKey struct {
	name string
}

var (
	// ContextAuthPublicKey holds the public key that the client sent to the
	// server. Useful for fingerprinting.
	ContextAuthPublicKey = sshContextKey{"auth-public-key"}
)

// Server exposes the kernel shell over SSH.
type Server struct {
	configuration *config.Configuration
	system        *System
	toClose       listCloser
	logger        *logger.Logger
	sshServer     *ssh.Server
}

// NewServer sets up a server from the configuration, events are written to
// the application log.
func NewServer(configuration *config.Configuration) (*Server, error) {
	var toClose listCloser

	appLog, err := configuration.OpenAppLog()
	if err != nil {
		return nil, err
	}
	toClose = append(toClose, appLog)

	system, err := NewSystem(configuration)
	if err != nil {
		toClose.Close()
		return nil, err
	}
	toClose = append(toClose, system)

	keyPem, err := configuration.PrivateKeyPem()
	if err != nil {
		toClose.Close()
		return nil, fmt.Errorf("reading host key: %w", err)
	}
	signer, err := gossh.ParsePrivateKey(keyPem)
	if err != nil {
		toClose.Close()
		return nil, fmt.Errorf("parsing host key: %w", err)
	}

	srv := &Server{
		configuration: configuration,
		system:        system,
		toClose:       toClose,
		logger:        logger.NewJsonLinesLogRecorder(appLog),
	}

	srv.sshServer = &ssh.Server{
		Addr:    fmt.Sprintf(":%d", configuration.SSHPort),
		Version: strings.TrimPrefix(configuration.SSHBanner, "SSH-2.0-"),
		Handler: func(s ssh.Session) {
			if err := srv.HandleConnection(s); err != nil {
				log.Printf("session %s: %v", s.Context().SessionID(), err)
			}
		},
		PublicKeyHandler: func(ctx ssh.Context, key ssh.PublicKey) bool {
			ctx.SetValue(ContextAuthPublicKey, key.Marshal())
			return false
		},
		PasswordHandler: srv.checkPassword,
	}
	srv.sshServer.AddHostKey(signer)

	return srv, nil
}

func (srv *Server) passwordAllowed(username, password string) bool {
	if srv.configuration.AllowAnyPassword {
		return true
	}

	for _, allowed := range srv.configuration.GetPasswords(username) {
		if subtle.ConstantTimeCompare([]byte(password), []byte(allowed)) == 1 {
			return true
		}
	}
	return false
}

func (srv *Server) checkPassword(ctx ssh.Context, password string) bool {
	ok := srv.passwordAllowed(ctx.User(), password)

	result := logger.OperationResultFailure
	if ok {
		result = logger.OperationResultSuccess
	}

	publicKey, _ := ctx.Value(ContextAuthPublicKey).([]byte)
	srv.record(srv.logger.WithSessionID(ctx.SessionID()), &logger.LoginAttempt{
		Result:     result,
		Username:   ctx.User(),
		PublicKey:  publicKey,
		RemoteAddr: fmt.Sprintf("%s", ctx.RemoteAddr()),
	})

	return ok
}

func (srv *Server) record(sessionLogger *logger.SessionLogger, event logger.LogType) {
	if err := sessionLogger.Record(event); err != nil {
		log.Printf("couldn't record event: %v", err)
	}
}

// HandleConnection runs a console session for an authenticated client.
func (srv *Server) HandleConnection(s ssh.Session) error {
	sessionLogger := srv.logger.WithSessionID(s.Context().SessionID())

	ptyInfo, winch, isPTY := s.Pty()
	width := watchWidth(ptyInfo.Window.Width, winch, isPTY)

	srv.record(sessionLogger, &logger.LoginAttempt{
		Result:     logger.OperationResultSuccess,
		Username:   s.User(),
		RemoteAddr: fmt.Sprintf("%s", s.RemoteAddr()),
		Term:       ptyInfo.Term,
		IsPTY:      isPTY,
	})

	terminal := &sessionTerminal{
		PTY:   isPTY,
		Width: width,
	}

	err := srv.serveTerminal(s.Context(), sessionLogger, s, terminal)
	if err != nil {
		s.Exit(1)
		return err
	}

	return s.Exit(0)
}

// watchWidth tracks the terminal width as the client resizes its window.
// Sessions without a PTY have a nil winch and keep the initial width.
func watchWidth(initial int, winch <-chan ssh.Window, isPTY bool) func() int {
	width := int32(initial)
	if isPTY && winch != nil {
		go func() {
			// winch is closed when the session's request stream ends.
			for window := range winch {
				atomic.StoreInt32(&width, int32(window.Width))
			}
		}()
	}

	return func() int {
		return int(atomic.LoadInt32(&width))
	}
}

type sessionTerminal struct {
	PTY   bool
	Width func() int
}

// serveTerminal records the terminal to a session log and runs the console on
// it.
func (srv *Server) serveTerminal(ctx context.Context, sessionLogger *logger.SessionLogger, rw io.ReadWriter, terminal *sessionTerminal) error {
	logFileName := fmt.Sprintf("%s-%s.%s", time.Now().UTC().Format("20060102T150405Z"), sessionLogger.SessionID(), ttylog.AsciicastFileExt)
	logFd, err := srv.configuration.CreateSessionLog(logFileName)
	if err != nil {
		return err
	}
	defer logFd.Close()

	srv.record(sessionLogger, &logger.OpenTTYLog{Name: logFileName})

	recorder := ttylog.NewRecorder(rw, ttylog.NewAsciicastLogSink(logFd))
	defer recorder.Close()

	// Each session gets its own view of the shared interpreter so events carry
	// the session ID.
	interpreter := *srv.system.Interpreter
	interpreter.Events = sessionLogger

	session := &console.Session{
		Interpreter: &interpreter,
		Prompt:      srv.configuration.Console.Prompt,
		Capacity:    srv.configuration.Shell.OutputCapacity,
		PTY:         terminal.PTY,
		Width:       terminal.Width,
		BaudRate:    srv.configuration.Console.BaudRate,
		Motd:        srv.configuration.Motd,
		Faults:      &console.EventFaults{Events: sessionLogger},
	}

	return session.Run(ctx, recorder)
}

// Close releases the server's files without stopping it.
func (srv *Server) Close() error {
	return srv.toClose.Close()
}

func (srv *Server) ListenAndServe() error {
	log.Printf("- Starting SSH server on %s\n", srv.sshServer.Addr)
	return srv.sshServer.ListenAndServe()
}

func (srv *Server) Shutdown(ctx context.Context) error {
	defer srv.Close()
	return srv.sshServer.Shutdown(ctx)
}
