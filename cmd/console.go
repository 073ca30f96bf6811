/*
Copyright © 2021 Joseph Lewis <joseph@josephlewis.net>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/mithlsh/core"
	"github.com/josephlewis42/mithlsh/core/config"
	"github.com/josephlewis42/mithlsh/core/console"
	"github.com/josephlewis42/mithlsh/core/logger"
	"github.com/spf13/cobra"
)

type stdio struct {
	io.Reader
	io.Writer
}

// consoleCmd runs the shell on the local terminal
var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Run the shell on the local terminal without starting a server.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		dir, err := os.MkdirTemp("", "console")
		if err != nil {
			return err
		}
		defer os.RemoveAll(dir)

		consoleLogger := log.New(cmd.ErrOrStderr(), "[console] ", 0)
		cfg, err := config.Initialize(dir, consoleLogger)
		if err != nil {
			return err
		}

		system, err := core.NewSystem(cfg)
		if err != nil {
			return err
		}
		defer system.Close()

		logFd, err := cfg.OpenAppLog()
		if err != nil {
			return err
		}
		defer logFd.Close()
		sessionLogger := logger.NewJsonLinesLogRecorder(logFd).NewSession()

		consoleLogger.Printf("Logging to: file://%s\n", dir)
		consoleLogger.Printf("See logs with: tail -f %s\n", filepath.Join(dir, logFd.Name()))
		consoleLogger.Println(strings.Repeat("=", 80))

		interpreter := *system.Interpreter
		interpreter.Events = sessionLogger

		session := &console.Session{
			Interpreter: &interpreter,
			Prompt:      cfg.Console.Prompt,
			Capacity:    cfg.Shell.OutputCapacity,
			Motd:        cfg.Motd,
			Faults:      &console.EventFaults{Events: sessionLogger},
		}

		if readline.DefaultIsTerminal() {
			rawMode := new(readline.RawMode)
			session.PTY = true
			session.Width = readline.GetScreenWidth
			session.MakeRaw = rawMode.Enter
			session.ExitRaw = rawMode.Exit
		}

		return session.Run(cmd.Context(), &stdio{Reader: cmd.InOrStdin(), Writer: cmd.OutOrStdout()})
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}
