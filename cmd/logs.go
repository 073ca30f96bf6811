package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/josephlewis42/mithlsh/core/ttylog"
	"github.com/spf13/cobra"
)

var (
	idleTimeLimit time.Duration
)

var logsCmd = &cobra.Command{
	Use:     "logs",
	Aliases: []string{"log"},
	Short:   "Explore the recorded terminal sessions.",
}

// playCommand represents the play command
var playCommand = &cobra.Command{
	Use:   "play SESSION.cast",
	Short: "Replay a recorded interactive session in the terminal.",
	Long:  `Plays a recorded interactive session back to the current terminal.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		fd, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer fd.Close()

		source, err := createLogSource(args[0], fd)
		if err != nil {
			return err
		}

		sink := ttylog.NewClientOutput(cmd.OutOrStdout())
		sink = ttylog.NewRealTimePlayback(idleTimeLimit, sink)
		return ttylog.Replay(source, sink)
	},
}

// catCommand represents the cat command
var catCommand = &cobra.Command{
	Use:   "cat SESSION.cast",
	Short: "Print full output of recorded log to a terminal.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		fd, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer fd.Close()

		source, err := createLogSource(args[0], fd)
		if err != nil {
			return err
		}

		return ttylog.Replay(source, ttylog.NewClientOutput(cmd.OutOrStdout()))
	},
}

func createLogSource(name string, r io.Reader) (ttylog.LogSource, error) {
	switch ext := strings.TrimPrefix(filepath.Ext(name), "."); ext {
	case ttylog.AsciicastFileExt:
		return ttylog.NewAsciicastLogSource(r), nil
	default:
		return nil, fmt.Errorf("unknown log format %q, expected .%s", ext, ttylog.AsciicastFileExt)
	}
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.AddCommand(playCommand)
	logsCmd.AddCommand(catCommand)

	// cat doesn't allow idle time
	playCommand.Flags().DurationVarP(&idleTimeLimit, "idle-time-limit", "i", 3*time.Second, "Maximum time output can be idle. (e.g. 3s, 2m, 100ms)")
}
