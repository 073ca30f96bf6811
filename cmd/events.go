package cmd

import (
	"fmt"

	"github.com/josephlewis42/mithlsh/core/logger"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Explore the shell event log.",
}

// printEventReport feeds every logged event to update then prints report as
// YAML.
func printEventReport(cmd *cobra.Command, update func(le *logger.LogEntry), report interface{}) error {
	cmd.SilenceUsage = true

	config, err := loadConfig()
	if err != nil {
		return err
	}

	fd, err := config.ReadAppLog()
	if err != nil {
		return err
	}
	defer fd.Close()

	if err := logger.ReadJSONLinesLog(fd, update); err != nil {
		return err
	}

	out, err := yaml.Marshal(report)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	return nil
}

var reportCommand = &cobra.Command{
	Use:   "report",
	Short: "Show a report of events.",
	RunE: func(cmd *cobra.Command, args []string) error {
		var report logger.Report
		return printEventReport(cmd, report.Update, &report)
	},
}

var bugsCommand = &cobra.Command{
	Use:   "bugs",
	Short: "Show events that point to bugs in the shell or its disk and filesystem.",
	RunE: func(cmd *cobra.Command, args []string) error {
		report := logger.NewBugReport()
		return printEventReport(cmd, report.Update, report)
	},
}

var sessionsCommand = &cobra.Command{
	Use:   "sessions",
	Short: "Show the commands run in each session.",
	RunE: func(cmd *cobra.Command, args []string) error {
		var report logger.InteractionReport
		return printEventReport(cmd, report.Update, &report)
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(reportCommand)
	eventsCmd.AddCommand(bugsCommand)
	eventsCmd.AddCommand(sessionsCommand)
}
