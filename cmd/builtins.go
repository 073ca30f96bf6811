package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/josephlewis42/mithlsh/commands"
	"github.com/spf13/cobra"
)

// builtinsCmd lists the commands the interpreter recognizes
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the builtin commands of the shell.",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		for _, builtin := range commands.ListBuiltinCommands() {
			fmt.Fprintf(w, "%s\t%s\n", builtin.Use, builtin.Short)
		}

		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
