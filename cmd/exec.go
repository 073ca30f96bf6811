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
	"fmt"
	"strings"

	"github.com/josephlewis42/mithlsh/core"
	"github.com/josephlewis42/mithlsh/core/config"
	"github.com/spf13/cobra"
)

var (
	execCapacity  int
	execUseConfig bool
)

// execCmd runs a single command line through the interpreter
var execCmd = &cobra.Command{
	Use:   "exec COMMAND [ARGS...]",
	Short: "Run one command line and print the response.",
	Long: `Runs one command line through the interpreter and prints the response.

The built-in configuration is used unless --use-config is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg := config.Default()
		if execUseConfig {
			loaded, err := loadConfig()
			if err != nil {
				return err
			}
			cfg = loaded
		}

		capacity := execCapacity
		if capacity <= 0 {
			capacity = cfg.Shell.OutputCapacity
		}

		system, err := core.NewSystem(cfg)
		if err != nil {
			return err
		}
		defer system.Close()

		out := system.Interpreter.Run(strings.Join(args, " "), capacity)
		if out != "" {
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSuffix(out, "\n"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(execCmd)

	execCmd.Flags().IntVar(&execCapacity, "capacity", 0, "Output buffer size in bytes, defaults to the configured capacity.")
	execCmd.Flags().BoolVar(&execUseConfig, "use-config", false, "Use the configuration in --config rather than the built-in one.")
}
