/*
PURPOSE:
  Defines the root Cobra command for the Speedtest Batch CLI.
  Handles global flags and command initialization.

REQUIREMENTS:
  User-specified:
  - Provide a CLI interface.
  - Support global flags like --config.

  Implementation-discovered:
  - Needs to expose an Execute() function for main.go.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/speedtest-batch/main.go
  - Calls: Child commands (run, list-servers)

ERROR HANDLING:
  - Returns error to main.go for exit code handling. Unknown flags surface
    here as usage errors, so the process exits nonzero.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.
  - Keep Run logic in subcommands, Root is usually empty or helps.

USAGE:
  Called by main.go.

SELF-HEALING INSTRUCTIONS:
  - If adding new global flags, add them to init().

RELATED FILES:
  - cmd/speedtest-batch/main.go

MAINTENANCE:
  - Update when adding new global configuration options.
*/

package cli

import (
	"github.com/spf13/cobra"
)

var (
	// cfgFile stores the path to the config file (if specified via flag)
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "speedtest-batch",
		Short: "Batch runner for speedtest-cli against a fleet of test servers",
		Long: `Orchestrates repeated speedtest-cli runs against a set of remote test
servers, captures each run's raw output, and aggregates download/upload
figures into a summary report. Use 'run --help' for options.`,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./speedtest-batch.yaml)")
}
