/*
PURPOSE:
  Defines the 'run' subcommand.
  Executes the full batch pipeline.

REQUIREMENTS:
  User-specified:
  - Run the tests.
  - Specific flags for overrides (-n count, -s server file).

  Implementation-discovered:
  - Need to load config first.
  - Apply flag overrides to config.
  - A missing -s file must fail before anything is written.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Run()
  - Uses: internal/config

ERROR HANDLING:
  - Returns error if config load fails or engine run fails.

IMPLEMENTATION RULES:
  - Setup flags in init().
  - Logic: Load Config -> Override -> Engine.Run.

USAGE:
  speedtest-batch run -n 5

SELF-HEALING INSTRUCTIONS:
  - Check flag names match Config struct fields generally.

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new CLI overrides.
*/

package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/netbench-tools/speedtest-batch/internal/config"
	"github.com/netbench-tools/speedtest-batch/internal/engine"
	"github.com/spf13/cobra"
)

var (
	countOverride   int
	serverFile      string
	outputOverride  string
	toolOverride    string
	pauseOverride   time.Duration
	timeoutOverride time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the speed-test batch",
	Long: `Runs the full pipeline:
1. Check: verifies the external tool is installed.
2. Discovery: lists candidate test servers (skipped with -s).
3. Selection: all servers, a random subset of -n, or the -s file verbatim.
4. Tests: one sequential tool invocation per server, raw output captured.
5. Summary: counts and mean download/upload figures, written per run.

All files land under <output-dir>/<hostname>/ keyed by the run timestamp.`,
	Example: `  # Test every discovered server
  speedtest-batch run

  # Test a random subset of five servers
  speedtest-batch run -n 5

  # Test exactly the IDs listed in a file, skipping discovery
  speedtest-batch run -s myservers.txt

  # Custom output directory and a longer pause between tests
  speedtest-batch run -o ./bench --pause 5s`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load Config
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		// 2. Overrides
		if cmd.Flags().Changed("count") {
			cfg.Count = countOverride
		}
		if serverFile != "" {
			if _, err := os.Stat(serverFile); err != nil {
				return fmt.Errorf("server file %s: %w", serverFile, err)
			}
			cfg.ServerFile = serverFile
		}
		if outputOverride != "" {
			cfg.OutputDir = outputOverride
		}
		if toolOverride != "" {
			cfg.Tool = toolOverride
		}
		if cmd.Flags().Changed("pause") {
			cfg.Pause = config.Duration(pauseOverride)
		}
		if cmd.Flags().Changed("test-timeout") {
			cfg.TestTimeout = config.Duration(timeoutOverride)
		}

		// 3. Execution
		return engine.Run(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntVarP(&countOverride, "count", "n", 0, "Number of servers to test (0 = all discovered)")
	runCmd.Flags().StringVarP(&serverFile, "server-file", "s", "", "File of server IDs to test verbatim (bypasses discovery)")
	runCmd.Flags().StringVarP(&outputOverride, "output-dir", "o", "", "Base directory for result files")
	runCmd.Flags().StringVar(&toolOverride, "tool", "", "External measurement binary (default speedtest-cli)")
	runCmd.Flags().DurationVar(&pauseOverride, "pause", 0, "Pause between consecutive tests (default 2s)")
	runCmd.Flags().DurationVar(&timeoutOverride, "test-timeout", 0, "Per-test timeout (0 = none)")
}
