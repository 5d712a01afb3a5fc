/*
PURPOSE:
  Defines the 'list-servers' subcommand.
  Helps debug connectivity and server discovery.

REQUIREMENTS:
  User-specified:
  - List candidate test servers.

  Implementation-discovered:
  - Useful validation step before a full run.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Client.ListServers()

ERROR HANDLING:
  - Prints error if the tool is missing or the listing fails.

IMPLEMENTATION RULES:
  - Simple output to stdout.

USAGE:
  speedtest-batch list-servers

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/engine/client.go

MAINTENANCE:
  - None.
*/

package cli

import (
	"fmt"

	"github.com/netbench-tools/speedtest-batch/internal/config"
	"github.com/netbench-tools/speedtest-batch/internal/engine"
	"github.com/spf13/cobra"
)

var listServersCmd = &cobra.Command{
	Use:   "list-servers",
	Short: "List candidate test servers",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if toolOverride != "" {
			cfg.Tool = toolOverride
		}

		c := engine.NewClient(cfg)
		if err := c.Check(); err != nil {
			return err
		}

		entries, err := c.ListServers(cmd.Context())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return engine.ErrNoServers
		}

		for _, e := range entries {
			fmt.Printf("%s) %s\n", e.ID, e.Description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listServersCmd)
	listServersCmd.Flags().StringVar(&toolOverride, "tool", "", "External measurement binary (default speedtest-cli)")
}
