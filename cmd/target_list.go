package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nizram/ping-monitor/internal/config"
)

var targetListCmd = &cobra.Command{
	Use:   "target:list",
	Short: "List configured targets",
	Long:  `Print every target in the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		if len(cfg.Targets) == 0 {
			fmt.Println("No targets configured yet.")
			fmt.Println("\nAdd one with:")
			fmt.Println("  pingmon target:add --name <name> --host <host>")
			return nil
		}

		fmt.Printf("Configured targets (%d):\n\n", len(cfg.Targets))
		for _, t := range cfg.Targets {
			state := "enabled"
			if !t.Enabled {
				state = "paused"
			}
			fmt.Printf("  • %s\n", t.Name)
			fmt.Printf("    %s over %s, %s\n\n", t.Addr(), t.Protocol, state)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(targetListCmd)
}
