package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nizram/ping-monitor/internal/config"
)

var forceRemove bool

var targetRemoveCmd = &cobra.Command{
	Use:   "target:remove <name>",
	Short: "Remove a target from the configuration",
	Long: `Remove a target by name from the config file.

Example:
  pingmon target:remove "Google DNS"
  pingmon target:remove web --force`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		if !forceRemove {
			fmt.Printf("Remove target '%s'? (y/N): ", name)
			reader := bufio.NewReader(os.Stdin)
			response, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			response = strings.ToLower(strings.TrimSpace(response))
			if response != "y" && response != "yes" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := cfg.RemoveTarget(name); err != nil {
			return err
		}
		if err := config.SaveConfig(cfg); err != nil {
			return err
		}

		configPath, _ := config.GetConfigPath()
		fmt.Printf("✓ Removed target '%s' from %s\n", name, configPath)
		return nil
	},
}

func init() {
	targetRemoveCmd.Flags().BoolVarP(&forceRemove, "force", "f", false, "skip confirmation prompt")
	rootCmd.AddCommand(targetRemoveCmd)
}
