package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nizram/ping-monitor/internal/config"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long: `Create a config file at ~/.config/ping-monitor/config.yml with a couple
of well-known hosts to start from. Edit the file to add your own targets.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.InitConfig(forceInit); err != nil {
			return err
		}

		configPath, _ := config.GetConfigPath()
		if forceInit {
			fmt.Printf("✓ Configuration reset at %s\n", configPath)
		} else {
			fmt.Printf("✓ Configuration written to %s\n", configPath)
		}

		fmt.Println("\nEdit the file to add your targets, then run:")
		fmt.Println("  pingmon")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "overwrite existing configuration")
	rootCmd.AddCommand(initCmd)
}
