package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nizram/ping-monitor/internal/config"
	"github.com/nizram/ping-monitor/internal/domain"
)

var (
	targetName     string
	targetHost     string
	targetPort     uint16
	targetProtocol string
	targetPaused   bool
)

var targetAddCmd = &cobra.Command{
	Use:   "target:add",
	Short: "Add a target to the configuration",
	Long: `Add a target to the config file. The dashboard and the API pick it up
the next time they start.

Examples:
  pingmon target:add --name "Google DNS" --host 8.8.8.8
  pingmon target:add --name web --host example.com --port 443 --protocol tcp
  pingmon target:add --name resolver --host 1.1.1.1 --port 53 --protocol udp --paused`,
	RunE: func(cmd *cobra.Command, args []string) error {
		proto, err := domain.ParseProtocol(targetProtocol)
		if err != nil {
			return err
		}

		t := domain.Target{
			Name:     targetName,
			Host:     targetHost,
			Port:     targetPort,
			Protocol: proto,
			Enabled:  !targetPaused,
		}

		cfg, err := config.LoadOrCreate()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cfg.AddTarget(t); err != nil {
			return err
		}
		if err := config.SaveConfig(cfg); err != nil {
			return err
		}

		configPath, _ := config.GetConfigPath()
		fmt.Printf("✓ Added target '%s' to %s\n", t.Name, configPath)
		return nil
	},
}

func init() {
	targetAddCmd.Flags().StringVarP(&targetName, "name", "n", "", "target name (required)")
	targetAddCmd.Flags().StringVar(&targetHost, "host", "", "IP address or hostname (required)")
	targetAddCmd.Flags().Uint16Var(&targetPort, "port", 0, "port, 0 for the protocol default")
	targetAddCmd.Flags().StringVarP(&targetProtocol, "protocol", "p", "ping", "check protocol (ping, tcp, udp)")
	targetAddCmd.Flags().BoolVar(&targetPaused, "paused", false, "add the target without checking it")

	targetAddCmd.MarkFlagRequired("name")
	targetAddCmd.MarkFlagRequired("host")

	rootCmd.AddCommand(targetAddCmd)
}
