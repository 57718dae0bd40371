package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nizram/ping-monitor/internal/config"
)

var preflightCmd = &cobra.Command{
	Use:   "preflight",
	Short: "Check the environment before running the monitor",
	Long:  `Verify that the ping binary, config file and log directory are usable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := false
		fail := func(msg string) { fmt.Fprintln(os.Stderr, "✖", msg); failed = true }
		warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
		ok := func(msg string) { fmt.Println("✔", msg) }

		if path, err := exec.LookPath("ping"); err != nil {
			fail("ping binary not found on PATH (ping targets will always read offline)")
		} else {
			ok("ping binary at " + path)
		}

		cfgPath, err := config.GetConfigPath()
		switch {
		case err != nil:
			fail("config path: " + err.Error())
		default:
			if _, statErr := os.Stat(cfgPath); os.IsNotExist(statErr) {
				warn("no config at " + cfgPath + " (run 'pingmon init' or just start the dashboard)")
			} else if cfg, loadErr := config.LoadConfig(); loadErr != nil {
				fail("config unreadable: " + loadErr.Error())
			} else {
				ok(fmt.Sprintf("config ok, %d targets", len(cfg.Targets)))
			}
		}

		settings := config.FromEnv()
		if err := os.MkdirAll(settings.LogDir, 0o755); err != nil {
			fail("log dir " + settings.LogDir + " not writable: " + err.Error())
		} else {
			ok("log dir " + settings.LogDir)
		}

		// Key lists are comma-separated with no spaces, e.g. key1,key2.
		for _, name := range []string{"API_KEYS", "ADMIN_API_KEYS"} {
			if v := strings.TrimSpace(os.Getenv(name)); strings.Contains(v, " ") {
				warn(name + " contains spaces; use comma-separated with no spaces")
			}
		}

		if failed {
			return fmt.Errorf("preflight failed")
		}
		ok("preflight passed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(preflightCmd)
}
