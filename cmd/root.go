package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nizram/ping-monitor/internal/config"
	"github.com/nizram/ping-monitor/internal/logging"
	"github.com/nizram/ping-monitor/internal/monitor"
	"github.com/nizram/ping-monitor/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "pingmon",
	Short: "Watch hosts go up and down from the terminal",
	Long: `Pingmon keeps an eye on a list of hosts over ping, TCP or UDP and shows
their live status, uptime and latency in a terminal dashboard.

Targets live in ~/.config/ping-monitor/config.yml and can be edited there,
from inside the dashboard, or with the target:* commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadOrCreate()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		settings := config.FromEnv()
		logger, err := logging.NewLogger(settings.LogDir, logLevel(settings))
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}

		eng := buildEngine(cfg, logger)

		p := tea.NewProgram(
			tui.NewModel(eng, cfg, logger),
			tea.WithAltScreen(),
		)

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigs
			p.Quit()
		}()

		_, runErr := p.Run()

		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return multierr.Combine(runErr, eng.Close(closeCtx), logger.Sync())
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildEngine starts an engine with every configured target registered.
// Targets the engine rejects are logged and skipped rather than aborting
// startup, so one bad entry cannot take the monitor down.
func buildEngine(cfg *config.Config, logger *zap.Logger) *monitor.Engine {
	eng := monitor.New(logger, monitor.Options{
		Interval: cfg.Interval(),
		Timeout:  cfg.Timeout(),
	})
	for _, t := range cfg.Targets {
		if _, err := eng.Add(t); err != nil {
			logger.Warn("target_rejected",
				zap.String("name", t.Name),
				zap.Error(err),
			)
		}
	}
	return eng
}

func logLevel(s config.Settings) zapcore.Level {
	if lvl, err := zapcore.ParseLevel(s.LogLevel); err == nil {
		return lvl
	}
	return zapcore.InfoLevel
}
