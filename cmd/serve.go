package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/nizram/ping-monitor/internal/config"
	"github.com/nizram/ping-monitor/internal/httpapi"
	"github.com/nizram/ping-monitor/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the monitor headless behind an HTTP API",
	Long: `Run the check loops without the dashboard and expose status over HTTP.

The listen address, API keys and rate limit come from the environment:
API_ADDR, API_KEYS, ADMIN_API_KEYS, RATE_PER_MIN, RATE_BURST.`,
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

		api := httpapi.NewServer(logger, eng, cfg, settings)
		srv := &http.Server{
			Addr:              settings.Addr,
			Handler:           api.Router(),
			ReadHeaderTimeout: 5 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("api_listen", zap.String("addr", settings.Addr))
			errCh <- srv.ListenAndServe()
		}()

		var serveErr error
		select {
		case <-ctx.Done():
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				serveErr = err
			}
		}

		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return multierr.Combine(
			serveErr,
			srv.Shutdown(shutCtx),
			eng.Close(shutCtx),
			logger.Sync(),
		)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
