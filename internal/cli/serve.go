package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"customerapi/internal/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the customer API on APP_PORT. SIGINT or SIGTERM drains in-flight
requests before the store and broker connections are closed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		rt, err := server.Bootstrap(cfg, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := rt.Close(); err != nil {
				log.Error("failed to release resources", zap.Error(err))
			}
		}()

		listenErr := make(chan error, 1)
		go func() {
			log.Info("starting server", zap.String("addr", cfg.App.Port), zap.String("env", cfg.App.Env))
			listenErr <- rt.App.Listen(cfg.App.Port)
		}()

		select {
		case err := <-listenErr:
			return err
		case <-ctx.Done():
		}

		log.Info("shutting down server")
		if err := rt.App.ShutdownWithTimeout(shutdownTimeout); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			log.Error("error during server shutdown", zap.Error(err))
		}
		log.Info("server gracefully stopped")
		return nil
	},
}
