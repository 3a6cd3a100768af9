package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/marketpulse/pulse/internal/config"
	"github.com/marketpulse/pulse/internal/server"
	"github.com/marketpulse/pulse/internal/server/handlers"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	var configDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Pulse HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configDir)
		},
	}
	cmd.Flags().StringVar(&configDir, "config-dir", ".", "directory containing .env and pulse.yaml")
	return cmd
}

func runServe(configDir string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := slog.Default()

	st, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	cls, err := newClassifier(cfg)
	if err != nil {
		return fmt.Errorf("creating classifier: %w", err)
	}

	arc, err := newArchive(cfg)
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}

	// Startup connectivity probes. Degraded backends are reported, not fatal:
	// missing configuration dies above, an unreachable backend only warns.
	if err := st.Ping(ctx); err != nil {
		logger.Warn("database connection check failed", "error", err)
	} else {
		logger.Info("database connection OK")
	}
	if arc.Ping(ctx) {
		logger.Info("S3 connection OK", "bucket", cfg.S3Bucket)
	} else {
		logger.Warn("S3 connection check failed", "bucket", cfg.S3Bucket)
	}

	h := handlers.New(st, cls, arc)
	srv := server.New(cfg.Addr, h, cfg.Server.APIKey, cfg.Server.MaxRequestBody)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
