package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/stripe2qbo/console/internal/config"
	"github.com/stripe2qbo/console/internal/importer"
	"github.com/stripe2qbo/console/internal/logging"
	"github.com/stripe2qbo/console/internal/storage"
	"github.com/stripe2qbo/console/internal/store"
	"github.com/stripe2qbo/console/internal/web"
)

func newServeCommand(version string, configPath *string) *cobra.Command {
	var port int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the console web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.Server.Port = port
			}
			if verbose {
				cfg.Logging.Level = "debug"
			}
			return runServe(cfg, version)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides config)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "verbose output")

	return cmd
}

func runServe(cfg *config.Config, version string) error {
	logger := logging.NewComponentLogger(cfg.Logging, "web")

	repo, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer func() { _ = repo.Close() }()

	client := newBackendClient(cfg)
	st := store.New()
	imp := importer.New(client, st, repo, logging.NewComponentLogger(cfg.Logging, "importer"))

	server := web.NewServer(web.Config{
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Environment:    cfg.Environment,
		Version:        version,
	}, web.Deps{
		Store:    st,
		Importer: imp,
		Backend:  client,
		History:  repo,
		Logger:   logger,
	})

	// Handle graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("received shutdown signal")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server shutdown error", slog.Any("error", err))
		}
		close(done)
	}()

	// Start server (blocks until shutdown)
	if err := server.Start(); err != nil {
		return err
	}

	<-done
	logger.Info("server stopped")
	return nil
}
