package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/deppfellow/drinks/internal/config"
	"github.com/deppfellow/drinks/internal/database"
	"github.com/deppfellow/drinks/internal/handler"
	"github.com/deppfellow/drinks/internal/logger"
	"github.com/deppfellow/drinks/internal/repository"
	"github.com/deppfellow/drinks/internal/router"
	"github.com/deppfellow/drinks/internal/server"
	"github.com/deppfellow/drinks/internal/service"
	"github.com/spf13/cobra"
)

var skipMigrations bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not migrate the database on start")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.Observability, loggerService)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Drinks.Store == config.StorePostgres && !skipMigrations {
		if err := database.Migrate(ctx, &log, cfg); err != nil {
			loggerService.Shutdown()
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		loggerService.Shutdown()
		return err
	}

	repos := repository.NewRepositories(srv)
	services, err := service.NewService(srv, repos)
	if err != nil {
		_ = srv.Shutdown(context.Background())
		return fmt.Errorf("could not create services: %w", err)
	}

	handlers := handler.NewHandlers(srv, services)
	r, err := router.NewRouter(srv, handlers)
	if err != nil {
		_ = srv.Shutdown(context.Background())
		return err
	}

	srv.SetupHTTPServer(r)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Error().Err(err).Msg("server stopped")
		}
		_ = srv.Shutdown(context.Background())
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	log.Info().Msg("server exited properly")
	return nil
}
