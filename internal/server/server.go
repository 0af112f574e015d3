// Package server composes the application's shared dependencies and owns
// their lifecycle: config, loggers, the PostgreSQL pool, Redis, the
// background job service, Prometheus metrics and the HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/drinks/internal/config"
	"github.com/deppfellow/drinks/internal/database"
	"github.com/deppfellow/drinks/internal/lib/job"
	"github.com/deppfellow/drinks/internal/metrics"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/drinks/internal/logger"
)

// Server is the application container. DB, Redis and Job are nil when the
// configuration leaves them out.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService
	Metrics       *metrics.Metrics

	DB    *database.Database
	Redis *redis.Client
	Job   *job.JobService

	httpServer *http.Server
}

// New initializes the dependencies cfg asks for.
//
// The database is opened only for the postgres store. Redis is optional and
// a failed ping is logged, not fatal. The job service runs only when
// notifications are enabled.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	s := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		Metrics:       metrics.New(),
	}

	if cfg.Drinks.Store == config.StorePostgres {
		db, err := database.New(cfg, logger, loggerService)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		s.DB = db
	}

	if cfg.Redis.Address != "" {
		s.Redis = newRedisClient(cfg, logger, loggerService)
	}

	if cfg.Notifications.Enabled {
		jobService := job.NewJobService(logger, cfg, s.Metrics)
		jobService.InitHandlers(cfg, logger)

		if err := jobService.Start(); err != nil {
			s.closeDependencies()
			return nil, fmt.Errorf("failed to start job service: %w", err)
		}
		s.Job = jobService
	}

	return s, nil
}

func newRedisClient(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Address})

	if loggerService.GetApplication() != nil {
		client.AddHook(nrredis.NewHook(client.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Str("address", cfg.Redis.Address).Msg("failed to connect to redis, continuing without it")
	}

	return client
}

// SetupHTTPServer installs handler behind a net/http server using the
// configured timeouts (seconds).
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start serves HTTP until the server is shut down.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Str("store", s.Config.Drinks.Store).
		Msg("starting server")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones until ctx
// expires, then releases every dependency.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	return s.closeDependencies()
}

func (s *Server) closeDependencies() error {
	var errs []error

	if s.Job != nil {
		s.Job.Stop()
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis: %w", err))
		}
	}

	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database connection: %w", err))
		}
	}

	s.LoggerService.Shutdown()

	return errors.Join(errs...)
}
