// Package job runs background work on asynq.
//
// The service enqueues drink:changed tasks through the client and the
// embedded worker server turns them into notification emails.
package job

import (
	"github.com/deppfellow/drinks/internal/config"
	"github.com/deppfellow/drinks/internal/lib/email"
	"github.com/deppfellow/drinks/internal/metrics"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Mailer sends drink change emails.
type Mailer interface {
	SendDrinkChangedEmail(to string, data email.DrinkChangedData) error
}

// JobService holds the asynq client and worker server.
type JobService struct {
	Client *asynq.Client

	server    *asynq.Server
	logger    *zerolog.Logger
	metrics   *metrics.Metrics
	mailer    Mailer
	recipient string
	baseURL   string
}

// NewJobService connects the client and server to cfg.Redis.Address.
func NewJobService(logger *zerolog.Logger, cfg *config.Config, m *metrics.Metrics) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger:   newAsynqLogger(logger),
			LogLevel: asynq.WarnLevel,
		},
	)

	return &JobService{
		Client:  asynq.NewClient(redisOpt),
		server:  server,
		logger:  logger,
		metrics: m,
	}
}

// InitHandlers sets up the dependencies task handlers need.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.mailer = email.NewClient(cfg.Integration.ResendAPIKey, cfg.Notifications.From, logger)
	j.recipient = cfg.Notifications.Recipient
	j.baseURL = cfg.Server.PublicURL
}

// Mux routes task types to their handlers.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskDrinkChanged, j.handleDrinkChangedTask)
	return mux
}

// Start launches the worker server. asynq runs its workers in background
// goroutines, so Start returns once they are up.
func (j *JobService) Start() error {
	j.logger.Info().Msg("starting background job server")
	return j.server.Start(j.Mux())
}

// Stop drains the workers and closes the client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Warn().Err(err).Msg("failed to close job client")
	}
}
