// Package job runs background tasks on Asynq.
//
// Asynq is a Redis-backed queue: tasks are enqueued with asynq.Client and
// processed by the workers of asynq.Server.
package job

import (
	"fmt"

	"github.com/deppfellow/attendance-api/internal/config"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// JobService holds the Asynq client (enqueue) and server (workers).
type JobService struct {
	// Client enqueues tasks into Redis.
	Client *asynq.Client

	server *asynq.Server
	logger *zerolog.Logger
	mailer attendanceMailer
}

// NewJobService creates a JobService on the Redis instance from cfg.
//
// Up to 10 tasks run in parallel, shared across queues by weight
// (critical 6, default 3, low 1).
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	j := &JobService{
		Client: asynq.NewClient(redisOpt),
		logger: logger,
	}

	j.server = asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger:       asynqLogger{logger: logger},
			ErrorHandler: asynq.ErrorHandlerFunc(j.reportError),
		},
	)

	return j
}

// Start registers the task handlers and starts the workers. It does not block.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskAttendanceRecorded, j.handleAttendanceRecordedTask)

	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(mux); err != nil {
		return fmt.Errorf("failed to start job server: %w", err)
	}

	return nil
}

// Stop waits for running tasks and closes the client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}
