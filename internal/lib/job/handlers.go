package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/attendance-api/internal/config"
	"github.com/deppfellow/attendance-api/internal/lib/email"
	"github.com/deppfellow/attendance-api/internal/model/attendance"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// attendanceMailer is the part of *email.Client the handlers use.
type attendanceMailer interface {
	SendAttendanceRecordedEmail(ctx context.Context, to string, record attendance.Attendance) error
}

// InitHandlers prepares the dependencies of the task handlers. Without a
// Resend key no mailer is set and notification tasks are dropped.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	if cfg.Integration == nil || cfg.Integration.ResendAPIKey == "" {
		return
	}
	j.mailer = email.NewClient(cfg.Integration, logger)
}

func (j *JobService) handleAttendanceRecordedTask(ctx context.Context, t *asynq.Task) error {
	var p AttendanceRecordedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal attendance recorded payload: %v: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With().
		Str("type", TaskAttendanceRecorded).
		Str("to", p.To).
		Int64("attendance_id", p.Record.AttendanceID).
		Logger()

	if j.mailer == nil {
		logger.Warn().Msg("email client not configured, dropping attendance notification")
		return fmt.Errorf("email client not configured: %w", asynq.SkipRetry)
	}

	logger.Info().Msg("Processing attendance recorded task")

	if err := j.mailer.SendAttendanceRecordedEmail(ctx, p.To, p.Record); err != nil {
		logger.Error().Err(err).Msg("Failed to send attendance recorded email")
		return err
	}

	logger.Info().Msg("Successfully sent attendance recorded email")

	return nil
}

// reportError logs tasks that will not be retried again.
func (j *JobService) reportError(ctx context.Context, task *asynq.Task, err error) {
	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)
	if retried < maxRetry {
		return
	}

	j.logger.Error().
		Err(err).
		Str("type", task.Type()).
		Int("retried", retried).
		Msg("task failed permanently")
}
