package service

import (
	"context"

	"github.com/deppfellow/attendance-api/internal/lib/job"
	"github.com/deppfellow/attendance-api/internal/model/attendance"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// AttendanceStore persists attendance records. Update and Delete report an
// unknown id with an error wrapping pgx.ErrNoRows.
type AttendanceStore interface {
	List(ctx context.Context) ([]attendance.Attendance, error)
	Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error)
	Update(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error)
	Delete(ctx context.Context, id int64) error
}

// TaskEnqueuer is the part of *asynq.Client the service needs.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AttendanceNotifier enqueues the attendance:recorded email task.
type AttendanceNotifier struct {
	tasks TaskEnqueuer
	to    string
}

func NewAttendanceNotifier(tasks TaskEnqueuer, to string) *AttendanceNotifier {
	return &AttendanceNotifier{tasks: tasks, to: to}
}

// Recorded enqueues the notification for record. Failures are logged only:
// the record is already stored and the client must not see an error.
func (n *AttendanceNotifier) Recorded(ctx context.Context, record attendance.Attendance) {
	logger := zerolog.Ctx(ctx).With().
		Str("task", job.TaskAttendanceRecorded).
		Int64("attendance_id", record.AttendanceID).
		Logger()

	task, err := job.NewAttendanceRecordedTask(n.to, record)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build attendance notification task")
		return
	}

	info, err := n.tasks.EnqueueContext(ctx, task)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to enqueue attendance notification")
		return
	}

	logger.Debug().Str("task_id", info.ID).Str("queue", info.Queue).Msg("attendance notification enqueued")
}

type AttendanceService struct {
	store    AttendanceStore
	notifier *AttendanceNotifier
}

// NewAttendanceService builds the service. notifier may be nil, which
// disables notifications.
func NewAttendanceService(store AttendanceStore, notifier *AttendanceNotifier) *AttendanceService {
	return &AttendanceService{
		store:    store,
		notifier: notifier,
	}
}

// List returns every record ordered by date, then id. It never returns a
// nil slice.
func (s *AttendanceService) List(ctx context.Context) ([]attendance.Attendance, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []attendance.Attendance{}
	}
	return records, nil
}

// Create stores record and schedules its notification.
func (s *AttendanceService) Create(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	created, err := s.store.Create(ctx, record)
	if err != nil {
		return attendance.Attendance{}, err
	}

	zerolog.Ctx(ctx).Info().
		Int64("attendance_id", created.AttendanceID).
		Msg("attendance record created")

	if s.notifier != nil {
		s.notifier.Recorded(ctx, created)
	}

	return created, nil
}

// Update replaces the record with record.AttendanceID.
func (s *AttendanceService) Update(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	updated, err := s.store.Update(ctx, record)
	if err != nil {
		return attendance.Attendance{}, err
	}

	zerolog.Ctx(ctx).Info().
		Int64("attendance_id", updated.AttendanceID).
		Msg("attendance record updated")

	return updated, nil
}

// Delete removes the record with id.
func (s *AttendanceService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().
		Int64("attendance_id", id).
		Msg("attendance record deleted")

	return nil
}
