package job

import (
	"encoding/json"
	"time"

	"github.com/deppfellow/attendance-api/internal/model/attendance"
	"github.com/hibiken/asynq"
)

const (
	// TaskAttendanceRecorded notifies a mailbox that a record was created.
	TaskAttendanceRecorded = "attendance:recorded"
)

// AttendanceRecordedPayload is the JSON payload of TaskAttendanceRecorded.
type AttendanceRecordedPayload struct {
	To     string                `json:"to"`
	Record attendance.Attendance `json:"record"`
}

// NewAttendanceRecordedTask builds the notification task for record.
// It is retried up to 3 times on the default queue and times out after 30s.
func NewAttendanceRecordedTask(to string, record attendance.Attendance) (*asynq.Task, error) {
	payload, err := json.Marshal(AttendanceRecordedPayload{
		To:     to,
		Record: record,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskAttendanceRecorded,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
