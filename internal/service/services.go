// Package service contains the business logic.
//
// It sits between the handler and repository layers: handlers pass in
// validated input, services apply the business rules and persist through the
// repositories.
package service

import (
	"github.com/deppfellow/attendance-api/internal/lib/job"
	"github.com/deppfellow/attendance-api/internal/repository"
	"github.com/deppfellow/attendance-api/internal/server"
)

type Services struct {
	Attendance *AttendanceService
	Job        *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var notifier *AttendanceNotifier
	if s.Job != nil && s.Config.Integration.NotificationsEnabled() {
		notifier = NewAttendanceNotifier(s.Job.Client, s.Config.Integration.NotifyEmail)
	}

	return &Services{
		Attendance: NewAttendanceService(repos.Attendance, notifier),
		Job:        s.Job,
	}, nil
}
