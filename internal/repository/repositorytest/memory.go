// Package repositorytest provides in-memory stand-ins for the repositories so
// handler and router tests run without PostgreSQL.
package repositorytest

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/deppfellow/attendance-api/internal/model/attendance"
	"github.com/deppfellow/attendance-api/internal/repository"
	"github.com/jackc/pgx/v5/pgconn"
)

// MemoryAttendanceRepository keeps records in process memory and reports
// failures with the same errors PostgreSQL would, so the HTTP layer behaves
// identically.
type MemoryAttendanceRepository struct {
	mu      sync.RWMutex
	records map[int64]attendance.Attendance
}

func NewMemoryAttendanceRepository(records ...attendance.Attendance) *MemoryAttendanceRepository {
	r := &MemoryAttendanceRepository{records: make(map[int64]attendance.Attendance, len(records))}
	for _, record := range records {
		r.records[record.AttendanceID] = record
	}
	return r
}

func (r *MemoryAttendanceRepository) List(_ context.Context) ([]attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]attendance.Attendance, 0, len(r.records))
	for _, record := range r.records {
		result = append(result, record)
	}

	slices.SortFunc(result, func(a, b attendance.Attendance) int {
		if c := a.Date.Compare(b.Date.Time); c != 0 {
			return c
		}
		return cmp.Compare(a.AttendanceID, b.AttendanceID)
	})

	return result, nil
}

func (r *MemoryAttendanceRepository) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[a.AttendanceID]; exists {
		return attendance.Attendance{}, &pgconn.PgError{
			Severity:       "ERROR",
			Code:           "23505",
			Message:        "duplicate key value violates unique constraint",
			TableName:      repository.AttendanceTable,
			ConstraintName: repository.AttendanceIDKey,
		}
	}

	r.records[a.AttendanceID] = a
	return a, nil
}

func (r *MemoryAttendanceRepository) Update(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[a.AttendanceID]; !exists {
		return attendance.Attendance{}, repository.ErrAttendanceNotFound
	}

	r.records[a.AttendanceID] = a
	return a, nil
}

func (r *MemoryAttendanceRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[id]; !exists {
		return repository.ErrAttendanceNotFound
	}

	delete(r.records, id)
	return nil
}
