package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/deppfellow/attendance-api/internal/model/attendance"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execOnlyDB answers Exec with a fixed command tag.
type execOnlyDB struct {
	tag   string
	err   error
	query string
	args  []any
}

func (db *execOnlyDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	db.query, db.args = sql, args
	return pgconn.NewCommandTag(db.tag), db.err
}

func (db *execOnlyDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (db *execOnlyDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return nil
}

func sampleRecord() attendance.Attendance {
	return attendance.Attendance{
		AttendanceID: 12345678,
		Date:         attendance.NewDate(2024, time.February, 29),
		Status:       attendance.StatusOnline,
		CheckInTime:  attendance.ClockTime{Hour: 9, Minute: 5},
		CheckOutTime: attendance.ClockTime{Hour: 23, Minute: 59},
	}
}

func TestAttendanceRowRoundTrip(t *testing.T) {
	record := sampleRecord()
	row := newAttendanceRow(record)

	assert.True(t, row.Date.Valid)
	assert.True(t, row.CheckInTime.Valid)
	assert.Equal(t, (9*time.Hour + 5*time.Minute).Microseconds(), row.CheckInTime.Microseconds)
	assert.Equal(t, "Online", row.Status)

	assert.Equal(t, record, row.toModel())
}

func TestDeleteNotFound(t *testing.T) {
	db := &execOnlyDB{tag: "DELETE 0"}
	repo := NewAttendanceRepository(db)

	err := repo.Delete(context.Background(), 12345678)
	require.ErrorIs(t, err, ErrAttendanceNotFound)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.Equal(t, []any{int64(12345678)}, db.args)
}

func TestDeleteRemovesRow(t *testing.T) {
	repo := NewAttendanceRepository(&execOnlyDB{tag: "DELETE 1"})
	assert.NoError(t, repo.Delete(context.Background(), 12345678))
}

func TestDeleteWrapsDriverError(t *testing.T) {
	boom := errors.New("connection reset")
	repo := NewAttendanceRepository(&execOnlyDB{err: boom})

	err := repo.Delete(context.Background(), 12345678)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, pgx.ErrNoRows)
}

func TestListPropagatesQueryError(t *testing.T) {
	repo := NewAttendanceRepository(&execOnlyDB{})

	_, err := repo.List(context.Background())
	assert.ErrorContains(t, err, "list attendance records")
}

func TestErrAttendanceNotFoundNamesTable(t *testing.T) {
	assert.Contains(t, ErrAttendanceNotFound.Error(), "table:attendance_records:")
}
