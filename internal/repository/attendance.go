package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/attendance-api/internal/model/attendance"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	// AttendanceTable is the table attendance records live in.
	AttendanceTable = "attendance_records"

	// AttendanceIDKey is the primary key constraint of AttendanceTable.
	AttendanceIDKey = "attendance_records_attendance_id_key"
)

// ErrAttendanceNotFound is returned by Update and Delete for an unknown id.
// It wraps pgx.ErrNoRows and names the table, which sqlerr turns into a 404.
var ErrAttendanceNotFound = fmt.Errorf("table:%s: %w", AttendanceTable, pgx.ErrNoRows)

const attendanceColumns = `attendance_id, date, status, check_in_time, check_out_time`

type AttendanceRepository struct {
	db DBTX
}

func NewAttendanceRepository(db DBTX) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// attendanceRow is the column-level shape of an attendance_records row.
type attendanceRow struct {
	AttendanceID int64       `db:"attendance_id"`
	Date         pgtype.Date `db:"date"`
	Status       string      `db:"status"`
	CheckInTime  pgtype.Time `db:"check_in_time"`
	CheckOutTime pgtype.Time `db:"check_out_time"`
}

func newAttendanceRow(a attendance.Attendance) attendanceRow {
	return attendanceRow{
		AttendanceID: a.AttendanceID,
		Date:         pgtype.Date{Time: a.Date.Time, Valid: true},
		Status:       string(a.Status),
		CheckInTime:  pgtype.Time{Microseconds: a.CheckInTime.SinceMidnight().Microseconds(), Valid: true},
		CheckOutTime: pgtype.Time{Microseconds: a.CheckOutTime.SinceMidnight().Microseconds(), Valid: true},
	}
}

func (r attendanceRow) toModel() attendance.Attendance {
	return attendance.Attendance{
		AttendanceID: r.AttendanceID,
		Date:         attendance.DateOf(r.Date.Time),
		Status:       attendance.Status(r.Status),
		CheckInTime:  attendance.ClockTimeOf(time.Duration(r.CheckInTime.Microseconds) * time.Microsecond),
		CheckOutTime: attendance.ClockTimeOf(time.Duration(r.CheckOutTime.Microseconds) * time.Microsecond),
	}
}

func (r *AttendanceRepository) collect(ctx context.Context, query string, args ...any) ([]attendance.Attendance, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[attendanceRow])
	if err != nil {
		return nil, err
	}

	result := make([]attendance.Attendance, 0, len(records))
	for _, record := range records {
		result = append(result, record.toModel())
	}
	return result, nil
}

// List returns every record ordered by date, then id.
func (r *AttendanceRepository) List(ctx context.Context) ([]attendance.Attendance, error) {
	query := `
SELECT ` + attendanceColumns + `
FROM attendance_records
ORDER BY date ASC, attendance_id ASC
`

	records, err := r.collect(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list attendance records: %w", err)
	}
	return records, nil
}

// Create inserts a record. A duplicate id surfaces as a unique violation.
func (r *AttendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	query := `
INSERT INTO attendance_records (
	attendance_id,
	date,
	status,
	check_in_time,
	check_out_time
) VALUES ($1, $2, $3, $4, $5)
RETURNING ` + attendanceColumns

	row := newAttendanceRow(a)

	records, err := r.collect(ctx, query, row.AttendanceID, row.Date, row.Status, row.CheckInTime, row.CheckOutTime)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("create attendance record %d: %w", a.AttendanceID, err)
	}
	if len(records) == 0 {
		return attendance.Attendance{}, fmt.Errorf("create attendance record %d: no row returned", a.AttendanceID)
	}
	return records[0], nil
}

// Update overwrites the record with a's id, or returns ErrAttendanceNotFound.
func (r *AttendanceRepository) Update(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	query := `
UPDATE attendance_records
SET
	date = $2,
	status = $3,
	check_in_time = $4,
	check_out_time = $5,
	updated_at = now()
WHERE attendance_id = $1
RETURNING ` + attendanceColumns

	row := newAttendanceRow(a)

	records, err := r.collect(ctx, query, row.AttendanceID, row.Date, row.Status, row.CheckInTime, row.CheckOutTime)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("update attendance record %d: %w", a.AttendanceID, err)
	}
	if len(records) == 0 {
		return attendance.Attendance{}, ErrAttendanceNotFound
	}
	return records[0], nil
}

// Delete removes the record with id, or returns ErrAttendanceNotFound.
func (r *AttendanceRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM attendance_records WHERE attendance_id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete attendance record %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAttendanceNotFound
	}
	return nil
}
