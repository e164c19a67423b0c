package repositorytest

import (
	"context"
	"testing"
	"time"

	"github.com/deppfellow/attendance-api/internal/model/attendance"
	"github.com/deppfellow/attendance-api/internal/repository"
	"github.com/deppfellow/attendance-api/internal/service"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ service.AttendanceStore = (*MemoryAttendanceRepository)(nil)

func sampleRecord() attendance.Attendance {
	return attendance.Attendance{
		AttendanceID: 12345678,
		Date:         attendance.NewDate(2024, time.February, 29),
		Status:       attendance.StatusOnline,
		CheckInTime:  attendance.ClockTime{Hour: 9, Minute: 0},
		CheckOutTime: attendance.ClockTime{Hour: 17, Minute: 30},
	}
}

func TestMemoryRepositoryOrdersByDateThenID(t *testing.T) {
	late := sampleRecord()
	late.AttendanceID = 11111111
	late.Date = attendance.NewDate(2024, time.March, 1)

	second := sampleRecord()
	second.AttendanceID = 22222222

	first := sampleRecord()

	repo := NewMemoryAttendanceRepository(late, second, first)

	records, err := repo.List(context.Background())
	require.NoError(t, err)

	ids := []int64{records[0].AttendanceID, records[1].AttendanceID, records[2].AttendanceID}
	assert.Equal(t, []int64{12345678, 22222222, 11111111}, ids)
}

func TestMemoryRepositoryMirrorsDatabaseErrors(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAttendanceRepository()

	_, err := repo.Create(ctx, sampleRecord())
	require.NoError(t, err)

	_, err = repo.Create(ctx, sampleRecord())
	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, "23505", pgErr.Code)
	assert.Equal(t, repository.AttendanceIDKey, pgErr.ConstraintName)

	missing := sampleRecord()
	missing.AttendanceID = 87654321

	_, err = repo.Update(ctx, missing)
	assert.ErrorIs(t, err, repository.ErrAttendanceNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, missing.AttendanceID), repository.ErrAttendanceNotFound)
	assert.NoError(t, repo.Delete(ctx, sampleRecord().AttendanceID))

	records, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NotNil(t, records)
}
