package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/crixfer/DIID-GS/internal/models"
)

func newAttendanceRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAttendanceRepositoryUpsertReplacesMark(t *testing.T) {
	db, mock, cleanup := newAttendanceRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectExec("INSERT INTO attendance_records").
		WillReturnResult(sqlmock.NewResult(0, 1))

	record := &models.AttendanceRecord{
		StudentID: "stu-1",
		QuarterID: "q-1",
		Date:      time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		Status:    models.AttendanceStatusPresent,
	}
	require.NoError(t, repo.Upsert(context.Background(), record))
	require.False(t, record.UpdatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryListByQuarter(t *testing.T) {
	db, mock, cleanup := newAttendanceRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	rows := sqlmock.NewRows([]string{"student_id", "quarter_id", "date", "status", "notes", "created_at", "updated_at"}).
		AddRow("stu-1", "q-1", time.Now(), models.AttendanceStatusPresent, nil, time.Now(), time.Now()).
		AddRow("stu-2", "q-1", time.Now(), models.AttendanceStatusAbsent, nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT student_id, quarter_id, date, status, notes, created_at, updated_at FROM attendance_records WHERE quarter_id = $1 ORDER BY date ASC")).
		WithArgs("q-1").
		WillReturnRows(rows)

	records, err := repo.ListByQuarter(context.Background(), "q-1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryListByDate(t *testing.T) {
	db, mock, cleanup := newAttendanceRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"student_id", "quarter_id", "date", "status", "notes", "created_at", "updated_at"}).
		AddRow("stu-1", "q-1", day, models.AttendanceStatusLate, nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT student_id, quarter_id, date, status, notes, created_at, updated_at FROM attendance_records WHERE quarter_id = $1 AND date = $2")).
		WithArgs("q-1", day).
		WillReturnRows(rows)

	records, err := repo.ListByDate(context.Background(), "q-1", day)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, models.AttendanceStatusLate, records[0].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryDeleteRemovesMark(t *testing.T) {
	db, mock, cleanup := newAttendanceRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM attendance_records WHERE student_id = $1 AND quarter_id = $2 AND date = $3`)).
		WithArgs("stu-1", "q-1", day).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "stu-1", "q-1", day))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryDeleteMissingMark(t *testing.T) {
	db, mock, cleanup := newAttendanceRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM attendance_records WHERE student_id = $1 AND quarter_id = $2 AND date = $3`)).
		WithArgs("stu-1", "q-1", day).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "stu-1", "q-1", day)
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}
