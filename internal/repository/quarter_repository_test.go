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

func newQuarterRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestQuarterRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newQuarterRepoMock(t)
	defer cleanup()
	repo := NewQuarterRepository(db)

	rows := sqlmock.NewRows([]string{"id", "teacher_id", "name", "start_date", "end_date", "status", "created_at", "updated_at"}).
		AddRow("q-1", "t-1", "Spring 2025", time.Now(), time.Now(), models.QuarterStatusActive, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, teacher_id, name, start_date, end_date, status, created_at, updated_at FROM quarters WHERE id = $1")).
		WithArgs("q-1").
		WillReturnRows(rows)

	quarter, err := repo.FindByID(context.Background(), "q-1")
	require.NoError(t, err)
	require.Equal(t, "Spring 2025", quarter.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuarterRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newQuarterRepoMock(t)
	defer cleanup()
	repo := NewQuarterRepository(db)

	mock.ExpectExec("INSERT INTO quarters").
		WillReturnResult(sqlmock.NewResult(0, 1))

	quarter := &models.Quarter{
		TeacherID: "t-1",
		Name:      "Fall 2025",
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 3, 0),
		Status:    models.QuarterStatusUpcoming,
	}
	require.NoError(t, repo.Create(context.Background(), quarter))
	require.NotEmpty(t, quarter.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuarterRepositoryActivateDemotesThenPromotes(t *testing.T) {
	db, mock, cleanup := newQuarterRepoMock(t)
	defer cleanup()
	repo := NewQuarterRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE quarters SET status = $1, updated_at = $2 WHERE teacher_id = $3 AND status = $4 AND id <> $5")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE quarters SET status = $1, updated_at = $2 WHERE id = $3 AND teacher_id = $4")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Activate(context.Background(), "t-1", "q-2"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuarterRepositoryActivateUnknownQuarterRollsBack(t *testing.T) {
	db, mock, cleanup := newQuarterRepoMock(t)
	defer cleanup()
	repo := NewQuarterRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE quarters SET status = $1, updated_at = $2 WHERE teacher_id = $3 AND status = $4 AND id <> $5")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE quarters SET status = $1, updated_at = $2 WHERE id = $3 AND teacher_id = $4")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Activate(context.Background(), "t-1", "missing")
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuarterRepositoryDeleteCascadeRemovesDependents(t *testing.T) {
	db, mock, cleanup := newQuarterRepoMock(t)
	defer cleanup()
	repo := NewQuarterRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM attendance_records WHERE quarter_id = $1")).
		WithArgs("q-1").WillReturnResult(sqlmock.NewResult(0, 12))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM student_grades WHERE quarter_id = $1")).
		WithArgs("q-1").WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM calendar_notes WHERE quarter_id = $1")).
		WithArgs("q-1").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM quarter_students WHERE quarter_id = $1")).
		WithArgs("q-1").WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM quarters WHERE id = $1")).
		WithArgs("q-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteCascade(context.Background(), "q-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
