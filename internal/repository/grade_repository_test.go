package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/crixfer/DIID-GS/internal/models"
)

func newGradeRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestGradeRepositoryUpsertWritesDerivedFields(t *testing.T) {
	db, mock, cleanup := newGradeRepoMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectExec("INSERT INTO student_grades").
		WillReturnResult(sqlmock.NewResult(0, 1))

	grade := &models.StudentGrade{
		StudentID:   "stu-1",
		QuarterID:   "q-1",
		Grades:      models.PeriodGrades{Period1: models.GradeComponents{Quizzes: 90}},
		TotalScore:  4.5,
		LetterGrade: "F",
	}
	require.NoError(t, repo.Upsert(context.Background(), grade))
	require.False(t, grade.UpdatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeRepositoryFindByStudentAndQuarter(t *testing.T) {
	db, mock, cleanup := newGradeRepoMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	grades := `{"period1":{"participationHomework":100,"presentations":100,"quizzes":100,"compositionExam":100,"oralExam":100},"period2":{},"finalPeriod":{}}`
	rows := sqlmock.NewRows([]string{"student_id", "quarter_id", "grades", "total_score", "letter_grade", "created_at", "updated_at"}).
		AddRow("stu-1", "q-1", []byte(grades), 30.0, "F", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT student_id, quarter_id, grades, total_score, letter_grade, created_at, updated_at FROM student_grades WHERE student_id = $1 AND quarter_id = $2")).
		WithArgs("stu-1", "q-1").
		WillReturnRows(rows)

	grade, err := repo.FindByStudentAndQuarter(context.Background(), "stu-1", "q-1")
	require.NoError(t, err)
	require.Equal(t, 100.0, grade.Grades.Period1.Quizzes)
	require.Equal(t, 30.0, grade.TotalScore)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeRepositoryDistribution(t *testing.T) {
	db, mock, cleanup := newGradeRepoMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	rows := sqlmock.NewRows([]string{"letter_grade", "count"}).
		AddRow("A", 3).
		AddRow("B", 5).
		AddRow("F", 1)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT letter_grade, COUNT(*) AS count FROM student_grades WHERE quarter_id = $1 GROUP BY letter_grade")).
		WithArgs("q-1").
		WillReturnRows(rows)

	dist, err := repo.Distribution(context.Background(), "q-1")
	require.NoError(t, err)
	require.Equal(t, 3, dist.A)
	require.Equal(t, 5, dist.B)
	require.Equal(t, 0, dist.C)
	require.Equal(t, 1, dist.F)
	require.NoError(t, mock.ExpectationsWereMet())
}
