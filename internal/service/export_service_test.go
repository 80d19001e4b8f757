package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crixfer/DIID-GS/internal/models"
	appErrors "github.com/crixfer/DIID-GS/pkg/errors"
)

type rosterRepo struct {
	roster []models.EnrolledStudent
}

func (r *rosterRepo) FindByID(ctx context.Context, id string) (*models.Student, error) {
	return nil, sql.ErrNoRows
}

func (r *rosterRepo) FindByCode(ctx context.Context, code string) (*models.Student, error) {
	return nil, sql.ErrNoRows
}

func (r *rosterRepo) Create(ctx context.Context, student *models.Student) error { return nil }

func (r *rosterRepo) Update(ctx context.Context, student *models.Student) error { return nil }

func (r *rosterRepo) ListByQuarter(ctx context.Context, quarterID string) ([]models.EnrolledStudent, error) {
	return r.roster, nil
}

func (r *rosterRepo) Search(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error) {
	return nil, 0, nil
}

func exportFixture() (*ExportService, *rosterRepo, *mockGradeRepo, *mockAttendanceRepo) {
	students := &rosterRepo{roster: []models.EnrolledStudent{
		{
			Student: models.Student{
				ID: "stu-1", FirstName: "Maria", LastName: "Santos",
				StudentCode: "2025-0001", Email: "maria@example.com",
			},
			QuarterID:      "q1",
			EnrollmentDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		},
		{
			Student: models.Student{
				ID: "stu-2", FirstName: "Juan", LastName: "Perez",
				StudentCode: "2025-0002",
			},
			QuarterID:      "q1",
			EnrollmentDate: time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC),
		},
	}}
	grades := &mockGradeRepo{rows: map[string]models.StudentGrade{
		gradeKey("stu-1", "q1"): {
			StudentID: "stu-1", QuarterID: "q1",
			Grades:     models.PeriodGrades{Period1: models.GradeComponents{Quizzes: 95}},
			TotalScore: 4.75, LetterGrade: "F",
		},
	}}
	attendances := &mockAttendanceRepo{rows: map[string]models.AttendanceRecord{}}
	svc := NewExportService(students, grades, attendances, ExportServiceConfig{Enabled: true, SheetTitle: "Gradebook"}, nil)
	return svc, students, grades, attendances
}

func TestExportRosterCSV(t *testing.T) {
	svc, _, _, _ := exportFixture()

	result, err := svc.Roster(context.Background(), "q1", ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.True(t, strings.HasSuffix(result.Filename, ".csv"))

	body := string(result.Data)
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Student ID")
	assert.Contains(t, body, "Santos")
	assert.Contains(t, body, "2025-0002")
}

func TestExportGradesCSVIncludesUnsavedStudents(t *testing.T) {
	svc, _, _, _ := exportFixture()

	result, err := svc.Grades(context.Background(), "q1", ExportFormatCSV)
	require.NoError(t, err)

	body := string(result.Data)
	lines := strings.Split(strings.TrimSpace(body), "\n")
	// Header plus both enrolled students, graded or not.
	require.Len(t, lines, 3)
	assert.Contains(t, body, "95")
	assert.Contains(t, body, "Juan Perez")
}

func TestExportAttendancePDF(t *testing.T) {
	svc, _, _, attendances := exportFixture()
	attendances.rows[attKey("stu-1", "q1", time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC))] = models.AttendanceRecord{
		StudentID: "stu-1", QuarterID: "q1",
		Date:   time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		Status: models.AttendanceStatusPresent,
	}

	result, err := svc.Attendance(context.Background(), "q1", ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Data), "%PDF"))
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	svc, _, _, _ := exportFixture()

	_, err := svc.Roster(context.Background(), "q1", ExportFormat("xlsx"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportDisabled(t *testing.T) {
	svc := NewExportService(&rosterRepo{}, &mockGradeRepo{}, &mockAttendanceRepo{}, ExportServiceConfig{Enabled: false}, nil)

	_, err := svc.Roster(context.Background(), "q1", ExportFormatCSV)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErrors.FromError(err).Code)
}
