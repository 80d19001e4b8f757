package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/crixfer/DIID-GS/internal/grading"
	"github.com/crixfer/DIID-GS/internal/models"
	appErrors "github.com/crixfer/DIID-GS/pkg/errors"
)

type gradeRepository interface {
	ListByQuarter(ctx context.Context, quarterID string) ([]models.StudentGrade, error)
	FindByStudentAndQuarter(ctx context.Context, studentID, quarterID string) (*models.StudentGrade, error)
	Upsert(ctx context.Context, grade *models.StudentGrade) error
	Distribution(ctx context.Context, quarterID string) (*models.GradeDistribution, error)
	Report(ctx context.Context, quarterID string) ([]models.GradeReportRow, error)
}

type gradeEnrollmentChecker interface {
	FindByQuarterAndStudent(ctx context.Context, quarterID, studentID string) (*models.Enrollment, error)
}

// SaveGradesRequest carries the full component set for one student in one
// quarter. The request never carries a total or letter grade; both are
// derived server-side on every write.
type SaveGradesRequest struct {
	Grades models.PeriodGrades `json:"grades"`
}

// GradeService validates, scores and persists grade rows.
type GradeService struct {
	grades      gradeRepository
	enrollments gradeEnrollmentChecker
	engine      *grading.Engine
	scope       ScopeRefresher
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewGradeService creates a new grade service instance.
func NewGradeService(grades gradeRepository, enrollments gradeEnrollmentChecker, engine *grading.Engine, scope ScopeRefresher, validate *validator.Validate, logger *zap.Logger) *GradeService {
	if engine == nil {
		engine = grading.MustDefaultEngine()
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{grades: grades, enrollments: enrollments, engine: engine, scope: scope, validator: validate, logger: logger}
}

// Save scores and persists the component set for a student. Raw components
// and the derived total land in one upsert, so a partially-written grade row
// is never observable.
func (s *GradeService) Save(ctx context.Context, quarterID, studentID string, req SaveGradesRequest) (*models.StudentGrade, error) {
	if _, err := s.enrollments.FindByQuarterAndStudent(ctx, quarterID, studentID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not enrolled in quarter")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check enrollment")
	}

	total, letter, err := s.engine.Compute(req.Grades)
	if err != nil {
		return nil, err
	}

	grade := &models.StudentGrade{
		StudentID:   studentID,
		QuarterID:   quarterID,
		Grades:      req.Grades,
		TotalScore:  total,
		LetterGrade: letter,
	}
	if err := s.grades.Upsert(ctx, grade); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save grades")
	}

	if s.scope != nil {
		s.scope.RefreshAsync(quarterID)
	}
	return grade, nil
}

// Get returns a single grade row. A student with no saved grades yet gets
// an all-zero component set scored to 0/F rather than a 404, matching how
// the gradebook renders an untouched row.
func (s *GradeService) Get(ctx context.Context, quarterID, studentID string) (*models.StudentGrade, error) {
	grade, err := s.grades.FindByStudentAndQuarter(ctx, studentID, quarterID)
	if err != nil {
		if err == sql.ErrNoRows {
			return &models.StudentGrade{
				StudentID:   studentID,
				QuarterID:   quarterID,
				LetterGrade: grading.LetterGrade(0),
			}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grades")
	}
	return grade, nil
}

// ListByQuarter returns all grade rows in a quarter.
func (s *GradeService) ListByQuarter(ctx context.Context, quarterID string) ([]models.StudentGrade, error) {
	grades, err := s.grades.ListByQuarter(ctx, quarterID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grades")
	}
	return grades, nil
}

// Distribution returns the letter grade tally for a quarter.
func (s *GradeService) Distribution(ctx context.Context, quarterID string) (*models.GradeDistribution, error) {
	dist, err := s.grades.Distribution(ctx, quarterID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute distribution")
	}
	return dist, nil
}

// Report returns the per-student computed grades with display names.
func (s *GradeService) Report(ctx context.Context, quarterID string) ([]models.GradeReportRow, error) {
	rows, err := s.grades.Report(ctx, quarterID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build grade report")
	}
	return rows, nil
}
