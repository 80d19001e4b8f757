package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/crixfer/DIID-GS/internal/models"
	appErrors "github.com/crixfer/DIID-GS/pkg/errors"
)

type studentRepository interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
	FindByCode(ctx context.Context, code string) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	ListByQuarter(ctx context.Context, quarterID string) ([]models.EnrolledStudent, error)
	Search(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error)
}

type enrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	FindByQuarterAndStudent(ctx context.Context, quarterID, studentID string) (*models.Enrollment, error)
	DeleteCascade(ctx context.Context, quarterID, studentID string) error
	CountByQuarter(ctx context.Context, quarterID string) (int, error)
}

// EnrollStudentRequest adds a student to a quarter, creating the student
// record first when the code is unknown.
type EnrollStudentRequest struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	StudentCode string `json:"student_id" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
}

// UpdateStudentRequest updates mutable student fields.
type UpdateStudentRequest struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	StudentCode string `json:"student_id" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
}

// StudentService orchestrates student and enrollment workflows.
type StudentService struct {
	students    studentRepository
	enrollments enrollmentRepository
	scope       ScopeRefresher
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewStudentService creates a new student service instance.
func NewStudentService(students studentRepository, enrollments enrollmentRepository, scope ScopeRefresher, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{students: students, enrollments: enrollments, scope: scope, validator: validate, logger: logger}
}

// ListByQuarter returns the quarter's roster.
func (s *StudentService) ListByQuarter(ctx context.Context, quarterID string) ([]models.EnrolledStudent, error) {
	roster, err := s.students.ListByQuarter(ctx, quarterID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list roster")
	}
	return roster, nil
}

// Search returns students matching the filter across all quarters.
func (s *StudentService) Search(ctx context.Context, filter models.StudentFilter) ([]models.Student, *models.Pagination, error) {
	students, total, err := s.students.Search(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to search students")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return students, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Enroll adds a student to a quarter. An existing student code reuses the
// student record so grades and attendance from other quarters stay attached
// to the same identity. Enrolling twice in the same quarter is a conflict.
func (s *StudentService) Enroll(ctx context.Context, quarterID string, req EnrollStudentRequest) (*models.EnrolledStudent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}

	student, err := s.students.FindByCode(ctx, req.StudentCode)
	if err != nil {
		if err != sql.ErrNoRows {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to look up student")
		}
		student = &models.Student{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			StudentCode: req.StudentCode,
			Email:       req.Email,
		}
		if err := s.students.Create(ctx, student); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
		}
	}

	if _, err := s.enrollments.FindByQuarterAndStudent(ctx, quarterID, student.ID); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "student already enrolled in quarter")
	} else if err != sql.ErrNoRows {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check enrollment")
	}

	enrollment := &models.Enrollment{QuarterID: quarterID, StudentID: student.ID}
	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enroll student")
	}

	if s.scope != nil {
		s.scope.RefreshAsync(quarterID)
	}

	return &models.EnrolledStudent{
		Student:        *student,
		EnrollmentID:   enrollment.ID,
		QuarterID:      quarterID,
		EnrollmentDate: enrollment.EnrollmentDate,
	}, nil
}

// Update modifies a student's identity fields.
func (s *StudentService) Update(ctx context.Context, id string, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}

	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	if req.StudentCode != student.StudentCode {
		if existing, err := s.students.FindByCode(ctx, req.StudentCode); err == nil && existing.ID != id {
			return nil, appErrors.Clone(appErrors.ErrConflict, "student code already in use")
		} else if err != nil && err != sql.ErrNoRows {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check student code")
		}
	}

	student.FirstName = req.FirstName
	student.LastName = req.LastName
	student.StudentCode = req.StudentCode
	student.Email = req.Email

	if err := s.students.Update(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	return student, nil
}

// Unenroll removes a student from a quarter together with the student's
// grades and attendance rows for that quarter. Other quarters are untouched.
func (s *StudentService) Unenroll(ctx context.Context, quarterID, studentID string) error {
	if err := s.enrollments.DeleteCascade(ctx, quarterID, studentID); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to unenroll student")
	}
	if s.scope != nil {
		s.scope.RefreshAsync(quarterID)
	}
	return nil
}
