package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/crixfer/DIID-GS/internal/attendance"
	"github.com/crixfer/DIID-GS/internal/models"
	appErrors "github.com/crixfer/DIID-GS/pkg/errors"
)

type attendanceRepository interface {
	ListByQuarter(ctx context.Context, quarterID string) ([]models.AttendanceRecord, error)
	ListByStudentAndQuarter(ctx context.Context, studentID, quarterID string) ([]models.AttendanceRecord, error)
	ListByDate(ctx context.Context, quarterID string, date time.Time) ([]models.AttendanceRecord, error)
	Upsert(ctx context.Context, record *models.AttendanceRecord) error
	Delete(ctx context.Context, studentID, quarterID string, date time.Time) error
}

type attendanceEnrollmentChecker interface {
	FindByQuarterAndStudent(ctx context.Context, quarterID, studentID string) (*models.Enrollment, error)
}

// MarkAttendanceRequest records one day's status for one student.
type MarkAttendanceRequest struct {
	StudentID string                  `json:"student_id" validate:"required"`
	Date      time.Time               `json:"date" validate:"required"`
	Status    models.AttendanceStatus `json:"status" validate:"required"`
	Notes     *string                 `json:"notes"`
}

// AttendanceService orchestrates attendance marking and summaries.
type AttendanceService struct {
	records     attendanceRepository
	enrollments attendanceEnrollmentChecker
	scope       ScopeRefresher
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewAttendanceService creates a new attendance service instance.
func NewAttendanceService(records attendanceRepository, enrollments attendanceEnrollmentChecker, scope ScopeRefresher, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{records: records, enrollments: enrollments, scope: scope, validator: validate, logger: logger}
}

// Mark records a status for (student, quarter, date). Marking the same day
// twice replaces the stored status instead of duplicating the row.
func (s *AttendanceService) Mark(ctx context.Context, quarterID string, req MarkAttendanceRequest) (*models.AttendanceRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	if !req.Status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown attendance status")
	}

	if _, err := s.enrollments.FindByQuarterAndStudent(ctx, quarterID, req.StudentID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not enrolled in quarter")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check enrollment")
	}

	record := &models.AttendanceRecord{
		StudentID: req.StudentID,
		QuarterID: quarterID,
		Date:      req.Date.UTC().Truncate(24 * time.Hour),
		Status:    req.Status,
		Notes:     req.Notes,
	}
	if err := s.records.Upsert(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save attendance")
	}

	if s.scope != nil {
		s.scope.RefreshAsync(quarterID)
	}
	return record, nil
}

// MarkBulk records one day's statuses for several students, e.g. a whole
// class at once. Failures are reported per student id; successful marks are
// kept.
func (s *AttendanceService) MarkBulk(ctx context.Context, quarterID string, reqs []MarkAttendanceRequest) ([]models.AttendanceRecord, map[string]string) {
	var saved []models.AttendanceRecord
	failures := make(map[string]string)
	for _, req := range reqs {
		record, err := s.Mark(ctx, quarterID, req)
		if err != nil {
			failures[req.StudentID] = err.Error()
			continue
		}
		saved = append(saved, *record)
	}
	return saved, failures
}

// Unmark removes a day's record entirely.
func (s *AttendanceService) Unmark(ctx context.Context, quarterID, studentID string, date time.Time) error {
	if err := s.records.Delete(ctx, studentID, quarterID, date.UTC().Truncate(24*time.Hour)); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "attendance mark not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete attendance")
	}
	if s.scope != nil {
		s.scope.RefreshAsync(quarterID)
	}
	return nil
}

// StudentSummary returns a student's attendance rate over the quarter.
func (s *AttendanceService) StudentSummary(ctx context.Context, quarterID, studentID string) (*models.AttendanceStats, error) {
	records, err := s.records.ListByStudentAndQuarter(ctx, studentID, quarterID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}
	stats := attendance.StudentStats(records, studentID)
	return &stats, nil
}

// DailySnapshot tallies cohort statuses for one date.
func (s *AttendanceService) DailySnapshot(ctx context.Context, quarterID string, date time.Time) (*models.DailyAttendanceSnapshot, error) {
	records, err := s.records.ListByDate(ctx, quarterID, date.UTC().Truncate(24*time.Hour))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}
	snapshot := attendance.DailySnapshot(records, date)
	return &snapshot, nil
}

// History returns the per-student status breakdown across the quarter.
func (s *AttendanceService) History(ctx context.Context, quarterID string) (map[string]models.AttendanceBreakdown, error) {
	records, err := s.records.ListByQuarter(ctx, quarterID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}
	return attendance.Breakdown(records), nil
}
