package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/crixfer/DIID-GS/internal/models"
	appErrors "github.com/crixfer/DIID-GS/pkg/errors"
)

type quarterRepository interface {
	List(ctx context.Context, filter models.QuarterFilter) ([]models.Quarter, int, error)
	FindByID(ctx context.Context, id string) (*models.Quarter, error)
	FindActiveByTeacher(ctx context.Context, teacherID string) (*models.Quarter, error)
	Create(ctx context.Context, quarter *models.Quarter) error
	Update(ctx context.Context, quarter *models.Quarter) error
	Activate(ctx context.Context, teacherID, id string) error
	DeleteCascade(ctx context.Context, id string) error
}

// ScopeRefresher schedules a snapshot rebuild after a write touches scoped
// data. Implemented by ScopeService; nil disables refresh scheduling.
type ScopeRefresher interface {
	RefreshAsync(quarterID string)
	Invalidate(quarterID string)
}

// CreateQuarterRequest describes the payload for creating quarters. Status
// is optional and defaults to upcoming; completed allows backfilling a past
// term, active promotes the new quarter through the transactional path.
type CreateQuarterRequest struct {
	TeacherID string               `json:"teacher_id" validate:"required"`
	Name      string               `json:"name" validate:"required"`
	StartDate time.Time            `json:"start_date" validate:"required"`
	EndDate   time.Time            `json:"end_date" validate:"required"`
	Status    models.QuarterStatus `json:"status"`
}

// UpdateQuarterRequest updates mutable fields on a quarter.
type UpdateQuarterRequest struct {
	Name      string               `json:"name" validate:"required"`
	StartDate time.Time            `json:"start_date" validate:"required"`
	EndDate   time.Time            `json:"end_date" validate:"required"`
	Status    models.QuarterStatus `json:"status" validate:"required"`
}

// QuarterService orchestrates quarter lifecycle workflows. At most one
// quarter per teacher is active at any time; every promotion path funnels
// through the repository's transactional Activate.
type QuarterService struct {
	repo      quarterRepository
	scope     ScopeRefresher
	validator *validator.Validate
	logger    *zap.Logger
}

// NewQuarterService creates a new quarter service instance.
func NewQuarterService(repo quarterRepository, scope ScopeRefresher, validate *validator.Validate, logger *zap.Logger) *QuarterService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuarterService{repo: repo, scope: scope, validator: validate, logger: logger}
}

// List returns paginated quarters.
func (s *QuarterService) List(ctx context.Context, filter models.QuarterFilter) ([]models.Quarter, *models.Pagination, error) {
	quarters, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list quarters")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}

	pagination := &models.Pagination{
		Page:       page,
		PageSize:   size,
		TotalCount: total,
	}
	return quarters, pagination, nil
}

// Get returns a quarter by ID.
func (s *QuarterService) Get(ctx context.Context, id string) (*models.Quarter, error) {
	quarter, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "quarter not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load quarter")
	}
	return quarter, nil
}

// GetActive returns the teacher's currently active quarter.
func (s *QuarterService) GetActive(ctx context.Context, teacherID string) (*models.Quarter, error) {
	quarter, err := s.repo.FindActiveByTeacher(ctx, teacherID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no active quarter")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load active quarter")
	}
	return quarter, nil
}

// Create adds a new quarter with the requested status, defaulting to
// upcoming. Creating an active quarter demotes the previous holder in the
// same transaction.
func (s *QuarterService) Create(ctx context.Context, req CreateQuarterRequest) (*models.Quarter, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid quarter payload")
	}
	if !req.StartDate.Before(req.EndDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start_date must be before end_date")
	}

	status := req.Status
	if status == "" {
		status = models.QuarterStatusUpcoming
	}
	if !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown quarter status")
	}

	quarter := &models.Quarter{
		TeacherID: req.TeacherID,
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    status,
	}
	// Active rows are only ever written by the demote-then-promote
	// transaction, so the insert always lands as a non-active status first.
	if status == models.QuarterStatusActive {
		quarter.Status = models.QuarterStatusUpcoming
	}

	if err := s.repo.Create(ctx, quarter); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create quarter")
	}

	if status == models.QuarterStatusActive {
		if err := s.repo.Activate(ctx, req.TeacherID, quarter.ID); err != nil {
			s.logger.Error("failed to activate quarter after create", zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to activate quarter")
		}
		quarter.Status = models.QuarterStatusActive
	}

	return quarter, nil
}

// Update modifies a quarter record. Promoting the status to active goes
// through the transactional path rather than a plain column write.
func (s *QuarterService) Update(ctx context.Context, id string, req UpdateQuarterRequest) (*models.Quarter, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid quarter payload")
	}
	if !req.Status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown quarter status")
	}
	if !req.StartDate.Before(req.EndDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start_date must be before end_date")
	}

	quarter, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "quarter not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load quarter")
	}

	promote := req.Status == models.QuarterStatusActive && quarter.Status != models.QuarterStatusActive

	quarter.Name = req.Name
	quarter.StartDate = req.StartDate
	quarter.EndDate = req.EndDate
	if !promote {
		quarter.Status = req.Status
	}

	if err := s.repo.Update(ctx, quarter); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update quarter")
	}

	if promote {
		if err := s.repo.Activate(ctx, quarter.TeacherID, quarter.ID); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to activate quarter")
		}
		quarter.Status = models.QuarterStatusActive
	}

	if s.scope != nil {
		s.scope.RefreshAsync(quarter.ID)
	}
	return quarter, nil
}

// Activate designates a quarter as the teacher's active one.
func (s *QuarterService) Activate(ctx context.Context, id string) (*models.Quarter, error) {
	quarter, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "quarter not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load quarter")
	}

	if err := s.repo.Activate(ctx, quarter.TeacherID, quarter.ID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to activate quarter")
	}
	quarter.Status = models.QuarterStatusActive
	return quarter, nil
}

// Delete removes a quarter and all of its scoped data, then returns the
// teacher's active quarter as a fallback selection, or nil when no quarter
// holds the active status.
func (s *QuarterService) Delete(ctx context.Context, id string) (*models.Quarter, error) {
	quarter, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "quarter not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load quarter")
	}

	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete quarter")
	}

	if s.scope != nil {
		s.scope.Invalidate(id)
	}

	fallback, err := s.repo.FindActiveByTeacher(ctx, quarter.TeacherID)
	if err != nil {
		if err != sql.ErrNoRows {
			s.logger.Warn("failed to load fallback quarter after delete", zap.Error(err))
		}
		return nil, nil
	}
	return fallback, nil
}
