package service

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/crixfer/DIID-GS/internal/holidays"
	"github.com/crixfer/DIID-GS/internal/models"
	appErrors "github.com/crixfer/DIID-GS/pkg/errors"
)

type calendarNoteRepository interface {
	ListByQuarter(ctx context.Context, quarterID string) ([]models.CalendarNote, error)
	FindByID(ctx context.Context, id string) (*models.CalendarNote, error)
	Create(ctx context.Context, note *models.CalendarNote) error
	Update(ctx context.Context, note *models.CalendarNote) error
	Delete(ctx context.Context, id string) error
}

type calendarQuarterReader interface {
	FindByID(ctx context.Context, id string) (*models.Quarter, error)
}

// CreateCalendarNoteRequest adds a note to a quarter's calendar.
type CreateCalendarNoteRequest struct {
	Date        time.Time               `json:"date" validate:"required"`
	Title       string                  `json:"title" validate:"required"`
	Description string                  `json:"description"`
	Type        models.CalendarNoteType `json:"type" validate:"required"`
}

// UpdateCalendarNoteRequest updates mutable note fields.
type UpdateCalendarNoteRequest struct {
	Date        time.Time               `json:"date" validate:"required"`
	Title       string                  `json:"title" validate:"required"`
	Description string                  `json:"description"`
	Type        models.CalendarNoteType `json:"type" validate:"required"`
}

// CalendarAgenda is a quarter's calendar view: persisted notes plus the
// fixed holidays falling inside the quarter window.
type CalendarAgenda struct {
	QuarterID string                `json:"quarter_id"`
	Notes     []models.CalendarNote `json:"notes"`
	Holidays  []models.Holiday      `json:"holidays"`
}

// CalendarService manages notes and merges the holiday overlay.
type CalendarService struct {
	notes     calendarNoteRepository
	quarters  calendarQuarterReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCalendarService creates a new calendar service instance.
func NewCalendarService(notes calendarNoteRepository, quarters calendarQuarterReader, validate *validator.Validate, logger *zap.Logger) *CalendarService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarService{notes: notes, quarters: quarters, validator: validate, logger: logger}
}

// Agenda returns the merged calendar for a quarter.
func (s *CalendarService) Agenda(ctx context.Context, quarterID string) (*CalendarAgenda, error) {
	quarter, err := s.quarters.FindByID(ctx, quarterID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "quarter not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load quarter")
	}

	notes, err := s.notes.ListByQuarter(ctx, quarterID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list calendar notes")
	}

	overlay := holidays.Between(quarter.StartDate, quarter.EndDate)
	sort.Slice(overlay, func(i, j int) bool { return overlay[i].Date.Before(overlay[j].Date) })

	return &CalendarAgenda{QuarterID: quarterID, Notes: notes, Holidays: overlay}, nil
}

// CreateNote adds a note to the quarter's calendar.
func (s *CalendarService) CreateNote(ctx context.Context, quarterID string, req CreateCalendarNoteRequest) (*models.CalendarNote, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid note payload")
	}
	if !req.Type.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown note type")
	}

	note := &models.CalendarNote{
		QuarterID:   quarterID,
		Date:        req.Date,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create note")
	}
	return note, nil
}

// UpdateNote modifies a note.
func (s *CalendarService) UpdateNote(ctx context.Context, id string, req UpdateCalendarNoteRequest) (*models.CalendarNote, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid note payload")
	}
	if !req.Type.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown note type")
	}

	note, err := s.notes.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "note not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load note")
	}

	note.Date = req.Date
	note.Title = req.Title
	note.Description = req.Description
	note.Type = req.Type

	if err := s.notes.Update(ctx, note); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "note not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update note")
	}
	return note, nil
}

// DeleteNote removes a note.
func (s *CalendarService) DeleteNote(ctx context.Context, id string) error {
	if err := s.notes.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "note not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete note")
	}
	return nil
}
