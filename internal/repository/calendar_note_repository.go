package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/crixfer/DIID-GS/internal/models"
)

// CalendarNoteRepository handles persisted calendar notes.
type CalendarNoteRepository struct {
	db *sqlx.DB
}

// NewCalendarNoteRepository instantiates a calendar note repository.
func NewCalendarNoteRepository(db *sqlx.DB) *CalendarNoteRepository {
	return &CalendarNoteRepository{db: db}
}

const calendarNoteColumns = "id, quarter_id, date, title, description, type, created_at"

// ListByQuarter returns a quarter's notes in date order.
func (r *CalendarNoteRepository) ListByQuarter(ctx context.Context, quarterID string) ([]models.CalendarNote, error) {
	query := fmt.Sprintf("SELECT %s FROM calendar_notes WHERE quarter_id = $1 ORDER BY date ASC, created_at ASC", calendarNoteColumns)
	var notes []models.CalendarNote
	if err := r.db.SelectContext(ctx, &notes, query, quarterID); err != nil {
		return nil, fmt.Errorf("list calendar notes: %w", err)
	}
	return notes, nil
}

// FindByID loads a note by identifier.
func (r *CalendarNoteRepository) FindByID(ctx context.Context, id string) (*models.CalendarNote, error) {
	query := fmt.Sprintf("SELECT %s FROM calendar_notes WHERE id = $1", calendarNoteColumns)
	var note models.CalendarNote
	if err := r.db.GetContext(ctx, &note, query, id); err != nil {
		return nil, err
	}
	return &note, nil
}

// Create inserts a new calendar note.
func (r *CalendarNoteRepository) Create(ctx context.Context, note *models.CalendarNote) error {
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO calendar_notes (id, quarter_id, date, title, description, type, created_at) VALUES (:id, :quarter_id, :date, :title, :description, :type, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, note); err != nil {
		return fmt.Errorf("create calendar note: %w", err)
	}
	return nil
}

// Update modifies an existing note.
func (r *CalendarNoteRepository) Update(ctx context.Context, note *models.CalendarNote) error {
	const query = `UPDATE calendar_notes SET date = :date, title = :title, description = :description, type = :type WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, note)
	if err != nil {
		return fmt.Errorf("update calendar note: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update calendar note rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a note by identifier.
func (r *CalendarNoteRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM calendar_notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete calendar note: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete calendar note rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
