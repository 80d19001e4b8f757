package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crixfer/DIID-GS/internal/models"
	appErrors "github.com/crixfer/DIID-GS/pkg/errors"
)

type mockCalendarNoteRepo struct {
	notes map[string]models.CalendarNote
}

func (m *mockCalendarNoteRepo) ListByQuarter(ctx context.Context, quarterID string) ([]models.CalendarNote, error) {
	var result []models.CalendarNote
	for _, n := range m.notes {
		if n.QuarterID == quarterID {
			result = append(result, n)
		}
	}
	return result, nil
}

func (m *mockCalendarNoteRepo) FindByID(ctx context.Context, id string) (*models.CalendarNote, error) {
	if n, ok := m.notes[id]; ok {
		return &n, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCalendarNoteRepo) Create(ctx context.Context, note *models.CalendarNote) error {
	if m.notes == nil {
		m.notes = make(map[string]models.CalendarNote)
	}
	if note.ID == "" {
		note.ID = "note-new"
	}
	m.notes[note.ID] = *note
	return nil
}

func (m *mockCalendarNoteRepo) Update(ctx context.Context, note *models.CalendarNote) error {
	if _, ok := m.notes[note.ID]; !ok {
		return sql.ErrNoRows
	}
	m.notes[note.ID] = *note
	return nil
}

func (m *mockCalendarNoteRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.notes[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.notes, id)
	return nil
}

type mockCalendarQuarterReader struct {
	quarters map[string]models.Quarter
}

func (m *mockCalendarQuarterReader) FindByID(ctx context.Context, id string) (*models.Quarter, error) {
	if q, ok := m.quarters[id]; ok {
		return &q, nil
	}
	return nil, sql.ErrNoRows
}

func calendarFixture() (*CalendarService, *mockCalendarNoteRepo) {
	notes := &mockCalendarNoteRepo{}
	quarters := &mockCalendarQuarterReader{quarters: map[string]models.Quarter{
		"q1": {
			ID:        "q1",
			TeacherID: "t-1",
			Name:      "Winter 2025",
			StartDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC),
			Status:    models.QuarterStatusActive,
		},
	}}
	return NewCalendarService(notes, quarters, nil, nil), notes
}

func TestCalendarAgendaMergesHolidayOverlay(t *testing.T) {
	svc, _ := calendarFixture()
	ctx := context.Background()

	_, err := svc.CreateNote(ctx, "q1", CreateCalendarNoteRequest{
		Date:  time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC),
		Title: "Oral exam window opens",
		Type:  models.CalendarNoteTypeReminder,
	})
	require.NoError(t, err)

	agenda, err := svc.Agenda(ctx, "q1")
	require.NoError(t, err)
	assert.Len(t, agenda.Notes, 1)

	// Winter 2025 window covers New Year's, Altagracia, Duarte and
	// Independence Day.
	var names []string
	for _, h := range agenda.Holidays {
		names = append(names, h.Name)
	}
	assert.Contains(t, names, "Independence Day")
	assert.Contains(t, names, "Juan Pablo Duarte Day")
	for _, h := range agenda.Holidays {
		assert.False(t, h.Date.Before(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)))
		assert.False(t, h.Date.After(time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC)))
	}
}

func TestCalendarAgendaUnknownQuarter(t *testing.T) {
	svc, _ := calendarFixture()

	_, err := svc.Agenda(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCalendarCreateNoteRejectsUnknownType(t *testing.T) {
	svc, _ := calendarFixture()

	_, err := svc.CreateNote(context.Background(), "q1", CreateCalendarNoteRequest{
		Date:  time.Now(),
		Title: "Mystery",
		Type:  models.CalendarNoteType("festival"),
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCalendarUpdateAndDeleteNote(t *testing.T) {
	svc, notes := calendarFixture()
	ctx := context.Background()

	note, err := svc.CreateNote(ctx, "q1", CreateCalendarNoteRequest{
		Date:  time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC),
		Title: "Quiz 1",
		Type:  models.CalendarNoteTypeReminder,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateNote(ctx, note.ID, UpdateCalendarNoteRequest{
		Date:  note.Date,
		Title: "Quiz 1 (rescheduled)",
		Type:  models.CalendarNoteTypeReminder,
	})
	require.NoError(t, err)
	assert.Equal(t, "Quiz 1 (rescheduled)", updated.Title)

	require.NoError(t, svc.DeleteNote(ctx, note.ID))
	assert.Empty(t, notes.notes)

	err = svc.DeleteNote(ctx, note.ID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
