package service

import (
	"context"
	"database/sql"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crixfer/DIID-GS/internal/models"
	appErrors "github.com/crixfer/DIID-GS/pkg/errors"
)

type mockQuarterRepo struct {
	quarters map[string]models.Quarter
	deleted  []string
	nextID   int
}

func newMockQuarterRepo() *mockQuarterRepo {
	return &mockQuarterRepo{quarters: make(map[string]models.Quarter)}
}

func (m *mockQuarterRepo) List(ctx context.Context, filter models.QuarterFilter) ([]models.Quarter, int, error) {
	var result []models.Quarter
	for _, q := range m.quarters {
		if filter.TeacherID != "" && q.TeacherID != filter.TeacherID {
			continue
		}
		if filter.Status != "" && q.Status != filter.Status {
			continue
		}
		result = append(result, q)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.After(result[j].StartDate) })
	if filter.PageSize > 0 && len(result) > filter.PageSize {
		result = result[:filter.PageSize]
	}
	return result, len(result), nil
}

func (m *mockQuarterRepo) FindByID(ctx context.Context, id string) (*models.Quarter, error) {
	if q, ok := m.quarters[id]; ok {
		return &q, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockQuarterRepo) FindActiveByTeacher(ctx context.Context, teacherID string) (*models.Quarter, error) {
	for _, q := range m.quarters {
		if q.TeacherID == teacherID && q.Status == models.QuarterStatusActive {
			quarter := q
			return &quarter, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockQuarterRepo) Create(ctx context.Context, quarter *models.Quarter) error {
	if quarter.ID == "" {
		m.nextID++
		quarter.ID = "q-" + string(rune('0'+m.nextID))
	}
	m.quarters[quarter.ID] = *quarter
	return nil
}

func (m *mockQuarterRepo) Update(ctx context.Context, quarter *models.Quarter) error {
	if _, ok := m.quarters[quarter.ID]; !ok {
		return sql.ErrNoRows
	}
	m.quarters[quarter.ID] = *quarter
	return nil
}

func (m *mockQuarterRepo) Activate(ctx context.Context, teacherID, id string) error {
	if _, ok := m.quarters[id]; !ok {
		return sql.ErrNoRows
	}
	for key, q := range m.quarters {
		if q.TeacherID == teacherID && q.Status == models.QuarterStatusActive && key != id {
			q.Status = models.QuarterStatusCompleted
			m.quarters[key] = q
		}
	}
	q := m.quarters[id]
	q.Status = models.QuarterStatusActive
	m.quarters[id] = q
	return nil
}

func (m *mockQuarterRepo) DeleteCascade(ctx context.Context, id string) error {
	if _, ok := m.quarters[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.quarters, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockQuarterRepo) activeCount(teacherID string) int {
	count := 0
	for _, q := range m.quarters {
		if q.TeacherID == teacherID && q.Status == models.QuarterStatusActive {
			count++
		}
	}
	return count
}

func quarterWindow(start string) (time.Time, time.Time) {
	s, _ := time.Parse("2006-01-02", start)
	return s, s.AddDate(0, 3, 0)
}

func TestQuarterServiceCreateAndActivate(t *testing.T) {
	repo := newMockQuarterRepo()
	svc := NewQuarterService(repo, nil, nil, nil)

	start, end := quarterWindow("2025-01-06")
	quarter, err := svc.Create(context.Background(), CreateQuarterRequest{
		TeacherID: "t-1",
		Name:      "Winter 2025",
		StartDate: start,
		EndDate:   end,
		Status:    models.QuarterStatusActive,
	})
	require.NoError(t, err)
	assert.Equal(t, models.QuarterStatusActive, quarter.Status)
	assert.Equal(t, 1, repo.activeCount("t-1"))
}

func TestQuarterServiceCreateDefaultsToUpcoming(t *testing.T) {
	repo := newMockQuarterRepo()
	svc := NewQuarterService(repo, nil, nil, nil)

	start, end := quarterWindow("2025-04-07")
	quarter, err := svc.Create(context.Background(), CreateQuarterRequest{
		TeacherID: "t-1",
		Name:      "Spring 2025",
		StartDate: start,
		EndDate:   end,
	})
	require.NoError(t, err)
	assert.Equal(t, models.QuarterStatusUpcoming, quarter.Status)
}

func TestQuarterServiceCreateCompletedBackfill(t *testing.T) {
	repo := newMockQuarterRepo()
	svc := NewQuarterService(repo, nil, nil, nil)

	start, end := quarterWindow("2024-09-02")
	quarter, err := svc.Create(context.Background(), CreateQuarterRequest{
		TeacherID: "t-1",
		Name:      "Fall 2024",
		StartDate: start,
		EndDate:   end,
		Status:    models.QuarterStatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, models.QuarterStatusCompleted, quarter.Status)
	assert.Equal(t, 0, repo.activeCount("t-1"))
}

func TestQuarterServiceCreateRejectsUnknownStatus(t *testing.T) {
	repo := newMockQuarterRepo()
	svc := NewQuarterService(repo, nil, nil, nil)

	start, end := quarterWindow("2025-01-06")
	_, err := svc.Create(context.Background(), CreateQuarterRequest{
		TeacherID: "t-1",
		Name:      "Winter 2025",
		StartDate: start,
		EndDate:   end,
		Status:    models.QuarterStatus("archived"),
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestQuarterServiceCreateRejectsInvertedDates(t *testing.T) {
	repo := newMockQuarterRepo()
	svc := NewQuarterService(repo, nil, nil, nil)

	start, end := quarterWindow("2025-01-06")
	_, err := svc.Create(context.Background(), CreateQuarterRequest{
		TeacherID: "t-1",
		Name:      "Backwards",
		StartDate: end,
		EndDate:   start,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestQuarterServiceActivationChainLeavesOneActive(t *testing.T) {
	repo := newMockQuarterRepo()
	svc := NewQuarterService(repo, nil, nil, nil)
	ctx := context.Background()

	var ids []string
	for i, start := range []string{"2025-01-06", "2025-04-07", "2025-07-07"} {
		s, e := quarterWindow(start)
		quarter, err := svc.Create(ctx, CreateQuarterRequest{
			TeacherID: "t-1",
			Name:      "Quarter " + string(rune('A'+i)),
			StartDate: s,
			EndDate:   e,
		})
		require.NoError(t, err)
		ids = append(ids, quarter.ID)
	}

	for _, id := range ids {
		_, err := svc.Activate(ctx, id)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, repo.activeCount("t-1"))
	last, err := svc.Get(ctx, ids[2])
	require.NoError(t, err)
	assert.Equal(t, models.QuarterStatusActive, last.Status)

	first, err := svc.Get(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, models.QuarterStatusCompleted, first.Status)
}

func TestQuarterServiceUpdatePromotionGoesThroughActivate(t *testing.T) {
	repo := newMockQuarterRepo()
	svc := NewQuarterService(repo, nil, nil, nil)
	ctx := context.Background()

	s1, e1 := quarterWindow("2025-01-06")
	active, err := svc.Create(ctx, CreateQuarterRequest{TeacherID: "t-1", Name: "Current", StartDate: s1, EndDate: e1, Status: models.QuarterStatusActive})
	require.NoError(t, err)

	s2, e2 := quarterWindow("2025-04-07")
	next, err := svc.Create(ctx, CreateQuarterRequest{TeacherID: "t-1", Name: "Next", StartDate: s2, EndDate: e2})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, next.ID, UpdateQuarterRequest{
		Name:      "Next",
		StartDate: s2,
		EndDate:   e2,
		Status:    models.QuarterStatusActive,
	})
	require.NoError(t, err)
	assert.Equal(t, models.QuarterStatusActive, updated.Status)
	assert.Equal(t, 1, repo.activeCount("t-1"))

	demoted, err := svc.Get(ctx, active.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QuarterStatusCompleted, demoted.Status)
}

func TestQuarterServiceDeleteFallsBackToActiveQuarter(t *testing.T) {
	repo := newMockQuarterRepo()
	svc := NewQuarterService(repo, nil, nil, nil)
	ctx := context.Background()

	s1, e1 := quarterWindow("2025-01-06")
	active, err := svc.Create(ctx, CreateQuarterRequest{TeacherID: "t-1", Name: "Current", StartDate: s1, EndDate: e1, Status: models.QuarterStatusActive})
	require.NoError(t, err)

	// More recent than the active quarter, but not the fallback.
	s2, e2 := quarterWindow("2025-04-07")
	_, err = svc.Create(ctx, CreateQuarterRequest{TeacherID: "t-1", Name: "Next", StartDate: s2, EndDate: e2})
	require.NoError(t, err)

	s3, e3 := quarterWindow("2024-09-02")
	doomed, err := svc.Create(ctx, CreateQuarterRequest{TeacherID: "t-1", Name: "Doomed", StartDate: s3, EndDate: e3, Status: models.QuarterStatusCompleted})
	require.NoError(t, err)

	fallback, err := svc.Delete(ctx, doomed.ID)
	require.NoError(t, err)
	require.NotNil(t, fallback)
	assert.Equal(t, active.ID, fallback.ID)
	assert.Equal(t, models.QuarterStatusActive, fallback.Status)
	assert.Contains(t, repo.deleted, doomed.ID)
}

func TestQuarterServiceDeleteActiveQuarterNoFallback(t *testing.T) {
	repo := newMockQuarterRepo()
	svc := NewQuarterService(repo, nil, nil, nil)
	ctx := context.Background()

	s1, e1 := quarterWindow("2025-01-06")
	active, err := svc.Create(ctx, CreateQuarterRequest{TeacherID: "t-1", Name: "Current", StartDate: s1, EndDate: e1, Status: models.QuarterStatusActive})
	require.NoError(t, err)

	s2, e2 := quarterWindow("2025-04-07")
	_, err = svc.Create(ctx, CreateQuarterRequest{TeacherID: "t-1", Name: "Next", StartDate: s2, EndDate: e2})
	require.NoError(t, err)

	fallback, err := svc.Delete(ctx, active.ID)
	require.NoError(t, err)
	assert.Nil(t, fallback)
}

func TestQuarterServiceDeleteLastQuarterNoFallback(t *testing.T) {
	repo := newMockQuarterRepo()
	svc := NewQuarterService(repo, nil, nil, nil)
	ctx := context.Background()

	s, e := quarterWindow("2025-01-06")
	only, err := svc.Create(ctx, CreateQuarterRequest{TeacherID: "t-1", Name: "Only", StartDate: s, EndDate: e})
	require.NoError(t, err)

	fallback, err := svc.Delete(ctx, only.ID)
	require.NoError(t, err)
	assert.Nil(t, fallback)
}

func TestQuarterServiceGetMissing(t *testing.T) {
	repo := newMockQuarterRepo()
	svc := NewQuarterService(repo, nil, nil, nil)

	_, err := svc.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
