package service

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/crixfer/DIID-GS/internal/dto"
	"github.com/crixfer/DIID-GS/internal/models"
	appErrors "github.com/crixfer/DIID-GS/pkg/errors"
)

type dashboardQuarterReader interface {
	FindByID(ctx context.Context, id string) (*models.Quarter, error)
}

type dashboardEnrollmentCounter interface {
	CountByQuarter(ctx context.Context, quarterID string) (int, error)
}

// DashboardService assembles the overview figures for one quarter. Reads go
// through the cache when enabled; every scoped write invalidates through the
// scope refresher, so a short TTL is acceptable here.
type DashboardService struct {
	quarters    dashboardQuarterReader
	enrollments dashboardEnrollmentCounter
	grades      gradeRepository
	attendances attendanceRepository
	cache       *CacheService
	logger      *zap.Logger
}

// NewDashboardService creates a new dashboard service instance.
func NewDashboardService(quarters dashboardQuarterReader, enrollments dashboardEnrollmentCounter, grades gradeRepository, attendances attendanceRepository, cache *CacheService, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		quarters:    quarters,
		enrollments: enrollments,
		grades:      grades,
		attendances: attendances,
		cache:       cache,
		logger:      logger,
	}
}

// Overview computes the quarter's headline figures.
func (s *DashboardService) Overview(ctx context.Context, quarterID string) (*dto.DashboardOverview, error) {
	cacheKey := "scope:" + quarterID + ":dashboard"
	var cached dto.DashboardOverview
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return &cached, nil
	}

	quarter, err := s.quarters.FindByID(ctx, quarterID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "quarter not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load quarter")
	}

	enrolled, err := s.enrollments.CountByQuarter(ctx, quarterID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count enrollments")
	}

	grades, err := s.grades.ListByQuarter(ctx, quarterID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grades")
	}

	var average float64
	var dist models.GradeDistribution
	for _, grade := range grades {
		average += grade.TotalScore
		switch grade.LetterGrade {
		case "A":
			dist.A++
		case "B":
			dist.B++
		case "C":
			dist.C++
		case "D":
			dist.D++
		case "F":
			dist.F++
		}
	}
	if len(grades) > 0 {
		average /= float64(len(grades))
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	records, err := s.attendances.ListByDate(ctx, quarterID, today)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}
	snapshot := models.DailyAttendanceSnapshot{Date: today}
	for _, record := range records {
		switch record.Status {
		case models.AttendanceStatusPresent:
			snapshot.Present++
		case models.AttendanceStatusAbsent:
			snapshot.Absent++
		case models.AttendanceStatusExcused:
			snapshot.Excused++
		case models.AttendanceStatusLate:
			snapshot.Late++
		}
	}

	overview := &dto.DashboardOverview{
		Quarter:         quarter,
		EnrolledCount:   enrolled,
		AverageScore:    average,
		Distribution:    dist,
		TodayAttendance: snapshot,
		GeneratedAt:     time.Now().UTC(),
	}

	_ = s.cache.Set(ctx, cacheKey, overview, time.Minute)
	return overview, nil
}
