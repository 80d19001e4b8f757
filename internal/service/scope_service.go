package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/crixfer/DIID-GS/internal/dto"
	"github.com/crixfer/DIID-GS/internal/models"
	appErrors "github.com/crixfer/DIID-GS/pkg/errors"
	"github.com/crixfer/DIID-GS/pkg/jobs"
)

type scopeStudentLister interface {
	ListByQuarter(ctx context.Context, quarterID string) ([]models.EnrolledStudent, error)
}

type scopeGradeLister interface {
	ListByQuarter(ctx context.Context, quarterID string) ([]models.StudentGrade, error)
}

type scopeAttendanceLister interface {
	ListByQuarter(ctx context.Context, quarterID string) ([]models.AttendanceRecord, error)
}

type scopeNoteLister interface {
	ListByQuarter(ctx context.Context, quarterID string) ([]models.CalendarNote, error)
}

// ScopeService maintains the materialised snapshot for the selected quarter.
// Selecting a quarter bumps a version counter and loads the four collections
// concurrently; a load that finishes after a newer selection is discarded so
// the snapshot never mixes quarters. Collections fail independently: a
// failed one keeps its last-known-good data for the same quarter and records
// the error on the snapshot.
type ScopeService struct {
	students   scopeStudentLister
	grades     scopeGradeLister
	attendance scopeAttendanceLister
	notes      scopeNoteLister

	cache    *CacheService
	metrics  *MetricsService
	logger   *zap.Logger
	timeout  time.Duration
	cacheTTL time.Duration

	version uint64
	mu      sync.RWMutex
	current dto.ScopeSnapshot

	queue *jobs.Queue
}

// ScopeServiceConfig wires the scope service's tunables.
type ScopeServiceConfig struct {
	FetchTimeout   time.Duration
	CacheTTL       time.Duration
	RefreshWorkers int
}

// NewScopeService constructs the scope service. Call Start before enqueueing
// background refreshes and Stop on shutdown.
func NewScopeService(students scopeStudentLister, grades scopeGradeLister, attendance scopeAttendanceLister, notes scopeNoteLister,
	cache *CacheService, metrics *MetricsService, cfg ScopeServiceConfig, logger *zap.Logger) *ScopeService {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 10 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &ScopeService{
		students:   students,
		grades:     grades,
		attendance: attendance,
		notes:      notes,
		cache:      cache,
		metrics:    metrics,
		logger:     logger,
		timeout:    cfg.FetchTimeout,
		cacheTTL:   cfg.CacheTTL,
	}
	s.queue = jobs.NewQueue("scope-refresh", s.handleRefreshJob, jobs.QueueConfig{
		Workers: cfg.RefreshWorkers,
		Logger:  logger,
	})
	return s
}

// Start launches the background refresh workers.
func (s *ScopeService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the refresh workers.
func (s *ScopeService) Stop() {
	s.queue.Stop()
}

// Snapshot returns the current scope snapshot.
func (s *ScopeService) Snapshot() dto.ScopeSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Select switches the scope to the given quarter and loads its collections.
// An empty quarter id clears the scope. When a newer selection lands while
// this load is in flight, the result is thrown away and the call reports
// the supersession instead of installing stale data.
func (s *ScopeService) Select(ctx context.Context, quarterID string) (*dto.ScopeSnapshot, error) {
	version := atomic.AddUint64(&s.version, 1)

	if quarterID == "" {
		empty := dto.ScopeSnapshot{Version: version, LoadedAt: time.Now().UTC()}
		if !s.install(empty, version) {
			if s.metrics != nil {
				s.metrics.RecordStaleDiscard()
			}
			return nil, appErrors.Clone(appErrors.ErrConflict, "scope selection superseded")
		}
		return &empty, nil
	}

	snapshot, err := s.load(ctx, quarterID, version)
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// RefreshAsync schedules a snapshot rebuild for the quarter. Refreshes for
// quarters other than the selected one are dropped by the worker.
func (s *ScopeService) RefreshAsync(quarterID string) {
	if quarterID == "" {
		return
	}
	err := s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    "scope.refresh",
		Payload: quarterID,
	})
	if err != nil {
		s.logger.Warn("failed to enqueue scope refresh", zap.String("quarter_id", quarterID), zap.Error(err))
	}
}

// Invalidate drops cached snapshots for the quarter and clears the scope
// when that quarter is currently selected, e.g. after the quarter was
// deleted.
func (s *ScopeService) Invalidate(quarterID string) {
	if s.cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = s.cache.Invalidate(ctx, fmt.Sprintf("scope:%s:*", quarterID))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current.QuarterID == quarterID {
		version := atomic.AddUint64(&s.version, 1)
		s.current = dto.ScopeSnapshot{Version: version, LoadedAt: time.Now().UTC()}
	}
}

func (s *ScopeService) handleRefreshJob(ctx context.Context, job jobs.Job) error {
	quarterID, ok := job.Payload.(string)
	if !ok || quarterID == "" {
		return nil
	}

	// The write that scheduled this job made every cached read for the
	// quarter stale, selected or not.
	if s.cache != nil {
		cacheCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		_ = s.cache.Invalidate(cacheCtx, fmt.Sprintf("scope:%s:*", quarterID))
		cancel()
	}

	// Rebuild under the version active right now; a Select racing this
	// refresh bumps the counter and the install below is discarded.
	version := atomic.LoadUint64(&s.version)

	s.mu.RLock()
	selected := s.current.QuarterID
	s.mu.RUnlock()
	if selected != quarterID {
		return nil
	}

	_, err := s.load(ctx, quarterID, version)
	if appErr := appErrors.FromError(err); appErr != nil && appErr.Code == appErrors.ErrConflict.Code {
		return nil
	}
	return err
}

type collectionResult struct {
	name string
	err  error
}

// load fetches the four collections concurrently and installs the snapshot
// if the version is still current.
func (s *ScopeService) load(ctx context.Context, quarterID string, version uint64) (*dto.ScopeSnapshot, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	snapshot := dto.ScopeSnapshot{
		QuarterID: quarterID,
		Version:   version,
		Errors:    map[string]string{},
	}

	var wg sync.WaitGroup
	results := make([]collectionResult, 4)

	wg.Add(4)
	go func() {
		defer wg.Done()
		students, err := s.students.ListByQuarter(ctx, quarterID)
		snapshot.Students = students
		results[0] = collectionResult{name: "students", err: err}
	}()
	go func() {
		defer wg.Done()
		grades, err := s.grades.ListByQuarter(ctx, quarterID)
		snapshot.Grades = grades
		results[1] = collectionResult{name: "grades", err: err}
	}()
	go func() {
		defer wg.Done()
		records, err := s.attendance.ListByQuarter(ctx, quarterID)
		snapshot.Attendance = records
		results[2] = collectionResult{name: "attendance", err: err}
	}()
	go func() {
		defer wg.Done()
		notes, err := s.notes.ListByQuarter(ctx, quarterID)
		snapshot.Notes = notes
		results[3] = collectionResult{name: "notes", err: err}
	}()
	wg.Wait()

	previous := s.Snapshot()
	for _, result := range results {
		if result.err == nil {
			continue
		}
		snapshot.Errors[result.name] = result.err.Error()
		if previous.QuarterID != quarterID {
			continue
		}
		// Keep the last good copy for this quarter so one failed
		// collection does not blank the whole screen.
		switch result.name {
		case "students":
			snapshot.Students = previous.Students
		case "grades":
			snapshot.Grades = previous.Grades
		case "attendance":
			snapshot.Attendance = previous.Attendance
		case "notes":
			snapshot.Notes = previous.Notes
		}
	}
	if len(snapshot.Errors) == 0 {
		snapshot.Errors = nil
	}
	snapshot.LoadedAt = time.Now().UTC()

	if !s.install(snapshot, version) {
		if s.metrics != nil {
			s.metrics.RecordStaleDiscard()
			s.metrics.ObserveScopeLoad("stale", time.Since(start))
		}
		return nil, appErrors.Clone(appErrors.ErrConflict, "scope selection superseded")
	}

	outcome := "ok"
	if snapshot.Partial() {
		outcome = "partial"
		s.logger.Warn("scope loaded with failed collections",
			zap.String("quarter_id", quarterID),
			zap.Any("errors", snapshot.Errors))
	}
	if s.metrics != nil {
		s.metrics.ObserveScopeLoad(outcome, time.Since(start))
	}

	if s.cache != nil && !snapshot.Partial() {
		cacheCtx, cacheCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cacheCancel()
		_ = s.cache.Set(cacheCtx, fmt.Sprintf("scope:%s:snapshot", quarterID), snapshot, s.cacheTTL)
	}

	return &snapshot, nil
}

// install publishes the snapshot unless a newer selection superseded it.
func (s *ScopeService) install(snapshot dto.ScopeSnapshot, version uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if atomic.LoadUint64(&s.version) != version {
		return false
	}
	s.current = snapshot
	return true
}
