package dto

import (
	"time"

	"github.com/crixfer/DIID-GS/internal/models"
)

// ScopeSnapshot is the materialised view of one quarter's data: the four
// collections every screen reads, loaded together under one scope version.
// Collections that failed to load carry their error message in Errors and
// retain the previous snapshot's data.
type ScopeSnapshot struct {
	QuarterID string    `json:"quarter_id"`
	Version   uint64    `json:"version"`
	LoadedAt  time.Time `json:"loaded_at"`

	Students   []models.EnrolledStudent  `json:"students"`
	Grades     []models.StudentGrade     `json:"grades"`
	Attendance []models.AttendanceRecord `json:"attendance"`
	Notes      []models.CalendarNote     `json:"notes"`

	// Errors maps collection name to the load failure, empty on a clean load.
	Errors map[string]string `json:"errors,omitempty"`
}

// Partial reports whether any collection failed on the last load.
func (s *ScopeSnapshot) Partial() bool {
	return s != nil && len(s.Errors) > 0
}

// ScopeSelectRequest selects the quarter whose data should be loaded. An
// empty quarter id clears the scope.
type ScopeSelectRequest struct {
	QuarterID string `json:"quarter_id"`
}
