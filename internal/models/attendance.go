package models

import "time"

// AttendanceStatus represents the status for attendance records.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusExcused AttendanceStatus = "excused"
	AttendanceStatusLate    AttendanceStatus = "late"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusExcused, AttendanceStatusLate:
		return true
	default:
		return false
	}
}

// AttendanceRecord is a single day's attendance mark for a student within a
// quarter. Unique per (student, quarter, date); later writes replace the
// record rather than duplicating it.
type AttendanceRecord struct {
	StudentID string           `db:"student_id" json:"student_id"`
	QuarterID string           `db:"quarter_id" json:"quarter_id"`
	Date      time.Time        `db:"date" json:"date"`
	Status    AttendanceStatus `db:"status" json:"status"`
	Notes     *string          `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt time.Time        `db:"updated_at" json:"updated_at"`
}

// AttendanceStats summarises a student's attendance over a scope.
type AttendanceStats struct {
	TotalDays   int     `json:"total_days"`
	PresentDays int     `json:"present_days"`
	Rate        float64 `json:"rate"`
}

// DailyAttendanceSnapshot counts statuses across a cohort for one date.
type DailyAttendanceSnapshot struct {
	Date    time.Time `json:"date"`
	Present int       `json:"present"`
	Absent  int       `json:"absent"`
	Excused int       `json:"excused"`
	Late    int       `json:"late"`
}

// AttendanceBreakdown is the per-status tally for one student across a
// whole quarter, used by history views.
type AttendanceBreakdown struct {
	StudentID string `json:"student_id"`
	Present   int    `json:"present"`
	Absent    int    `json:"absent"`
	Excused   int    `json:"excused"`
	Late      int    `json:"late"`
	Total     int    `json:"total"`
}
