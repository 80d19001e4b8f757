package models

import "time"

// QuarterStatus represents the lifecycle state of an academic quarter.
type QuarterStatus string

const (
	QuarterStatusUpcoming  QuarterStatus = "upcoming"
	QuarterStatusActive    QuarterStatus = "active"
	QuarterStatusCompleted QuarterStatus = "completed"
)

// Valid returns true when the status is a supported value.
func (s QuarterStatus) Valid() bool {
	switch s {
	case QuarterStatusUpcoming, QuarterStatusActive, QuarterStatusCompleted:
		return true
	default:
		return false
	}
}

// Quarter models a bounded academic term owned by a teacher. At most one
// quarter per teacher may hold the active status at any time.
type Quarter struct {
	ID        string        `db:"id" json:"id"`
	TeacherID string        `db:"teacher_id" json:"teacher_id"`
	Name      string        `db:"name" json:"name"`
	StartDate time.Time     `db:"start_date" json:"start_date"`
	EndDate   time.Time     `db:"end_date" json:"end_date"`
	Status    QuarterStatus `db:"status" json:"status"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt time.Time     `db:"updated_at" json:"updated_at"`
}

// QuarterFilter defines filters supported by list endpoints.
type QuarterFilter struct {
	TeacherID string
	Status    QuarterStatus
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
