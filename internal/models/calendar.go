package models

import "time"

// CalendarNoteType tags a calendar note.
type CalendarNoteType string

const (
	CalendarNoteTypeExcuse   CalendarNoteType = "excuse"
	CalendarNoteTypeHoliday  CalendarNoteType = "holiday"
	CalendarNoteTypeReminder CalendarNoteType = "reminder"
)

// Valid returns true when the type is a supported value.
func (t CalendarNoteType) Valid() bool {
	switch t {
	case CalendarNoteTypeExcuse, CalendarNoteTypeHoliday, CalendarNoteTypeReminder:
		return true
	default:
		return false
	}
}

// CalendarNote is a date-scoped annotation within a quarter. The core
// consumes notes as a read-only overlay; scoring never depends on them.
type CalendarNote struct {
	ID          string           `db:"id" json:"id"`
	QuarterID   string           `db:"quarter_id" json:"quarter_id"`
	Date        time.Time        `db:"date" json:"date"`
	Title       string           `db:"title" json:"title"`
	Description string           `db:"description" json:"description"`
	Type        CalendarNoteType `db:"type" json:"type"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
}

// HolidayType categorises fixed national holidays.
type HolidayType string

const (
	HolidayTypeNational  HolidayType = "national"
	HolidayTypeReligious HolidayType = "religious"
	HolidayTypeAcademic  HolidayType = "academic"
)

// Holiday is a fixed calendar holiday merged into calendar reads.
type Holiday struct {
	Date time.Time   `json:"date"`
	Name string      `json:"name"`
	Type HolidayType `json:"type"`
}
