package models

import "time"

// Enrollment captures a student's membership in a quarter. Deleting an
// enrollment cascades removal of that student's grade and attendance rows
// for the quarter only.
type Enrollment struct {
	ID             string    `db:"id" json:"id"`
	QuarterID      string    `db:"quarter_id" json:"quarter_id"`
	StudentID      string    `db:"student_id" json:"student_id"`
	EnrollmentDate time.Time `db:"enrollment_date" json:"enrollment_date"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
