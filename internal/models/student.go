package models

import "time"

// Student represents a learner registered in the system. Students are
// teacher-independent and may be enrolled in any number of quarters.
type Student struct {
	ID          string    `db:"id" json:"id"`
	FirstName   string    `db:"first_name" json:"first_name"`
	LastName    string    `db:"last_name" json:"last_name"`
	StudentCode string    `db:"student_id" json:"student_id"`
	Email       string    `db:"email" json:"email"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// EnrolledStudent extends Student with the enrollment context for a quarter.
type EnrolledStudent struct {
	Student
	EnrollmentID   string    `db:"enrollment_id" json:"enrollment_id"`
	QuarterID      string    `db:"quarter_id" json:"quarter_id"`
	EnrollmentDate time.Time `db:"enrollment_date" json:"enrollment_date"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Search    string
	QuarterID string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
