package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// GradeComponents holds the raw component scores for a regular period.
// Every field is expected in the 0-100 range before weighting.
type GradeComponents struct {
	ParticipationHomework float64 `json:"participationHomework"`
	Presentations         float64 `json:"presentations"`
	Quizzes               float64 `json:"quizzes"`
	CompositionExam       float64 `json:"compositionExam"`
	OralExam              float64 `json:"oralExam"`
}

// FinalGradeComponents holds the raw component scores for the final period.
type FinalGradeComponents struct {
	FinalOralExam    float64 `json:"finalOralExam"`
	FinalGrammarExam float64 `json:"finalGrammarExam"`
}

// PeriodGrades groups the three grading windows of a quarter. It is stored
// as a JSON column on student_grades.
type PeriodGrades struct {
	Period1     GradeComponents      `json:"period1"`
	Period2     GradeComponents      `json:"period2"`
	FinalPeriod FinalGradeComponents `json:"finalPeriod"`
}

// Value implements driver.Valuer so PeriodGrades persists as JSON.
func (p PeriodGrades) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner for the JSON grades column.
func (p *PeriodGrades) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	case nil:
		*p = PeriodGrades{}
		return nil
	default:
		return fmt.Errorf("unsupported grades column type %T", src)
	}
}

// StudentGrade is the persisted grade row for a student within a quarter.
// TotalScore and LetterGrade are derived fields; they are always recomputed
// from the component sets and never accepted from a caller.
type StudentGrade struct {
	StudentID   string       `db:"student_id" json:"student_id"`
	QuarterID   string       `db:"quarter_id" json:"quarter_id"`
	Grades      PeriodGrades `db:"grades" json:"grades"`
	TotalScore  float64      `db:"total_score" json:"total_score"`
	LetterGrade string       `db:"letter_grade" json:"letter_grade"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updated_at"`
}

// GradeDistribution counts letter grades across a quarter.
type GradeDistribution struct {
	A int `json:"A"`
	B int `json:"B"`
	C int `json:"C"`
	D int `json:"D"`
	F int `json:"F"`
}

// GradeReportRow represents a student's computed grade for reporting.
type GradeReportRow struct {
	StudentID   string  `db:"student_id" json:"student_id"`
	StudentName string  `db:"student_name" json:"student_name"`
	TotalScore  float64 `db:"total_score" json:"total_score"`
	LetterGrade string  `db:"letter_grade" json:"letter_grade"`
}
