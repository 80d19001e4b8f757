package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/crixfer/DIID-GS/internal/models"
)

// GradeRepository handles persisted grade rows. The grades column carries the
// raw component sets as JSON while total_score and letter_grade hold the
// derived values written in the same statement.
type GradeRepository struct {
	db *sqlx.DB
}

// NewGradeRepository instantiates a grade repository.
func NewGradeRepository(db *sqlx.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

const gradeColumns = "student_id, quarter_id, grades, total_score, letter_grade, created_at, updated_at"

// ListByQuarter returns all grade rows for a quarter.
func (r *GradeRepository) ListByQuarter(ctx context.Context, quarterID string) ([]models.StudentGrade, error) {
	query := fmt.Sprintf("SELECT %s FROM student_grades WHERE quarter_id = $1", gradeColumns)
	var grades []models.StudentGrade
	if err := r.db.SelectContext(ctx, &grades, query, quarterID); err != nil {
		return nil, fmt.Errorf("list grades by quarter: %w", err)
	}
	return grades, nil
}

// FindByStudentAndQuarter loads a single grade row.
func (r *GradeRepository) FindByStudentAndQuarter(ctx context.Context, studentID, quarterID string) (*models.StudentGrade, error) {
	query := fmt.Sprintf("SELECT %s FROM student_grades WHERE student_id = $1 AND quarter_id = $2", gradeColumns)
	var grade models.StudentGrade
	if err := r.db.GetContext(ctx, &grade, query, studentID, quarterID); err != nil {
		return nil, err
	}
	return &grade, nil
}

// Upsert writes the grade row for a (student, quarter) pair, replacing any
// previous row. Raw components and derived fields land atomically so a
// reader never sees a total that disagrees with its components.
func (r *GradeRepository) Upsert(ctx context.Context, grade *models.StudentGrade) error {
	now := time.Now().UTC()
	if grade.CreatedAt.IsZero() {
		grade.CreatedAt = now
	}
	grade.UpdatedAt = now

	const query = `
		INSERT INTO student_grades (student_id, quarter_id, grades, total_score, letter_grade, created_at, updated_at)
		VALUES (:student_id, :quarter_id, :grades, :total_score, :letter_grade, :created_at, :updated_at)
		ON CONFLICT (student_id, quarter_id)
		DO UPDATE SET grades = EXCLUDED.grades, total_score = EXCLUDED.total_score, letter_grade = EXCLUDED.letter_grade, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, grade); err != nil {
		return fmt.Errorf("upsert grade: %w", err)
	}
	return nil
}

// Distribution tallies letter grades across a quarter.
func (r *GradeRepository) Distribution(ctx context.Context, quarterID string) (*models.GradeDistribution, error) {
	const query = `SELECT letter_grade, COUNT(*) AS count FROM student_grades WHERE quarter_id = $1 GROUP BY letter_grade`

	rows, err := r.db.QueryxContext(ctx, query, quarterID)
	if err != nil {
		return nil, fmt.Errorf("grade distribution: %w", err)
	}
	defer rows.Close()

	var dist models.GradeDistribution
	for rows.Next() {
		var letter string
		var count int
		if err := rows.Scan(&letter, &count); err != nil {
			return nil, fmt.Errorf("scan grade distribution: %w", err)
		}
		switch letter {
		case "A":
			dist.A = count
		case "B":
			dist.B = count
		case "C":
			dist.C = count
		case "D":
			dist.D = count
		case "F":
			dist.F = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("grade distribution rows: %w", err)
	}
	return &dist, nil
}

// Report joins grades with student names for export views.
func (r *GradeRepository) Report(ctx context.Context, quarterID string) ([]models.GradeReportRow, error) {
	const query = `
		SELECT g.student_id, s.first_name || ' ' || s.last_name AS student_name, g.total_score, g.letter_grade
		FROM student_grades g
		JOIN students s ON s.id = g.student_id
		WHERE g.quarter_id = $1
		ORDER BY s.last_name ASC, s.first_name ASC`

	var rowsOut []models.GradeReportRow
	if err := r.db.SelectContext(ctx, &rowsOut, query, quarterID); err != nil {
		return nil, fmt.Errorf("grade report: %w", err)
	}
	return rowsOut, nil
}
