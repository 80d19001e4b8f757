package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/crixfer/DIID-GS/internal/models"
)

// EnrollmentRepository handles quarter membership rows.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository instantiates an enrollment repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Create inserts an enrollment linking a student to a quarter.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if enrollment.ID == "" {
		enrollment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if enrollment.EnrollmentDate.IsZero() {
		enrollment.EnrollmentDate = now
	}
	if enrollment.CreatedAt.IsZero() {
		enrollment.CreatedAt = now
	}

	const query = `INSERT INTO quarter_students (id, quarter_id, student_id, enrollment_date, created_at) VALUES (:id, :quarter_id, :student_id, :enrollment_date, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, enrollment); err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

// FindByQuarterAndStudent returns the enrollment row for the pair, if any.
func (r *EnrollmentRepository) FindByQuarterAndStudent(ctx context.Context, quarterID, studentID string) (*models.Enrollment, error) {
	const query = `SELECT id, quarter_id, student_id, enrollment_date, created_at FROM quarter_students WHERE quarter_id = $1 AND student_id = $2`
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, quarterID, studentID); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// DeleteCascade removes the enrollment together with the student's grade and
// attendance rows for that quarter. All deletes run in one transaction so an
// unenrolled student never leaves orphaned quarter data behind.
func (r *EnrollmentRepository) DeleteCascade(ctx context.Context, quarterID, studentID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin unenroll tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	cascades := []string{
		`DELETE FROM attendance_records WHERE quarter_id = $1 AND student_id = $2`,
		`DELETE FROM student_grades WHERE quarter_id = $1 AND student_id = $2`,
	}
	for _, stmt := range cascades {
		if _, err = tx.ExecContext(ctx, stmt, quarterID, studentID); err != nil {
			return fmt.Errorf("cascade delete enrollment records: %w", err)
		}
	}

	var result sql.Result
	if result, err = tx.ExecContext(ctx, `DELETE FROM quarter_students WHERE quarter_id = $1 AND student_id = $2`, quarterID, studentID); err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	var affected int64
	if affected, err = result.RowsAffected(); err != nil {
		return fmt.Errorf("delete enrollment rows: %w", err)
	}
	if affected == 0 {
		err = sql.ErrNoRows
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit unenroll tx: %w", err)
	}
	return nil
}

// CountByQuarter reports the enrolled headcount for a quarter.
func (r *EnrollmentRepository) CountByQuarter(ctx context.Context, quarterID string) (int, error) {
	const query = `SELECT COUNT(*) FROM quarter_students WHERE quarter_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, quarterID); err != nil {
		return 0, fmt.Errorf("count enrollments: %w", err)
	}
	return count, nil
}
