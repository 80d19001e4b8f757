package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/crixfer/DIID-GS/internal/models"
)

// AttendanceRepository handles attendance marks. Rows are unique per
// (student, quarter, date); re-marking a day replaces the stored status.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository instantiates an attendance repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

const attendanceColumns = "student_id, quarter_id, date, status, notes, created_at, updated_at"

// ListByQuarter returns every attendance record in a quarter.
func (r *AttendanceRepository) ListByQuarter(ctx context.Context, quarterID string) ([]models.AttendanceRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM attendance_records WHERE quarter_id = $1 ORDER BY date ASC", attendanceColumns)
	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, quarterID); err != nil {
		return nil, fmt.Errorf("list attendance by quarter: %w", err)
	}
	return records, nil
}

// ListByStudentAndQuarter returns a student's records in a quarter.
func (r *AttendanceRepository) ListByStudentAndQuarter(ctx context.Context, studentID, quarterID string) ([]models.AttendanceRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM attendance_records WHERE student_id = $1 AND quarter_id = $2 ORDER BY date ASC", attendanceColumns)
	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, studentID, quarterID); err != nil {
		return nil, fmt.Errorf("list attendance by student: %w", err)
	}
	return records, nil
}

// ListByDate returns all records for one date within a quarter.
func (r *AttendanceRepository) ListByDate(ctx context.Context, quarterID string, date time.Time) ([]models.AttendanceRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM attendance_records WHERE quarter_id = $1 AND date = $2", attendanceColumns)
	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, quarterID, date); err != nil {
		return nil, fmt.Errorf("list attendance by date: %w", err)
	}
	return records, nil
}

// Upsert writes a mark for (student, quarter, date), replacing any existing
// mark for that day.
func (r *AttendanceRepository) Upsert(ctx context.Context, record *models.AttendanceRecord) error {
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	const query = `
		INSERT INTO attendance_records (student_id, quarter_id, date, status, notes, created_at, updated_at)
		VALUES (:student_id, :quarter_id, :date, :status, :notes, :created_at, :updated_at)
		ON CONFLICT (student_id, quarter_id, date)
		DO UPDATE SET status = EXCLUDED.status, notes = EXCLUDED.notes, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("upsert attendance: %w", err)
	}
	return nil
}

// Delete removes the mark for (student, quarter, date). Deleting a day that
// was never marked returns sql.ErrNoRows.
func (r *AttendanceRepository) Delete(ctx context.Context, studentID, quarterID string, date time.Time) error {
	const query = `DELETE FROM attendance_records WHERE student_id = $1 AND quarter_id = $2 AND date = $3`
	result, err := r.db.ExecContext(ctx, query, studentID, quarterID, date)
	if err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
