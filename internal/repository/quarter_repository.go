package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/crixfer/DIID-GS/internal/models"
)

// QuarterRepository handles persistence for academic quarters.
type QuarterRepository struct {
	db *sqlx.DB
}

// NewQuarterRepository instantiates a quarter repository.
func NewQuarterRepository(db *sqlx.DB) *QuarterRepository {
	return &QuarterRepository{db: db}
}

const quarterColumns = "id, teacher_id, name, start_date, end_date, status, created_at, updated_at"

// List returns quarters matching provided filters.
func (r *QuarterRepository) List(ctx context.Context, filter models.QuarterFilter) ([]models.Quarter, int, error) {
	base := "FROM quarters WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.TeacherID != "" {
		conditions = append(conditions, fmt.Sprintf("teacher_id = $%d", len(args)+1))
		args = append(args, filter.TeacherID)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]bool{
		"name":       true,
		"start_date": true,
		"end_date":   true,
		"created_at": true,
	}
	if !allowedSorts[sortBy] {
		sortBy = "created_at"
	}

	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", quarterColumns, base, sortBy, order, size, offset)

	var quarters []models.Quarter
	if err := r.db.SelectContext(ctx, &quarters, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list quarters: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count quarters: %w", err)
	}

	return quarters, total, nil
}

// FindByID loads a quarter by identifier.
func (r *QuarterRepository) FindByID(ctx context.Context, id string) (*models.Quarter, error) {
	query := fmt.Sprintf("SELECT %s FROM quarters WHERE id = $1", quarterColumns)
	var quarter models.Quarter
	if err := r.db.GetContext(ctx, &quarter, query, id); err != nil {
		return nil, err
	}
	return &quarter, nil
}

// FindActiveByTeacher returns the teacher's active quarter.
func (r *QuarterRepository) FindActiveByTeacher(ctx context.Context, teacherID string) (*models.Quarter, error) {
	query := fmt.Sprintf("SELECT %s FROM quarters WHERE teacher_id = $1 AND status = $2 LIMIT 1", quarterColumns)
	var quarter models.Quarter
	if err := r.db.GetContext(ctx, &quarter, query, teacherID, models.QuarterStatusActive); err != nil {
		return nil, err
	}
	return &quarter, nil
}

// Create inserts a new quarter record.
func (r *QuarterRepository) Create(ctx context.Context, quarter *models.Quarter) error {
	if quarter.ID == "" {
		quarter.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if quarter.CreatedAt.IsZero() {
		quarter.CreatedAt = now
	}
	quarter.UpdatedAt = now

	const query = `INSERT INTO quarters (id, teacher_id, name, start_date, end_date, status, created_at, updated_at) VALUES (:id, :teacher_id, :name, :start_date, :end_date, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, quarter); err != nil {
		return fmt.Errorf("create quarter: %w", err)
	}
	return nil
}

// Update modifies an existing quarter.
func (r *QuarterRepository) Update(ctx context.Context, quarter *models.Quarter) error {
	quarter.UpdatedAt = time.Now().UTC()
	const query = `UPDATE quarters SET name = :name, start_date = :start_date, end_date = :end_date, status = :status, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, quarter)
	if err != nil {
		return fmt.Errorf("update quarter: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update quarter rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Activate marks the quarter active and demotes any other active quarter of
// the same teacher to completed. Both writes run in one transaction so a
// second active quarter is never observable.
func (r *QuarterRepository) Activate(ctx context.Context, teacherID, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin activate tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	if _, err = tx.ExecContext(ctx, `UPDATE quarters SET status = $1, updated_at = $2 WHERE teacher_id = $3 AND status = $4 AND id <> $5`,
		models.QuarterStatusCompleted, now, teacherID, models.QuarterStatusActive, id); err != nil {
		return fmt.Errorf("demote active quarters: %w", err)
	}

	var result sql.Result
	if result, err = tx.ExecContext(ctx, `UPDATE quarters SET status = $1, updated_at = $2 WHERE id = $3 AND teacher_id = $4`,
		models.QuarterStatusActive, now, id, teacherID); err != nil {
		return fmt.Errorf("activate quarter: %w", err)
	}
	var affected int64
	if affected, err = result.RowsAffected(); err != nil {
		return fmt.Errorf("activate quarter rows: %w", err)
	}
	if affected == 0 {
		err = sql.ErrNoRows
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit activate tx: %w", err)
	}
	return nil
}

// DeleteCascade removes the quarter together with its enrollments, grades,
// attendance records and calendar notes in a single transaction.
func (r *QuarterRepository) DeleteCascade(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete quarter tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	cascades := []string{
		`DELETE FROM attendance_records WHERE quarter_id = $1`,
		`DELETE FROM student_grades WHERE quarter_id = $1`,
		`DELETE FROM calendar_notes WHERE quarter_id = $1`,
		`DELETE FROM quarter_students WHERE quarter_id = $1`,
	}
	for _, stmt := range cascades {
		if _, err = tx.ExecContext(ctx, stmt, id); err != nil {
			return fmt.Errorf("cascade delete quarter records: %w", err)
		}
	}

	var result sql.Result
	if result, err = tx.ExecContext(ctx, `DELETE FROM quarters WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete quarter: %w", err)
	}
	var affected int64
	if affected, err = result.RowsAffected(); err != nil {
		return fmt.Errorf("delete quarter rows: %w", err)
	}
	if affected == 0 {
		err = sql.ErrNoRows
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit delete quarter tx: %w", err)
	}
	return nil
}

// CountActiveByTeacher reports how many quarters are currently active for a
// teacher. Used by invariant checks in tests and consistency audits.
func (r *QuarterRepository) CountActiveByTeacher(ctx context.Context, teacherID string) (int, error) {
	const query = `SELECT COUNT(*) FROM quarters WHERE teacher_id = $1 AND status = $2`
	var count int
	if err := r.db.GetContext(ctx, &count, query, teacherID, models.QuarterStatusActive); err != nil {
		return 0, fmt.Errorf("count active quarters: %w", err)
	}
	return count, nil
}
