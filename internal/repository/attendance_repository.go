package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/attendance-api/internal/models"
	"github.com/noah-isme/attendance-api/pkg/database"
)

const attendanceColumns = `id, student_id, enroll_id, subject_id, subject_name, to_char(date, 'YYYY-MM-DD') AS date, status`

// AttendanceRepository persists attendance records and keeps subject counters in step.
// Every mutation runs in a single transaction together with its counter update.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// List returns records matching the filter, newest date first.
func (r *AttendanceRepository) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.SubjectID > 0 {
		args = append(args, filter.SubjectID)
		conditions = append(conditions, fmt.Sprintf("subject_id = $%d", len(args)))
	}
	if filter.StudentID > 0 {
		args = append(args, filter.StudentID)
		conditions = append(conditions, fmt.Sprintf("student_id = $%d", len(args)))
	}

	query := "SELECT " + attendanceColumns + " FROM attendance_records"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date DESC, id DESC"

	records := make([]models.AttendanceRecord, 0)
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

// MarkOne inserts a record and increments the subject counters atomically.
// The snapshot fields and generated id are written back into record.
func (r *AttendanceRepository) MarkOne(ctx context.Context, record *models.AttendanceRecord) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin mark attendance: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = tx.GetContext(ctx, &record.EnrollID, `SELECT enroll_id FROM students WHERE id = $1`, record.StudentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrStudentNotFound
		}
		return fmt.Errorf("lookup student: %w", err)
	}
	if err = tx.GetContext(ctx, &record.SubjectName, `SELECT name FROM subjects WHERE id = $1`, record.SubjectID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSubjectNotFound
		}
		return fmt.Errorf("lookup subject: %w", err)
	}

	const insert = `INSERT INTO attendance_records (student_id, enroll_id, subject_id, subject_name, date, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, to_char(date, 'YYYY-MM-DD')`
	row := tx.QueryRowxContext(ctx, insert, record.StudentID, record.EnrollID, record.SubjectID, record.SubjectName, record.Date, record.Status)
	if err = row.Scan(&record.ID, &record.Date); err != nil {
		return classifyInsertError(err)
	}

	if err = applyCounterDelta(ctx, tx, record.SubjectID, models.DeltaFor(record.Status, 1)); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit mark attendance: %w", err)
	}
	return nil
}

// MarkBulk inserts one record per mark for a subject and date. Marks for
// unknown students or already-marked students are skipped without failing
// the batch. The counters move once by the tally of inserted records.
func (r *AttendanceRepository) MarkBulk(ctx context.Context, subjectID int64, date string, marks []models.AttendanceMark) (tally models.AttendanceTally, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return tally, fmt.Errorf("begin bulk mark attendance: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var subjectName string
	if err = tx.GetContext(ctx, &subjectName, `SELECT name FROM subjects WHERE id = $1`, subjectID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return tally, ErrSubjectNotFound
		}
		return tally, fmt.Errorf("lookup subject: %w", err)
	}

	const insert = `INSERT INTO attendance_records (student_id, enroll_id, subject_id, subject_name, date, status)
        SELECT s.id, s.enroll_id, $2::bigint, $3::text, $4::date, $5::text FROM students s WHERE s.id = $1
        ON CONFLICT (student_id, subject_id, date) DO NOTHING
        RETURNING id`
	for _, mark := range marks {
		var id int64
		if err = tx.QueryRowxContext(ctx, insert, mark.StudentID, subjectID, subjectName, date, mark.Status).Scan(&id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				err = nil
				continue
			}
			return tally, fmt.Errorf("bulk insert attendance for student %d: %w", mark.StudentID, err)
		}
		tally.Count(mark.Status)
	}

	if err = applyCounterDelta(ctx, tx, subjectID, tally.Delta(1)); err != nil {
		return tally, err
	}
	if err = tx.Commit(); err != nil {
		return tally, fmt.Errorf("commit bulk mark attendance: %w", err)
	}
	return tally, nil
}

// DeleteOne removes a record by id and decrements its subject counters.
func (r *AttendanceRepository) DeleteOne(ctx context.Context, id int64) (record *models.AttendanceRecord, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin delete attendance: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var deleted models.AttendanceRecord
	if err = tx.GetContext(ctx, &deleted, `DELETE FROM attendance_records WHERE id = $1 RETURNING `+attendanceColumns, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("delete attendance: %w", err)
	}

	if err = applyCounterDelta(ctx, tx, deleted.SubjectID, models.DeltaFor(deleted.Status, -1)); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit delete attendance: %w", err)
	}
	return &deleted, nil
}

// DeleteFiltered removes every record of a subject on a date, optionally for
// one student, and decrements the counters by what was removed.
func (r *AttendanceRepository) DeleteFiltered(ctx context.Context, filter models.AttendanceDeleteFilter) (tally models.AttendanceTally, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return tally, fmt.Errorf("begin filtered delete attendance: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := `DELETE FROM attendance_records WHERE subject_id = $1 AND date = $2`
	args := []interface{}{filter.SubjectID, filter.Date}
	if filter.StudentID > 0 {
		query += ` AND student_id = $3`
		args = append(args, filter.StudentID)
	}
	query += ` RETURNING status`

	var statuses []models.AttendanceStatus
	if err = tx.SelectContext(ctx, &statuses, query, args...); err != nil {
		return tally, fmt.Errorf("filtered delete attendance: %w", err)
	}
	if len(statuses) == 0 {
		return tally, ErrRecordNotFound
	}
	for _, status := range statuses {
		tally.Count(status)
	}

	if err = applyCounterDelta(ctx, tx, filter.SubjectID, tally.Delta(-1)); err != nil {
		return tally, err
	}
	if err = tx.Commit(); err != nil {
		return tally, fmt.Errorf("commit filtered delete attendance: %w", err)
	}
	return tally, nil
}

// classifyInsertError maps constraint violations raised by an attendance insert.
func classifyInsertError(err error) error {
	switch {
	case database.IsUniqueViolation(err):
		return ErrDuplicateAttendance
	case database.IsForeignKeyViolation(err):
		if strings.Contains(database.Constraint(err), "subject") {
			return ErrSubjectNotFound
		}
		return ErrStudentNotFound
	default:
		return fmt.Errorf("insert attendance: %w", err)
	}
}
