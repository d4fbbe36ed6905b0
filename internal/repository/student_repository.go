package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/attendance-api/internal/models"
	"github.com/noah-isme/attendance-api/pkg/database"
)

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns every student ordered by name.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	students := make([]models.Student, 0)
	if err := r.db.SelectContext(ctx, &students, `SELECT id, enroll_id, name FROM students ORDER BY name, id`); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID fetches a student by id.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	var student models.Student
	if err := r.db.GetContext(ctx, &student, `SELECT id, enroll_id, name FROM students WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	return &student, nil
}

// Create inserts a student and fills in its generated id.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	const query = `INSERT INTO students (enroll_id, name) VALUES ($1, $2) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, student.EnrollID, student.Name).Scan(&student.ID); err != nil {
		if database.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

type removedRecord struct {
	SubjectID int64                   `db:"subject_id"`
	Status    models.AttendanceStatus `db:"status"`
}

// Delete removes a student and all of their attendance records. The counters
// of every affected subject are decremented in the same transaction, so the
// aggregate stays equal to the remaining records. The student row is locked
// first so a concurrent mark cannot insert a record after the sweep. Deleting
// an unknown id is a no-op.
func (r *StudentRepository) Delete(ctx context.Context, id int64) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete student: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var locked int64
	if err = tx.GetContext(ctx, &locked, `SELECT id FROM students WHERE id = $1 FOR UPDATE`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = nil
			_ = tx.Rollback()
			return nil
		}
		return fmt.Errorf("lock student: %w", err)
	}

	var removed []removedRecord
	if err = tx.SelectContext(ctx, &removed, `DELETE FROM attendance_records WHERE student_id = $1 RETURNING subject_id, status`, id); err != nil {
		return fmt.Errorf("delete student attendance: %w", err)
	}

	deltas := make(map[int64]models.CounterDelta)
	for _, rec := range removed {
		deltas[rec.SubjectID] = deltas[rec.SubjectID].Add(models.DeltaFor(rec.Status, -1))
	}
	if err = applyCounterDeltas(ctx, tx, deltas); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit delete student: %w", err)
	}
	return nil
}

// Roster lists every student with their status for a subject on date.
// With an empty date every status is nil.
func (r *StudentRepository) Roster(ctx context.Context, subjectID int64, date string) ([]models.RosterEntry, error) {
	entries := make([]models.RosterEntry, 0)
	if date == "" {
		if err := r.db.SelectContext(ctx, &entries, `SELECT id, enroll_id, name, NULL AS status FROM students ORDER BY name, id`); err != nil {
			return nil, fmt.Errorf("list roster: %w", err)
		}
		return entries, nil
	}

	const query = `SELECT s.id, s.enroll_id, s.name, a.status
        FROM students s
        LEFT JOIN attendance_records a ON a.student_id = s.id AND a.subject_id = $1 AND a.date = $2
        ORDER BY s.name, s.id`
	if err := r.db.SelectContext(ctx, &entries, query, subjectID, date); err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	return entries, nil
}

// StudentSummaries aggregates one student's records per subject.
func (r *StudentRepository) StudentSummaries(ctx context.Context, studentID int64) ([]models.StudentSubjectSummary, error) {
	const query = `SELECT a.subject_id, sub.name AS subject_name,
            COUNT(*) AS total,
            COUNT(*) FILTER (WHERE a.status = 'present') AS present,
            COUNT(*) FILTER (WHERE a.status = 'absent') AS absent
        FROM attendance_records a
        JOIN subjects sub ON sub.id = a.subject_id
        WHERE a.student_id = $1
        GROUP BY a.subject_id, sub.name
        ORDER BY sub.name`
	summaries := make([]models.StudentSubjectSummary, 0)
	if err := r.db.SelectContext(ctx, &summaries, query, studentID); err != nil {
		return nil, fmt.Errorf("summarize student attendance: %w", err)
	}
	for i := range summaries {
		summaries[i] = summaries[i].WithPercentage()
	}
	return summaries, nil
}
