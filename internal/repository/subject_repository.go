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

const subjectColumns = `id, name, total_classes, present, absent`

// SubjectRepository handles subject persistence and counter reads.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository constructs a SubjectRepository.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// List returns subjects, most recently created first.
func (r *SubjectRepository) List(ctx context.Context) ([]models.Subject, error) {
	subjects := make([]models.Subject, 0)
	if err := r.db.SelectContext(ctx, &subjects, `SELECT `+subjectColumns+` FROM subjects ORDER BY id DESC`); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// FindByID fetches a subject with its stored counters.
func (r *SubjectRepository) FindByID(ctx context.Context, id int64) (*models.Subject, error) {
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, `SELECT `+subjectColumns+` FROM subjects WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubjectNotFound
		}
		return nil, fmt.Errorf("find subject: %w", err)
	}
	return &subject, nil
}

// Create inserts a subject with zeroed counters.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	const query = `INSERT INTO subjects (name) VALUES ($1) RETURNING ` + subjectColumns
	if err := r.db.GetContext(ctx, subject, query, subject.Name); err != nil {
		if database.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create subject: %w", err)
	}
	return nil
}

// Delete removes a subject; its records are removed by the foreign key cascade.
// Deleting an unknown id is a no-op.
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM subjects WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete subject: %w", err)
	}
	return nil
}

// Recount derives the counters of a subject from its records.
func (r *SubjectRepository) Recount(ctx context.Context, id int64) (models.SubjectCounters, error) {
	const query = `SELECT COUNT(*) AS total_classes,
            COUNT(*) FILTER (WHERE status = 'present') AS present,
            COUNT(*) FILTER (WHERE status = 'absent') AS absent
        FROM attendance_records WHERE subject_id = $1`
	var counters models.SubjectCounters
	if err := r.db.GetContext(ctx, &counters, query, id); err != nil {
		return counters, fmt.Errorf("recount subject %d: %w", id, err)
	}
	return counters, nil
}
