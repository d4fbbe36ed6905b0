package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/attendance-api/internal/dto"
	"github.com/noah-isme/attendance-api/internal/models"
	"github.com/noah-isme/attendance-api/internal/repository"
	"github.com/noah-isme/attendance-api/pkg/cache"
	appErrors "github.com/noah-isme/attendance-api/pkg/errors"
	"github.com/noah-isme/attendance-api/pkg/middleware/requestid"
)

type studentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
	Roster(ctx context.Context, subjectID int64, date string) ([]models.RosterEntry, error)
	StudentSummaries(ctx context.Context, studentID int64) ([]models.StudentSubjectSummary, error)
}

// StudentService handles student use-cases.
type StudentService struct {
	repo      studentRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, cacheSvc *CacheService, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, cache: cacheSvc, validator: validate, logger: logger}
}

// List returns all students ordered by name.
func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, translateStoreError(err, "failed to list students")
	}
	return students, nil
}

// Create registers a new student; enroll ids are unique.
func (s *StudentService) Create(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "enroll_id and name are required")
	}
	student := &models.Student{EnrollID: req.EnrollID, Name: req.Name}
	if err := s.repo.Create(ctx, student); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "enroll_id already exists")
		}
		s.logger.Error("create student failed", zap.String("request_id", requestid.FromContext(ctx)), zap.Error(err))
		return nil, translateStoreError(err, "failed to create student")
	}
	s.logger.Info("student created", zap.Int64("student_id", student.ID), zap.String("enroll_id", student.EnrollID))
	return student, nil
}

// Delete removes a student together with their attendance records.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete student failed", zap.String("request_id", requestid.FromContext(ctx)), zap.Int64("student_id", id), zap.Error(err))
		return translateStoreError(err, "failed to delete student")
	}
	// counters of any subject the student attended may have moved
	_ = s.cache.Invalidate(ctx, cache.SummaryPattern)
	return nil
}

// Roster lists all students with their status for a subject on a date.
func (s *StudentService) Roster(ctx context.Context, req dto.RosterRequest) ([]models.RosterEntry, error) {
	if req.Date != "" {
		if err := s.validator.Var(req.Date, "datetime=2006-01-02"); err != nil {
			return nil, validationError(err, "date must be formatted as YYYY-MM-DD")
		}
	}
	entries, err := s.repo.Roster(ctx, req.SubjectID, req.Date)
	if err != nil {
		return nil, translateStoreError(err, "failed to list students for subject")
	}
	return entries, nil
}

// Summary returns one student's attendance percentage per subject.
func (s *StudentService) Summary(ctx context.Context, id int64) (*dto.StudentSummary, error) {
	key := cache.StudentSummaryKey(id)
	var cached dto.StudentSummary
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateStoreError(err, "failed to load student")
	}
	subjects, err := s.repo.StudentSummaries(ctx, id)
	if err != nil {
		return nil, translateStoreError(err, "failed to summarize student attendance")
	}
	summary := &dto.StudentSummary{StudentID: student.ID, EnrollID: student.EnrollID, Name: student.Name, Subjects: subjects}
	_ = s.cache.Set(ctx, key, summary, 0)
	return summary, nil
}
