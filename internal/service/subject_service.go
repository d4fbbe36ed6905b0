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

type subjectRepository interface {
	List(ctx context.Context) ([]models.Subject, error)
	FindByID(ctx context.Context, id int64) (*models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id int64) error
	Recount(ctx context.Context, id int64) (models.SubjectCounters, error)
}

// SubjectService handles subject use-cases and counter reporting.
type SubjectService struct {
	repo      subjectRepository
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectService constructs the subject service.
func NewSubjectService(repo subjectRepository, cacheSvc *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{repo: repo, cache: cacheSvc, metrics: metrics, validator: validate, logger: logger}
}

// List returns subjects with their counters, newest first.
func (s *SubjectService) List(ctx context.Context) ([]models.Subject, error) {
	subjects, err := s.repo.List(ctx)
	if err != nil {
		return nil, translateStoreError(err, "failed to list subjects")
	}
	return subjects, nil
}

// Create registers a subject with zeroed counters; names are unique.
func (s *SubjectService) Create(ctx context.Context, req dto.CreateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "name is required")
	}
	subject := &models.Subject{Name: req.Name}
	if err := s.repo.Create(ctx, subject); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "subject name already exists")
		}
		s.logger.Error("create subject failed", zap.String("request_id", requestid.FromContext(ctx)), zap.Error(err))
		return nil, translateStoreError(err, "failed to create subject")
	}
	s.logger.Info("subject created", zap.Int64("subject_id", subject.ID), zap.String("name", subject.Name))
	return subject, nil
}

// Delete removes a subject and, by cascade, its records.
func (s *SubjectService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete subject failed", zap.String("request_id", requestid.FromContext(ctx)), zap.Int64("subject_id", id), zap.Error(err))
		return translateStoreError(err, "failed to delete subject")
	}
	_ = s.cache.Evict(ctx, cache.SubjectSummaryKey(id))
	_ = s.cache.Invalidate(ctx, cache.StudentSummaryPattern)
	return nil
}

// Summary returns the subject's counters with its present percentage.
func (s *SubjectService) Summary(ctx context.Context, id int64) (*dto.SubjectSummary, error) {
	key := cache.SubjectSummaryKey(id)
	var cached dto.SubjectSummary
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateStoreError(err, "failed to load subject")
	}
	summary := dto.NewSubjectSummary(*subject)
	_ = s.cache.Set(ctx, key, summary, 0)
	return &summary, nil
}

// CheckConsistency compares the stored counters with counters derived from the records.
func (s *SubjectService) CheckConsistency(ctx context.Context, id int64) (*dto.ConsistencyReport, error) {
	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateStoreError(err, "failed to load subject")
	}
	recomputed, err := s.repo.Recount(ctx, id)
	if err != nil {
		return nil, translateStoreError(err, "failed to recount subject")
	}
	report := &dto.ConsistencyReport{
		SubjectID:  id,
		Stored:     subject.Counters(),
		Recomputed: recomputed,
	}
	report.Consistent = report.Stored == report.Recomputed
	if !report.Consistent {
		s.metrics.RecordCounterDrift()
		s.logger.Warn("subject counters drifted",
			zap.Int64("subject_id", id),
			zap.Any("stored", report.Stored),
			zap.Any("recomputed", report.Recomputed))
	}
	return report, nil
}
