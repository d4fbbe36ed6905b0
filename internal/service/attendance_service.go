package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/noah-isme/attendance-api/internal/dto"
	"github.com/noah-isme/attendance-api/internal/models"
	"github.com/noah-isme/attendance-api/internal/repository"
	"github.com/noah-isme/attendance-api/pkg/cache"
	"github.com/noah-isme/attendance-api/pkg/middleware/requestid"
	"github.com/noah-isme/attendance-api/pkg/tracing"
)

type attendanceRepository interface {
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error)
	MarkOne(ctx context.Context, record *models.AttendanceRecord) error
	MarkBulk(ctx context.Context, subjectID int64, date string, marks []models.AttendanceMark) (models.AttendanceTally, error)
	DeleteOne(ctx context.Context, id int64) (*models.AttendanceRecord, error)
	DeleteFiltered(ctx context.Context, filter models.AttendanceDeleteFilter) (models.AttendanceTally, error)
}

// AttendanceService validates and orchestrates attendance mutations. Each
// mutation is delegated to a single repository transaction that also moves
// the subject counters.
type AttendanceService struct {
	repo      attendanceRepository
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo attendanceRepository, cacheSvc *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &AttendanceService{repo: repo, cache: cacheSvc, metrics: metrics, validator: validate, logger: logger}
	mustRegisterValidation(svc.validator, "attendance_status", func(fl validator.FieldLevel) bool {
		return models.AttendanceStatus(fl.Field().String()).Valid()
	})
	return svc
}

// mustRegisterValidation panics when a custom rule cannot be registered; the
// rule's tags would otherwise fail every request at validation time.
func mustRegisterValidation(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %q validation: %v", tag, err))
	}
}

// History lists records, newest date first, optionally filtered by subject and student.
func (s *AttendanceService) History(ctx context.Context, req dto.HistoryRequest) ([]models.AttendanceRecord, error) {
	records, err := s.repo.List(ctx, req.Filter())
	if err != nil {
		return nil, translateStoreError(err, "failed to list attendance")
	}
	return records, nil
}

// Mark records one student's attendance for a subject on a date.
func (s *AttendanceService) Mark(ctx context.Context, req dto.MarkAttendanceRequest) (record *models.AttendanceRecord, err error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "studentId, subjectId, date (YYYY-MM-DD) and status (present|absent) are required")
	}

	ctx, span := tracing.Tracer().Start(ctx, "attendance.mark", trace.WithAttributes(
		attribute.Int64("attendance.student_id", req.StudentID.Int64()),
		attribute.Int64("attendance.subject_id", req.SubjectID.Int64()),
		attribute.String("attendance.date", req.Date),
		attribute.String("attendance.status", req.Status),
	))
	defer func() { finishSpan(span, err) }()

	record = &models.AttendanceRecord{
		StudentID: req.StudentID.Int64(),
		SubjectID: req.SubjectID.Int64(),
		Date:      req.Date,
		Status:    models.AttendanceStatus(req.Status),
	}
	if err := s.repo.MarkOne(ctx, record); err != nil {
		s.metrics.RecordMutation(OperationMark, err, 0, 0)
		s.logFailure(ctx, "mark attendance failed", err, zap.Int64("student_id", record.StudentID), zap.Int64("subject_id", record.SubjectID))
		return nil, translateStoreError(err, "failed to mark attendance")
	}

	tally := models.AttendanceTally{}
	tally.Count(record.Status)
	s.metrics.RecordMutation(OperationMark, nil, tally.Present, tally.Absent)
	s.invalidate(ctx, record.SubjectID, record.StudentID)
	s.logger.Debug("attendance marked",
		zap.Int64("record_id", record.ID),
		zap.Int64("student_id", record.StudentID),
		zap.Int64("subject_id", record.SubjectID),
		zap.String("date", record.Date),
		zap.String("status", string(record.Status)))
	return record, nil
}

// MarkBulk records many students for one subject and date. Items with a
// missing student id or an unknown status, unknown students and duplicates
// are skipped; only what was inserted is reported.
func (s *AttendanceService) MarkBulk(ctx context.Context, req dto.BulkMarkRequest) (resp *dto.BulkMarkResponse, err error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "subjectId, date (YYYY-MM-DD) and a records list are required")
	}

	marks := make([]models.AttendanceMark, 0, len(req.Records))
	for _, item := range req.Records {
		status := models.AttendanceStatus(item.Status)
		if item.StudentID <= 0 || !status.Valid() {
			continue
		}
		marks = append(marks, models.AttendanceMark{StudentID: item.StudentID.Int64(), Status: status})
	}

	ctx, span := tracing.Tracer().Start(ctx, "attendance.mark_bulk", trace.WithAttributes(
		attribute.Int64("attendance.subject_id", req.SubjectID.Int64()),
		attribute.String("attendance.date", req.Date),
		attribute.Int("attendance.requested", len(req.Records)),
		attribute.Int("attendance.accepted", len(marks)),
	))
	defer func() { finishSpan(span, err) }()

	tally, err := s.repo.MarkBulk(ctx, req.SubjectID.Int64(), req.Date, marks)
	if err != nil {
		s.metrics.RecordMutation(OperationMarkBulk, err, 0, 0)
		s.logFailure(ctx, "bulk mark attendance failed", err, zap.Int64("subject_id", req.SubjectID.Int64()))
		return nil, translateStoreError(err, "failed to mark attendance")
	}
	span.SetAttributes(attribute.Int("attendance.inserted", tally.Total()))

	s.metrics.RecordMutation(OperationMarkBulk, nil, tally.Present, tally.Absent)
	if tally.Total() > 0 {
		s.invalidate(ctx, req.SubjectID.Int64(), 0)
	}
	s.logger.Info("attendance bulk marked",
		zap.Int64("subject_id", req.SubjectID.Int64()),
		zap.String("date", req.Date),
		zap.Int("requested", len(req.Records)),
		zap.Int("inserted", tally.Total()))
	return &dto.BulkMarkResponse{
		OK:           true,
		Inserted:     tally.Total(),
		PresentCount: tally.Present,
		AbsentCount:  tally.Absent,
	}, nil
}

// Delete removes a single record by id.
func (s *AttendanceService) Delete(ctx context.Context, id int64) (err error) {
	ctx, span := tracing.Tracer().Start(ctx, "attendance.delete", trace.WithAttributes(
		attribute.Int64("attendance.record_id", id),
	))
	defer func() { finishSpan(span, err) }()

	record, err := s.repo.DeleteOne(ctx, id)
	if err != nil {
		s.metrics.RecordMutation(OperationDelete, err, 0, 0)
		s.logFailure(ctx, "delete attendance failed", err, zap.Int64("record_id", id))
		return translateStoreError(err, "failed to delete attendance")
	}

	tally := models.AttendanceTally{}
	tally.Count(record.Status)
	s.metrics.RecordMutation(OperationDelete, nil, tally.Present, tally.Absent)
	s.invalidate(ctx, record.SubjectID, record.StudentID)
	return nil
}

// DeleteFiltered removes all records of a subject on a date, optionally for one student.
func (s *AttendanceService) DeleteFiltered(ctx context.Context, req dto.DeleteFilteredRequest) (resp *dto.BulkDeleteResponse, err error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "subjectId and date (YYYY-MM-DD) are required")
	}

	ctx, span := tracing.Tracer().Start(ctx, "attendance.delete_filtered", trace.WithAttributes(
		attribute.Int64("attendance.subject_id", req.SubjectID),
		attribute.String("attendance.date", req.Date),
		attribute.Int64("attendance.student_id", req.StudentID),
	))
	defer func() { finishSpan(span, err) }()

	var tally models.AttendanceTally
	if req.ZeroStudent {
		err = repository.ErrRecordNotFound
	} else {
		filter := models.AttendanceDeleteFilter{SubjectID: req.SubjectID, Date: req.Date, StudentID: req.StudentID}
		tally, err = s.repo.DeleteFiltered(ctx, filter)
	}
	if err != nil {
		s.metrics.RecordMutation(OperationDeleteFiltered, err, 0, 0)
		s.logFailure(ctx, "filtered delete attendance failed", err, zap.Int64("subject_id", req.SubjectID), zap.String("date", req.Date))
		return nil, translateStoreError(err, "failed to delete attendance")
	}

	s.metrics.RecordMutation(OperationDeleteFiltered, nil, tally.Present, tally.Absent)
	s.invalidate(ctx, req.SubjectID, req.StudentID)
	s.logger.Info("attendance deleted",
		zap.Int64("subject_id", req.SubjectID),
		zap.String("date", req.Date),
		zap.Int("deleted", tally.Total()))
	return &dto.BulkDeleteResponse{
		OK:             true,
		Deleted:        tally.Total(),
		PresentRemoved: tally.Present,
		AbsentRemoved:  tally.Absent,
	}, nil
}

// invalidate drops cached summaries touched by a committed mutation. A zero
// studentID drops every student summary.
func (s *AttendanceService) invalidate(ctx context.Context, subjectID, studentID int64) {
	_ = s.cache.Evict(ctx, cache.SubjectSummaryKey(subjectID))
	if studentID > 0 {
		_ = s.cache.Evict(ctx, cache.StudentSummaryKey(studentID))
		return
	}
	_ = s.cache.Invalidate(ctx, cache.StudentSummaryPattern)
}

func (s *AttendanceService) logFailure(ctx context.Context, msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("request_id", requestid.FromContext(ctx)), zap.Error(err))
	if translated := translateStoreError(err, msg); isInternal(translated) {
		s.logger.Error(msg, fields...)
		return
	}
	s.logger.Debug(msg, fields...)
}

func finishSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
