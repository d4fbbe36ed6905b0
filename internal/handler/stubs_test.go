package handler

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/attendance-api/internal/models"
	"github.com/noah-isme/attendance-api/internal/repository"
	"github.com/noah-isme/attendance-api/internal/service"
)

type attendanceRepoStub struct {
	records   []models.AttendanceRecord
	markErr   error
	marked    []models.AttendanceRecord
	bulkTally models.AttendanceTally
	bulkErr   error
	bulkMarks []models.AttendanceMark
	deleted   *models.AttendanceRecord
	deleteErr error
	filter    models.AttendanceDeleteFilter
	filtered  models.AttendanceTally
	filterErr error
}

func (s *attendanceRepoStub) List(context.Context, models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	return s.records, nil
}

func (s *attendanceRepoStub) MarkOne(_ context.Context, record *models.AttendanceRecord) error {
	if s.markErr != nil {
		return s.markErr
	}
	record.ID = int64(len(s.marked) + 1)
	s.marked = append(s.marked, *record)
	return nil
}

func (s *attendanceRepoStub) MarkBulk(_ context.Context, _ int64, _ string, marks []models.AttendanceMark) (models.AttendanceTally, error) {
	s.bulkMarks = marks
	return s.bulkTally, s.bulkErr
}

func (s *attendanceRepoStub) DeleteOne(context.Context, int64) (*models.AttendanceRecord, error) {
	if s.deleteErr != nil {
		return nil, s.deleteErr
	}
	return s.deleted, nil
}

func (s *attendanceRepoStub) DeleteFiltered(_ context.Context, filter models.AttendanceDeleteFilter) (models.AttendanceTally, error) {
	s.filter = filter
	return s.filtered, s.filterErr
}

type subjectRepoStub struct {
	subjects  map[int64]models.Subject
	recounted models.SubjectCounters
	createErr error
}

func (s *subjectRepoStub) List(context.Context) ([]models.Subject, error) {
	out := make([]models.Subject, 0, len(s.subjects))
	for _, sub := range s.subjects {
		out = append(out, sub)
	}
	return out, nil
}

func (s *subjectRepoStub) FindByID(_ context.Context, id int64) (*models.Subject, error) {
	sub, ok := s.subjects[id]
	if !ok {
		return nil, repository.ErrSubjectNotFound
	}
	return &sub, nil
}

func (s *subjectRepoStub) Create(_ context.Context, subject *models.Subject) error {
	if s.createErr != nil {
		return s.createErr
	}
	subject.ID = int64(len(s.subjects) + 1)
	s.subjects[subject.ID] = *subject
	return nil
}

func (s *subjectRepoStub) Delete(_ context.Context, id int64) error {
	delete(s.subjects, id)
	return nil
}

func (s *subjectRepoStub) Recount(context.Context, int64) (models.SubjectCounters, error) {
	return s.recounted, nil
}

type studentRepoStub struct {
	students  map[int64]models.Student
	roster    []models.RosterEntry
	summaries []models.StudentSubjectSummary
	createErr error
}

func (s *studentRepoStub) List(context.Context) ([]models.Student, error) {
	out := make([]models.Student, 0, len(s.students))
	for _, st := range s.students {
		out = append(out, st)
	}
	return out, nil
}

func (s *studentRepoStub) FindByID(_ context.Context, id int64) (*models.Student, error) {
	st, ok := s.students[id]
	if !ok {
		return nil, repository.ErrStudentNotFound
	}
	return &st, nil
}

func (s *studentRepoStub) Create(_ context.Context, student *models.Student) error {
	if s.createErr != nil {
		return s.createErr
	}
	student.ID = int64(len(s.students) + 1)
	s.students[student.ID] = *student
	return nil
}

func (s *studentRepoStub) Delete(_ context.Context, id int64) error {
	delete(s.students, id)
	return nil
}

func (s *studentRepoStub) Roster(context.Context, int64, string) ([]models.RosterEntry, error) {
	return s.roster, nil
}

func (s *studentRepoStub) StudentSummaries(context.Context, int64) ([]models.StudentSubjectSummary, error) {
	return s.summaries, nil
}

type pingerStub struct{ err error }

func (p pingerStub) PingContext(context.Context) error { return p.err }

type testAPI struct {
	router     *gin.Engine
	attendance *attendanceRepoStub
	subjects   *subjectRepoStub
	students   *studentRepoStub
	metrics    *service.MetricsService
}

func newTestAPI(db Pinger) *testAPI {
	gin.SetMode(gin.TestMode)
	api := &testAPI{
		attendance: &attendanceRepoStub{},
		subjects:   &subjectRepoStub{subjects: map[int64]models.Subject{}},
		students:   &studentRepoStub{students: map[int64]models.Student{}},
		metrics:    service.NewMetricsService(),
	}
	validate := validator.New()
	logger := zap.NewNop()
	attendanceSvc := service.NewAttendanceService(api.attendance, nil, api.metrics, validate, logger)
	subjectSvc := service.NewSubjectService(api.subjects, nil, api.metrics, validate, logger)
	studentSvc := service.NewStudentService(api.students, nil, validate, logger)
	exportSvc := service.NewExportService(api.attendance, nil, nil, logger)

	api.router = gin.New()
	RegisterRoutes(api.router, Handlers{
		Students:   NewStudentHandler(studentSvc),
		Subjects:   NewSubjectHandler(subjectSvc, studentSvc),
		Attendance: NewAttendanceHandler(attendanceSvc, exportSvc),
		Metrics:    NewMetricsHandler(api.metrics, db),
	})
	return api
}

func performRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
