package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/attendance-api/internal/dto"
	"github.com/noah-isme/attendance-api/internal/models"
	appErrors "github.com/noah-isme/attendance-api/pkg/errors"
)

func TestSubjectServiceCreate(t *testing.T) {
	f := newAttendanceFixture(t)
	ctx := context.Background()

	_, err := f.subjects.Create(ctx, dto.CreateSubjectRequest{})
	assertAppError(t, err, appErrors.ErrValidation)

	subject, err := f.subjects.Create(ctx, dto.CreateSubjectRequest{Name: "Math"})
	require.NoError(t, err)
	assert.Equal(t, models.SubjectCounters{}, subject.Counters())

	_, err = f.subjects.Create(ctx, dto.CreateSubjectRequest{Name: "Math"})
	assertAppError(t, err, appErrors.ErrConflict)
}

func TestSubjectServiceListNewestFirst(t *testing.T) {
	f := newAttendanceFixture(t)
	first := f.subject(t, "Math")
	second := f.subject(t, "Art")

	subjects, err := f.subjects.List(context.Background())
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, second, subjects[0].ID)
	assert.Equal(t, first, subjects[1].ID)
}

func TestSubjectServiceSummaryCachesResult(t *testing.T) {
	f := newAttendanceFixture(t)
	ctx := context.Background()
	math := f.subject(t, "Math")

	summary, err := f.subjects.Summary(ctx, math)
	require.NoError(t, err)
	assert.Equal(t, "Math", summary.SubjectName)

	// rename behind the cache: the cached copy wins until invalidated
	sub := f.store.subjects[math]
	sub.Name = "Renamed"
	f.store.subjects[math] = sub

	cached, err := f.subjects.Summary(ctx, math)
	require.NoError(t, err)
	assert.Equal(t, "Math", cached.SubjectName)

	_, err = f.subjects.Summary(ctx, 999)
	assertAppError(t, err, appErrors.ErrNotFound)
}

func TestSubjectServiceCheckConsistency(t *testing.T) {
	store := newMemoryStore()
	metrics := NewMetricsService()
	svc := NewSubjectService(memSubjects{store}, nil, metrics, validator.New(), zap.NewNop())
	ctx := context.Background()

	subject, err := svc.Create(ctx, dto.CreateSubjectRequest{Name: "Math"})
	require.NoError(t, err)

	report, err := svc.CheckConsistency(ctx, subject.ID)
	require.NoError(t, err)
	assert.True(t, report.Consistent)

	drifted := store.subjects[subject.ID]
	drifted.TotalClasses, drifted.Present = 2, 2
	store.subjects[subject.ID] = drifted

	report, err = svc.CheckConsistency(ctx, subject.ID)
	require.NoError(t, err)
	assert.False(t, report.Consistent)
	assert.Equal(t, models.SubjectCounters{TotalClasses: 2, Present: 2}, report.Stored)
	assert.Equal(t, models.SubjectCounters{}, report.Recomputed)
	assert.Contains(t, scrape(t, metrics), "attendance_counter_drift_total 1")

	_, err = svc.CheckConsistency(ctx, 999)
	assertAppError(t, err, appErrors.ErrNotFound)
}
