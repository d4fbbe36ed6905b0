package service

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsServiceRecordsMutations(t *testing.T) {
	m := NewMetricsService()
	m.RecordMutation(OperationMarkBulk, nil, 2, 1)
	m.RecordMutation(OperationMark, errors.New("boom"), 1, 0)

	body := scrape(t, m)
	assert.Contains(t, body, `attendance_mutations_total{operation="mark_bulk",outcome="success"} 1`)
	assert.Contains(t, body, `attendance_mutations_total{operation="mark",outcome="error"} 1`)
	assert.Contains(t, body, `attendance_records_changed_total{operation="mark_bulk",status="present"} 2`)
	assert.Contains(t, body, `attendance_records_changed_total{operation="mark_bulk",status="absent"} 1`)
	assert.NotContains(t, body, `attendance_records_changed_total{operation="mark",`)
}

func TestMetricsServiceHandlerExposesCollectors(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodGet, "/api/subjects", http.StatusOK, 10*time.Millisecond)

	assert.Contains(t, scrape(t, m), `http_requests_total{method="GET",path="/api/subjects",status="200"} 1`)
}

func scrape(t *testing.T, m *MetricsService) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	m.RecordMutation(OperationDelete, nil, 1, 0)
	m.RecordCounterDrift()
	m.ObserveHTTPRequest(http.MethodGet, "/", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
