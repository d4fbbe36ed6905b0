package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/noah-isme/attendance-api/internal/models"
)

// EntityID decodes a positive integer id sent either as a JSON number or a
// numeric string. Anything else decodes to zero, which callers treat as missing.
type EntityID int64

// UnmarshalJSON implements json.Unmarshaler without ever failing the payload.
func (id *EntityID) UnmarshalJSON(data []byte) error {
	*id = 0
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		raw = []byte(strings.TrimSpace(s))
	}
	v, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil || v <= 0 {
		return nil
	}
	*id = EntityID(v)
	return nil
}

// Int64 returns the id as a plain integer.
func (id EntityID) Int64() int64 {
	return int64(id)
}

// ParseEntityID parses a path or query value into a positive id.
func ParseEntityID(raw string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// MarkAttendanceRequest is the payload of POST /api/attendance.
type MarkAttendanceRequest struct {
	StudentID EntityID `json:"studentId" validate:"required"`
	SubjectID EntityID `json:"subjectId" validate:"required"`
	Date      string   `json:"date" validate:"required,datetime=2006-01-02"`
	Status    string   `json:"status" validate:"required,attendance_status"`
}

// BulkAttendanceItem is one entry of a bulk mark request.
type BulkAttendanceItem struct {
	StudentID EntityID `json:"studentId"`
	Status    string   `json:"status"`
}

// BulkMarkRequest is the payload of POST /api/attendance/bulk.
// Records must be present but may be empty; malformed items are skipped.
type BulkMarkRequest struct {
	SubjectID EntityID             `json:"subjectId" validate:"required"`
	Date      string               `json:"date" validate:"required,datetime=2006-01-02"`
	Records   []BulkAttendanceItem `json:"records" validate:"required"`
}

// BulkMarkResponse reports what a bulk mark actually inserted.
type BulkMarkResponse struct {
	OK           bool `json:"ok"`
	Inserted     int  `json:"inserted"`
	PresentCount int  `json:"presentCount"`
	AbsentCount  int  `json:"absentCount"`
}

// DeleteFilteredRequest selects the records removed by DELETE /api/attendance.
type DeleteFilteredRequest struct {
	SubjectID int64  `validate:"required,gt=0"`
	Date      string `validate:"required,datetime=2006-01-02"`
	StudentID int64  `validate:"gte=0"`
	// ZeroStudent marks an explicit studentId of 0, which selects no records.
	ZeroStudent bool
}

// BulkDeleteResponse reports what a filtered delete removed.
type BulkDeleteResponse struct {
	OK             bool `json:"ok"`
	Deleted        int  `json:"deleted"`
	PresentRemoved int  `json:"presentRemoved"`
	AbsentRemoved  int  `json:"absentRemoved"`
}

// HistoryRequest captures the optional filters of GET /api/attendance.
type HistoryRequest struct {
	SubjectID int64
	StudentID int64
}

// Filter converts the request into a repository filter.
func (r HistoryRequest) Filter() models.AttendanceFilter {
	return models.AttendanceFilter{SubjectID: r.SubjectID, StudentID: r.StudentID}
}

// ExportRequest captures GET /api/attendance/export parameters.
type ExportRequest struct {
	HistoryRequest
	Format string
}
