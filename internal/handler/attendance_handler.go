package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/attendance-api/internal/dto"
	"github.com/noah-isme/attendance-api/internal/service"
	"github.com/noah-isme/attendance-api/pkg/response"
)

// AttendanceHandler exposes attendance marking, history and deletion.
type AttendanceHandler struct {
	attendance *service.AttendanceService
	exports    *service.ExportService
}

// NewAttendanceHandler constructs AttendanceHandler.
func NewAttendanceHandler(attendance *service.AttendanceService, exports *service.ExportService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance, exports: exports}
}

// Mark godoc
// @Summary Mark one student
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body dto.MarkAttendanceRequest true "Attendance payload"
// @Success 201 {object} response.Ack
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Failure 409 {object} response.ErrorEnvelope
// @Router /api/attendance [post]
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req dto.MarkAttendanceRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	if _, err := h.attendance.Mark(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, response.Ack{OK: true})
}

// MarkBulk godoc
// @Summary Mark many students for one subject and date
// @Description Malformed items, unknown students and duplicates are skipped.
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body dto.BulkMarkRequest true "Bulk payload"
// @Success 200 {object} dto.BulkMarkResponse
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /api/attendance/bulk [post]
func (h *AttendanceHandler) MarkBulk(c *gin.Context) {
	var req dto.BulkMarkRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.attendance.MarkBulk(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// History godoc
// @Summary Attendance history, newest first
// @Tags Attendance
// @Produce json
// @Param subjectId query int false "Subject ID"
// @Param studentId query int false "Student ID"
// @Success 200 {array} models.AttendanceRecord
// @Router /api/attendance [get]
func (h *AttendanceHandler) History(c *gin.Context) {
	req, err := historyRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	records, err := h.attendance.History(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}

// Export godoc
// @Summary Download attendance history
// @Tags Attendance
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Param subjectId query int false "Subject ID"
// @Param studentId query int false "Student ID"
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorEnvelope
// @Router /api/attendance/export [get]
func (h *AttendanceHandler) Export(c *gin.Context) {
	history, err := historyRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exports.Export(c.Request.Context(), dto.ExportRequest{HistoryRequest: history, Format: c.Query("format")})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, file.Filename, file.ContentType, file.Body)
}

// Delete godoc
// @Summary Delete one attendance record
// @Tags Attendance
// @Produce json
// @Param id path int true "Record ID"
// @Success 200 {object} response.Ack
// @Failure 404 {object} response.ErrorEnvelope
// @Router /api/attendance/{id} [delete]
func (h *AttendanceHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.attendance.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c)
}

// DeleteFiltered godoc
// @Summary Delete attendance of a subject on a date
// @Tags Attendance
// @Produce json
// @Param subjectId query int true "Subject ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param studentId query int false "Only this student"
// @Success 200 {object} dto.BulkDeleteResponse
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /api/attendance [delete]
func (h *AttendanceHandler) DeleteFiltered(c *gin.Context) {
	subjectID, err := optionalQueryID(c, "subjectId")
	if err != nil {
		response.Error(c, err)
		return
	}
	studentID, zeroStudent, err := filterQueryID(c, "studentId")
	if err != nil {
		response.Error(c, err)
		return
	}
	req := dto.DeleteFilteredRequest{
		SubjectID:   subjectID,
		Date:        strings.TrimSpace(c.Query("date")),
		StudentID:   studentID,
		ZeroStudent: zeroStudent,
	}
	result, err := h.attendance.DeleteFiltered(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

func historyRequest(c *gin.Context) (dto.HistoryRequest, error) {
	subjectID, err := optionalQueryID(c, "subjectId")
	if err != nil {
		return dto.HistoryRequest{}, err
	}
	studentID, err := optionalQueryID(c, "studentId")
	if err != nil {
		return dto.HistoryRequest{}, err
	}
	return dto.HistoryRequest{SubjectID: subjectID, StudentID: studentID}, nil
}
