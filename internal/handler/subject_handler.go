package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/attendance-api/internal/dto"
	"github.com/noah-isme/attendance-api/internal/service"
	"github.com/noah-isme/attendance-api/pkg/response"
)

// SubjectHandler exposes subject endpoints.
type SubjectHandler struct {
	subjects *service.SubjectService
	students *service.StudentService
}

// NewSubjectHandler constructs SubjectHandler.
func NewSubjectHandler(subjects *service.SubjectService, students *service.StudentService) *SubjectHandler {
	return &SubjectHandler{subjects: subjects, students: students}
}

// List godoc
// @Summary List subjects with counters
// @Tags Subjects
// @Produce json
// @Success 200 {array} models.Subject
// @Router /api/subjects [get]
func (h *SubjectHandler) List(c *gin.Context) {
	subjects, err := h.subjects.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects)
}

// Create godoc
// @Summary Create subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Param payload body dto.CreateSubjectRequest true "Subject payload"
// @Success 201 {object} models.Subject
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 409 {object} response.ErrorEnvelope
// @Router /api/subjects [post]
func (h *SubjectHandler) Create(c *gin.Context) {
	var req dto.CreateSubjectRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	subject, err := h.subjects.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, subject)
}

// Delete godoc
// @Summary Delete subject and its attendance
// @Tags Subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} response.Ack
// @Router /api/subjects/{id} [delete]
func (h *SubjectHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.subjects.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c)
}

// Roster godoc
// @Summary Students with their status for a subject on a date
// @Tags Subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {array} models.RosterEntry
// @Router /api/subjects/{id}/students [get]
func (h *SubjectHandler) Roster(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	req := dto.RosterRequest{SubjectID: id, Date: strings.TrimSpace(c.Query("date"))}
	entries, err := h.students.Roster(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries)
}

// Summary godoc
// @Summary Subject counters and present percentage
// @Tags Subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} dto.SubjectSummary
// @Failure 404 {object} response.ErrorEnvelope
// @Router /api/subjects/{id}/summary [get]
func (h *SubjectHandler) Summary(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	summary, err := h.subjects.Summary(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}

// Consistency godoc
// @Summary Compare stored counters with the records
// @Tags Subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} dto.ConsistencyReport
// @Failure 404 {object} response.ErrorEnvelope
// @Router /api/subjects/{id}/consistency [get]
func (h *SubjectHandler) Consistency(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	report, err := h.subjects.CheckConsistency(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}
