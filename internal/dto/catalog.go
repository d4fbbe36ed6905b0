package dto

import "github.com/noah-isme/attendance-api/internal/models"

// CreateStudentRequest is the payload of POST /api/students.
type CreateStudentRequest struct {
	EnrollID string `json:"enroll_id" validate:"required"`
	Name     string `json:"name" validate:"required"`
}

// CreateSubjectRequest is the payload of POST /api/subjects.
type CreateSubjectRequest struct {
	Name string `json:"name" validate:"required"`
}

// RosterRequest captures GET /api/subjects/:subjectId/students parameters.
// An empty Date lists students without a status.
type RosterRequest struct {
	SubjectID int64
	Date      string
}

// SubjectSummary is a subject's counters with its present percentage.
type SubjectSummary struct {
	SubjectID         int64   `json:"subjectId"`
	SubjectName       string  `json:"subjectName"`
	TotalClasses      int     `json:"totalClasses"`
	Present           int     `json:"present"`
	Absent            int     `json:"absent"`
	PresentPercentage float64 `json:"presentPercentage"`
}

// NewSubjectSummary builds a summary from a stored subject.
func NewSubjectSummary(subject models.Subject) SubjectSummary {
	return SubjectSummary{
		SubjectID:         subject.ID,
		SubjectName:       subject.Name,
		TotalClasses:      subject.TotalClasses,
		Present:           subject.Present,
		Absent:            subject.Absent,
		PresentPercentage: subject.Counters().PresentPercentage(),
	}
}

// StudentSummary lists one student's attendance per subject.
type StudentSummary struct {
	StudentID int64                          `json:"studentId"`
	EnrollID  string                         `json:"enroll_id"`
	Name      string                         `json:"name"`
	Subjects  []models.StudentSubjectSummary `json:"subjects"`
}

// ConsistencyReport compares stored counters with counters recomputed from records.
type ConsistencyReport struct {
	SubjectID  int64                  `json:"subjectId"`
	Stored     models.SubjectCounters `json:"stored"`
	Recomputed models.SubjectCounters `json:"recomputed"`
	Consistent bool                   `json:"consistent"`
}
