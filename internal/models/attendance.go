package models

// AttendanceStatus is the outcome recorded for a student in a class.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent:
		return true
	default:
		return false
	}
}

// DateLayout is the calendar-date wire format.
const DateLayout = "2006-01-02"

// AttendanceRecord marks one student in one subject on one date.
// EnrollID and SubjectName are snapshots taken when the record was created.
type AttendanceRecord struct {
	ID          int64            `db:"id" json:"id"`
	StudentID   int64            `db:"student_id" json:"studentId"`
	EnrollID    string           `db:"enroll_id" json:"enroll_id"`
	SubjectID   int64            `db:"subject_id" json:"subjectId"`
	SubjectName string           `db:"subject_name" json:"subjectName"`
	Date        string           `db:"date" json:"date"`
	Status      AttendanceStatus `db:"status" json:"status"`
}

// AttendanceFilter scopes history listings. Zero values mean "any".
type AttendanceFilter struct {
	SubjectID int64
	StudentID int64
}

// StudentSubjectSummary is one student's attendance within one subject.
type StudentSubjectSummary struct {
	SubjectID   int64   `db:"subject_id" json:"subjectId"`
	SubjectName string  `db:"subject_name" json:"subjectName"`
	Total       int     `db:"total" json:"total"`
	Present     int     `db:"present" json:"present"`
	Absent      int     `db:"absent" json:"absent"`
	Percentage  float64 `db:"-" json:"presentPercentage"`
}

// WithPercentage fills Percentage from the counts.
func (s StudentSubjectSummary) WithPercentage() StudentSubjectSummary {
	s.Percentage = percentage(s.Present, s.Total)
	return s
}

// AttendanceMark is one student's status within a bulk mark.
type AttendanceMark struct {
	StudentID int64
	Status    AttendanceStatus
}

// AttendanceDeleteFilter selects records for a filtered delete.
// A zero StudentID matches every student.
type AttendanceDeleteFilter struct {
	SubjectID int64
	Date      string
	StudentID int64
}

// AttendanceTally counts records by status.
type AttendanceTally struct {
	Present int
	Absent  int
}

// Count adds one record with the given status; unknown statuses are ignored.
func (t *AttendanceTally) Count(status AttendanceStatus) {
	switch status {
	case AttendanceStatusPresent:
		t.Present++
	case AttendanceStatusAbsent:
		t.Absent++
	}
}

// Total is the number of counted records.
func (t AttendanceTally) Total() int {
	return t.Present + t.Absent
}

// Delta converts the tally into a counter delta for insertion (sign > 0)
// or removal (sign < 0) of the counted records.
func (t AttendanceTally) Delta(sign int) CounterDelta {
	if sign < 0 {
		return CounterDelta{Present: -t.Present, Absent: -t.Absent}
	}
	return CounterDelta{Present: t.Present, Absent: t.Absent}
}
