package models

// Student represents a learner identified by an immutable enrollment id.
type Student struct {
	ID       int64  `db:"id" json:"id"`
	EnrollID string `db:"enroll_id" json:"enroll_id"`
	Name     string `db:"name" json:"name"`
}

// RosterEntry is a student with their status for one subject on one date.
// Status is nil when no date was requested or no record exists.
type RosterEntry struct {
	ID       int64             `db:"id" json:"id"`
	EnrollID string            `db:"enroll_id" json:"enroll_id"`
	Name     string            `db:"name" json:"name"`
	Status   *AttendanceStatus `db:"status" json:"status"`
}
