package repository

import "errors"

var (
	// ErrStudentNotFound is returned when a referenced student does not exist.
	ErrStudentNotFound = errors.New("student not found")
	// ErrSubjectNotFound is returned when a referenced subject does not exist.
	ErrSubjectNotFound = errors.New("subject not found")
	// ErrRecordNotFound is returned when no attendance record matches.
	ErrRecordNotFound = errors.New("attendance record not found")
	// ErrDuplicate is returned when a unique student or subject field is already taken.
	ErrDuplicate = errors.New("duplicate entity")
	// ErrDuplicateAttendance is returned when the student is already marked for the subject and date.
	ErrDuplicateAttendance = errors.New("attendance already marked")
)
