package service

import (
	"errors"

	"github.com/noah-isme/attendance-api/internal/repository"
	appErrors "github.com/noah-isme/attendance-api/pkg/errors"
)

// translateStoreError maps repository outcomes onto API errors. Anything
// unrecognised becomes an internal error carrying message.
func translateStoreError(err error, message string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrStudentNotFound):
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	case errors.Is(err, repository.ErrSubjectNotFound):
		return appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	case errors.Is(err, repository.ErrRecordNotFound):
		return appErrors.Clone(appErrors.ErrNotFound, "attendance record not found")
	case errors.Is(err, repository.ErrDuplicateAttendance):
		return appErrors.Clone(appErrors.ErrConflict, "attendance already marked for this student, subject and date")
	case errors.Is(err, repository.ErrDuplicate):
		return appErrors.Clone(appErrors.ErrConflict, "already exists")
	default:
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
	}
}

func validationError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

func isInternal(err error) bool {
	return appErrors.Is(err, appErrors.ErrInternal)
}
