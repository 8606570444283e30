package services

import (
	"errors"
	"fmt"

	"github.com/yigit/invigilate/internal/app/repositories"
	"github.com/yigit/invigilate/internal/pkg/apperrors"
)

// Services defined in this package:
// - AuthService: login and the current faculty member
// - FacultyService: faculty registration and lookup
// - TimetableService: teaching timetables and CSV import
// - ExamService: exam CRUD and the completion sweep
// - DutyService: the duty allocator, auto-assign preview and duty listings
// - RequestService: the change request workflow

// Actor is the authenticated caller of a service operation.
type Actor struct {
	FacultyID int64
	IsAdmin   bool
}

// CanAccess reports whether the actor may see data owned by facultyID.
func (a Actor) CanAccess(facultyID int64) bool {
	return a.IsAdmin || a.FacultyID == facultyID
}

// translate maps store errors onto the application's error values. notFound
// is returned in place of repositories.ErrNotFound.
func translate(err error, notFound error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return notFound
	case errors.Is(err, repositories.ErrAlreadyExists):
		return apperrors.ErrUsernameTaken
	case errors.Is(err, repositories.ErrVersionMismatch):
		return apperrors.ErrStaleExam
	case errors.Is(err, repositories.ErrInvalidReference):
		return apperrors.NewValidationError("a referenced faculty member does not exist")
	default:
		return fmt.Errorf("error %s: %w", op, err)
	}
}

func validationf(format string, args ...interface{}) error {
	return apperrors.NewValidationError(fmt.Sprintf(format, args...))
}

func validID(id int64, what string) error {
	if id <= 0 {
		return validationf("invalid %s ID", what)
	}
	return nil
}
