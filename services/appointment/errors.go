package appointment

import (
	"errors"
	"fmt"

	"medibook/models"
)

// ErrForbidden is returned when the acting user may not touch the
// appointment in question.
var ErrForbidden = errors.New("not allowed to act on this appointment")

// ConflictError carries every active appointment overlapping the requested
// interval, so the client can show all collisions at once.
type ConflictError struct {
	Conflicts []models.BusyInterval
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("requested time overlaps %d existing appointment(s)", len(e.Conflicts))
}

// ValidationError reports a rejected booking payload.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
