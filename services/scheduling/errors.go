package scheduling

import "fmt"

// PreconditionError reports a malformed input the caller should have
// rejected before invoking the scheduler. The HTTP layer maps these to
// client errors.
type PreconditionError struct {
	Field   string
	Message string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("scheduling precondition failed on %s: %s", e.Field, e.Message)
}

func newPreconditionError(field, msg string) error {
	return &PreconditionError{Field: field, Message: msg}
}
