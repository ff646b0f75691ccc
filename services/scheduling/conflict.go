package scheduling

import (
	"time"

	"medibook/models"
)

// CheckConflicts tests a candidate [start, end) interval against the given
// busy intervals and returns every one it overlaps, so callers can report
// all collisions at once. The busy set is expected to be pre-filtered to the
// relevant doctor and to active statuses (see ActiveAppointments); this
// stays a pure interval function.
//
// An interval that exactly abuts the candidate is not a conflict.
func CheckConflicts(start, end time.Time, busy []models.BusyInterval) (models.ConflictCheckResult, error) {
	if !start.Before(end) {
		return models.ConflictCheckResult{}, newPreconditionError("candidateInterval", "start time must be before end time")
	}

	var conflicts []models.BusyInterval
	for _, b := range busy {
		if Overlaps(start, end, b.Start, b.End) {
			conflicts = append(conflicts, b)
		}
	}
	return models.ConflictCheckResult{
		HasConflicts: len(conflicts) > 0,
		Conflicts:    conflicts,
	}, nil
}
