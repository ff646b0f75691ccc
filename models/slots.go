package models

import "time"

// Slot is a discrete bookable time window derived from a schedule block.
// Slots are produced fresh per availability query and never persisted.
type Slot struct {
	ClinicID string    `json:"clinicId"`
	Date     string    `json:"date"` // "2006-01-02"
	Start    time.Time `json:"startTime"`
	End      time.Time `json:"endTime"`
}

// SlotWindow is the start/end pair serialized inside a grouped day.
type SlotWindow struct {
	Start time.Time `json:"startTime"`
	End   time.Time `json:"endTime"`
}

// ClinicDayAvailability groups the open slots for one clinic on one date,
// the shape the availability endpoint returns.
type ClinicDayAvailability struct {
	ClinicID   string       `json:"clinicId"`
	ClinicName string       `json:"clinicName"`
	Date       string       `json:"date"`
	Slots      []SlotWindow `json:"slots"`
}

// BusyInterval is the scheduler's view of an appointment: just the occupied
// half-open time range plus enough identity to report a conflict.
type BusyInterval struct {
	ID     string    `json:"id"`
	Start  time.Time `json:"startTime"`
	End    time.Time `json:"endTime"`
	Status string    `json:"status"`
}

// ConflictCheckRequest is the payload for a candidate-interval conflict check.
type ConflictCheckRequest struct {
	DoctorID string    `json:"doctorId" binding:"required"`
	Start    time.Time `json:"startTime" binding:"required"`
	End      time.Time `json:"endTime" binding:"required"`
	// IncludeCompleted widens the busy set to completed appointments, useful
	// for auditing past overlaps. New bookings leave it false.
	IncludeCompleted bool `json:"includeCompleted"`
}

// ConflictCheckResult lists every active appointment overlapping a candidate.
type ConflictCheckResult struct {
	HasConflicts bool           `json:"hasConflicts"`
	Conflicts    []BusyInterval `json:"conflicts"`
}
