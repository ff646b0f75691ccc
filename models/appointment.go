package models

import "time"

// Appointment types.
const (
	AppointmentTypeInClinic         = "in_clinic"
	AppointmentTypeTeleConsultation = "tele_consultation"
	AppointmentTypeHomeVisit        = "home_visit"
)

// Appointment statuses.
const (
	AppointmentStatusPending     = "pending"
	AppointmentStatusConfirmed   = "confirmed"
	AppointmentStatusInProgress  = "in_progress"
	AppointmentStatusCompleted   = "completed"
	AppointmentStatusCancelled   = "cancelled"
	AppointmentStatusNoShow      = "no_show"
	AppointmentStatusRescheduled = "rescheduled"
)

// ValidAppointmentStatus reports whether s is one of the known statuses.
func ValidAppointmentStatus(s string) bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusInProgress,
		AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow,
		AppointmentStatusRescheduled:
		return true
	}
	return false
}

// Appointment is a booked consultation occupying a doctor's time.
type Appointment struct {
	ID             string    `bson:"id" json:"id"`
	PatientID      string    `bson:"patientId" json:"patientId"`
	DoctorID       string    `bson:"doctorId" json:"doctorId"`
	ClinicID       string    `bson:"clinicId,omitempty" json:"clinicId,omitempty"` // empty for tele/home visits
	Type           string    `bson:"type" json:"type"`
	Status         string    `bson:"status" json:"status"`
	ScheduledStart time.Time `bson:"scheduledStart" json:"scheduledStartTime"`
	ScheduledEnd   time.Time `bson:"scheduledEnd" json:"scheduledEndTime"`
	ActualStart    time.Time `bson:"actualStart,omitempty" json:"actualStartTime,omitzero"`
	ActualEnd      time.Time `bson:"actualEnd,omitempty" json:"actualEndTime,omitzero"`
	Reason         string    `bson:"reason,omitempty" json:"reason,omitempty"`
	Symptoms       string    `bson:"symptoms,omitempty" json:"symptoms,omitempty"`
	Notes          string    `bson:"notes,omitempty" json:"notes,omitempty"`
	VisitAddress   string    `bson:"visitAddress,omitempty" json:"visitAddress,omitempty"` // home visits only
	Fee            float64   `bson:"fee" json:"fee"`
	IsPaid         bool      `bson:"isPaid" json:"isPaid"`
	IsRescheduled  bool      `bson:"isRescheduled" json:"isRescheduled"`
	PreviousID     string    `bson:"previousId,omitempty" json:"previousAppointmentId,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CreateAppointmentRequest is the booking payload.
type CreateAppointmentRequest struct {
	DoctorID     string    `json:"doctorId" binding:"required"`
	ClinicID     string    `json:"clinicId"`
	Type         string    `json:"type" binding:"required"`
	Start        time.Time `json:"scheduledStartTime" binding:"required"`
	End          time.Time `json:"scheduledEndTime" binding:"required"`
	Reason       string    `json:"reason"`
	Symptoms     string    `json:"symptoms"`
	VisitAddress string    `json:"address"`
}

// AppointmentQuery captures the listing filters for a role-scoped fetch.
type AppointmentQuery struct {
	DoctorID  string
	PatientID string
	Status    string
	From      time.Time
	To        time.Time
	Page      int
	Limit     int
}

// Pagination describes one page of a listing response.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}
