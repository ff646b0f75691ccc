package models

import "time"

// Rating is a patient's review of a completed appointment. At most one
// rating exists per appointment.
type Rating struct {
	ID            string    `bson:"id" json:"id"`
	AppointmentID string    `bson:"appointmentId" json:"appointmentId"`
	DoctorID      string    `bson:"doctorId" json:"doctorId"`
	PatientID     string    `bson:"patientId,omitempty" json:"patientId,omitempty"`
	ClinicID      string    `bson:"clinicId,omitempty" json:"clinicId,omitempty"`
	Score         int       `bson:"score" json:"score"` // 1-5
	Review        string    `bson:"review,omitempty" json:"review,omitempty"`
	IsAnonymous   bool      `bson:"isAnonymous" json:"isAnonymous"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CreateRatingRequest is the review payload.
type CreateRatingRequest struct {
	AppointmentID string `json:"appointmentId" binding:"required"`
	Score         int    `json:"score" binding:"required,min=1,max=5"`
	Review        string `json:"review"`
	IsAnonymous   bool   `json:"isAnonymous"`
}
