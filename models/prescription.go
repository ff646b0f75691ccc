package models

import "time"

// PrescriptionMedication is one medication line on a prescription.
type PrescriptionMedication struct {
	Name         string `bson:"name" json:"name" binding:"required"`
	Dosage       string `bson:"dosage" json:"dosage" binding:"required"`
	Frequency    string `bson:"frequency" json:"frequency" binding:"required"`
	Duration     int    `bson:"duration" json:"duration"`
	DurationUnit string `bson:"durationUnit,omitempty" json:"durationUnit,omitempty"` // days, weeks, months
	IsBeforeMeal bool   `bson:"isBeforeMeal" json:"isBeforeMeal"`
	Instructions string `bson:"instructions,omitempty" json:"instructions,omitempty"`
}

// Prescription is issued by a doctor against a consultation. Medications are
// embedded in the document rather than stored as separate records.
type Prescription struct {
	ID            string                   `bson:"id" json:"id"`
	AppointmentID string                   `bson:"appointmentId" json:"appointmentId"`
	DoctorID      string                   `bson:"doctorId" json:"doctorId"`
	PatientID     string                   `bson:"patientId" json:"patientId"`
	Diagnosis     string                   `bson:"diagnosis,omitempty" json:"diagnosis,omitempty"`
	Instructions  string                   `bson:"instructions,omitempty" json:"instructions,omitempty"`
	Notes         string                   `bson:"notes,omitempty" json:"notes,omitempty"`
	ValidUntil    time.Time                `bson:"validUntil,omitempty" json:"validUntil,omitzero"`
	Medications   []PrescriptionMedication `bson:"medications" json:"medications"`
	CreatedAt     time.Time                `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time                `bson:"updatedAt" json:"updatedAt"`
}

// CreatePrescriptionRequest is the issuing payload. The patient is resolved
// from the appointment, never taken from the client.
type CreatePrescriptionRequest struct {
	AppointmentID string                   `json:"appointmentId" binding:"required"`
	Diagnosis     string                   `json:"diagnosis"`
	Instructions  string                   `json:"instructions"`
	Notes         string                   `json:"notes"`
	ValidUntil    time.Time                `json:"validUntil"`
	Medications   []PrescriptionMedication `json:"medications" binding:"required,min=1,dive"`
}
