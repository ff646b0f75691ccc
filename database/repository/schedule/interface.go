package scheduleRepo

import "medibook/models"

// ScheduleRepository is the data access surface for doctor-clinic pairings
// and their embedded weekly schedule blocks.
type ScheduleRepository interface {
	// GetDoctorClinics returns the active pairings for a doctor. A non-empty
	// clinicID narrows the result to that clinic.
	GetDoctorClinics(doctorID, clinicID string) ([]models.DoctorClinic, error)
	// GetDoctorClinic returns one pairing regardless of active flag.
	GetDoctorClinic(doctorID, clinicID string) (*models.DoctorClinic, error)
	// UpsertDoctorClinic creates or reactivates a pairing and replaces its
	// schedule blocks wholesale, the way schedule setup works.
	UpsertDoctorClinic(dc *models.DoctorClinic) error
	// DeactivateDoctorClinic soft-disables a pairing.
	DeactivateDoctorClinic(doctorID, clinicID string) error
}
