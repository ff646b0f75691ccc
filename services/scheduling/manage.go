package scheduling

import (
	"fmt"
	"time"

	"medibook/models"
	"medibook/utils"

	"github.com/google/uuid"
)

// SetClinicSchedule replaces the doctor's weekly blocks at one clinic,
// creating or reactivating the pairing as needed. The full schedule is
// always sent, so stale blocks cannot linger.
func (se *DefaultSchedulingEngine) SetClinicSchedule(doctorID string, req models.SetClinicScheduleRequest) (*models.DoctorClinic, error) {
	if _, err := se.DoctorRepo.GetByID(doctorID); err != nil {
		return nil, fmt.Errorf("schedule setup rejected: %w", err)
	}
	if _, err := se.ClinicRepo.GetByID(req.ClinicID); err != nil {
		return nil, fmt.Errorf("schedule setup rejected: %w", err)
	}

	blocks := make([]models.ScheduleBlock, 0, len(req.Schedules))
	for i, in := range req.Schedules {
		startMin, err := utils.ParseMinutesOfDay(in.StartTime)
		if err != nil {
			return nil, fmt.Errorf("schedule block %d: %w", i, err)
		}
		endMin, err := utils.ParseMinutesOfDay(in.EndTime)
		if err != nil {
			return nil, fmt.Errorf("schedule block %d: %w", i, err)
		}
		if startMin >= endMin {
			return nil, newPreconditionError("schedules", fmt.Sprintf("block %d: start time %s is not before end time %s", i, in.StartTime, in.EndTime))
		}
		duration := in.SlotDuration
		if duration == 0 {
			duration = req.ConsultationDuration
		}
		if duration <= 0 {
			return nil, newPreconditionError("schedules", fmt.Sprintf("block %d: slot duration must be positive", i))
		}
		blocks = append(blocks, models.ScheduleBlock{
			ID:                  uuid.New().String(),
			DayOfWeek:           in.DayOfWeek,
			StartMinute:         startMin,
			EndMinute:           endMin,
			SlotDurationMinutes: duration,
			MaxPatientsPerSlot:  in.MaxPatientsPerSlot,
			IsActive:            true,
		})
	}

	now := time.Now()
	dc := &models.DoctorClinic{
		ID:                   uuid.New().String(),
		DoctorID:             doctorID,
		ClinicID:             req.ClinicID,
		ConsultationFee:      req.ConsultationFee,
		ConsultationDuration: req.ConsultationDuration,
		IsActive:             true,
		Schedules:            blocks,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := se.ScheduleRepo.UpsertDoctorClinic(dc); err != nil {
		return nil, fmt.Errorf("failed to persist clinic schedule: %w", err)
	}
	return dc, nil
}

// RemoveClinicSchedule deactivates the doctor's pairing with a clinic.
// Existing appointments are untouched; the clinic simply stops producing
// slots in availability queries.
func (se *DefaultSchedulingEngine) RemoveClinicSchedule(doctorID, clinicID string) error {
	dc, err := se.ScheduleRepo.GetDoctorClinic(doctorID, clinicID)
	if err != nil {
		return fmt.Errorf("failed to load clinic schedule: %w", err)
	}
	if dc == nil {
		return fmt.Errorf("schedule not found for doctor %s at clinic %s", doctorID, clinicID)
	}
	return se.ScheduleRepo.DeactivateDoctorClinic(doctorID, clinicID)
}
