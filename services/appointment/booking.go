package appointment

import (
	"context"
	"errors"
	"fmt"

	appointmentRepo "medibook/database/repository/appointment"
	"medibook/models"
	"medibook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create books an appointment. Flow: validate the payload, run the advisory
// conflict check on a snapshot, then hand off to the transactional insert
// which re-validates before commit. Notifications and reminders fire after
// the booking is durable and never fail it.
func (s *DefaultAppointmentService) Create(ctx context.Context, actor Actor, req models.CreateAppointmentRequest) (*models.Appointment, error) {
	logger := utils.GetLogger()

	if actor.Role != models.RolePatient {
		return nil, ErrForbidden
	}
	switch req.Type {
	case models.AppointmentTypeInClinic, models.AppointmentTypeTeleConsultation, models.AppointmentTypeHomeVisit:
	default:
		return nil, newValidationError("unknown appointment type %q", req.Type)
	}
	if !req.Start.Before(req.End) {
		return nil, newValidationError("scheduled start must be before scheduled end")
	}
	if req.Type == models.AppointmentTypeHomeVisit && req.VisitAddress == "" {
		return nil, newValidationError("address is required for home visits")
	}

	doctor, err := s.DoctorRepo.GetByID(req.DoctorID)
	if err != nil {
		return nil, err
	}

	clinicID := ""
	if req.Type == models.AppointmentTypeInClinic {
		if req.ClinicID == "" {
			return nil, newValidationError("clinicId is required for in-clinic appointments")
		}
		if _, err := s.ClinicRepo.GetByID(req.ClinicID); err != nil {
			return nil, err
		}
		clinicID = req.ClinicID
	}

	// Advisory pre-check so the client gets the full conflict list.
	verdict, err := s.Engine.CheckSchedulingConflicts(req.DoctorID, req.Start, req.End, false)
	if err != nil {
		return nil, err
	}
	if verdict.HasConflicts {
		return nil, &ConflictError{Conflicts: verdict.Conflicts}
	}

	appt := &models.Appointment{
		ID:             uuid.New().String(),
		PatientID:      actor.UserID,
		DoctorID:       req.DoctorID,
		ClinicID:       clinicID,
		Type:           req.Type,
		Status:         models.AppointmentStatusPending,
		ScheduledStart: req.Start,
		ScheduledEnd:   req.End,
		Reason:         req.Reason,
		Symptoms:       req.Symptoms,
		VisitAddress:   req.VisitAddress,
		Fee:            s.appointmentFee(doctor, req.Type, clinicID),
	}
	touch(appt)

	if err := s.Repo.CreateWithConflictCheck(ctx, appt, bookingExclusions); err != nil {
		if errors.Is(err, appointmentRepo.ErrSchedulingConflict) {
			// Lost the race against a concurrent booking.
			return nil, &ConflictError{Conflicts: nil}
		}
		return nil, fmt.Errorf("failed to persist appointment: %w", err)
	}

	if s.Notification != nil {
		data := map[string]string{"appointmentId": appt.ID, "type": appt.Type}
		if err := s.Notification.NotifyDoctor(ctx, appt.DoctorID, "New appointment",
			fmt.Sprintf("New %s appointment at %s", appt.Type, appt.ScheduledStart.Format("Jan 2 15:04")), data); err != nil {
			logger.Warn("failed to notify doctor of new appointment", zap.String("appointmentID", appt.ID), zap.Error(err))
		}
	}
	if s.Reminders != nil {
		if err := s.Reminders.ScheduleAppointmentReminders(appt); err != nil {
			logger.Warn("failed to schedule appointment reminders", zap.String("appointmentID", appt.ID), zap.Error(err))
		}
	}

	return appt, nil
}
