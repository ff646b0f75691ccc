package appointment

import (
	"context"
	"fmt"
	"time"

	"medibook/models"
	"medibook/utils"

	"go.uber.org/zap"
)

// UpdateStatus transitions an appointment and stamps actual start/end times
// where the transition implies them. Patients may only cancel their own
// appointments; doctors drive the rest of the lifecycle.
func (s *DefaultAppointmentService) UpdateStatus(ctx context.Context, actor Actor, id, status, notes string) (*models.Appointment, error) {
	if !models.ValidAppointmentStatus(status) {
		return nil, newValidationError("unknown appointment status %q", status)
	}

	appt, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, appt); err != nil {
		return nil, err
	}
	if actor.Role == models.RolePatient && status != models.AppointmentStatusCancelled {
		return nil, ErrForbidden
	}

	update := models.Appointment{Status: status, Notes: notes}
	switch status {
	case models.AppointmentStatusInProgress:
		update.ActualStart = time.Now()
	case models.AppointmentStatusCompleted:
		update.ActualEnd = time.Now()
	}

	if err := s.Repo.UpdateStatus(id, update); err != nil {
		return nil, fmt.Errorf("failed to update appointment status: %w", err)
	}

	appt.Status = status
	if notes != "" {
		appt.Notes = notes
	}
	if !update.ActualStart.IsZero() {
		appt.ActualStart = update.ActualStart
	}
	if !update.ActualEnd.IsZero() {
		appt.ActualEnd = update.ActualEnd
	}

	// Tell the other party.
	if s.Notification != nil {
		data := map[string]string{"appointmentId": appt.ID, "status": status}
		body := fmt.Sprintf("Appointment on %s is now %s", appt.ScheduledStart.Format("Jan 2 15:04"), status)
		var notifyErr error
		if actor.Role == models.RoleDoctor {
			notifyErr = s.Notification.NotifyPatient(ctx, appt.PatientID, "Appointment updated", body, data)
		} else {
			notifyErr = s.Notification.NotifyDoctor(ctx, appt.DoctorID, "Appointment updated", body, data)
		}
		if notifyErr != nil {
			utils.GetLogger().Warn("failed to send status notification",
				zap.String("appointmentID", appt.ID), zap.Error(notifyErr))
		}
	}

	return appt, nil
}
