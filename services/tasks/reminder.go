package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"medibook/config"
	"medibook/models"

	"github.com/hibiken/asynq"
)

const TypeReminderSend = "reminder:send"

// ReminderScheduler enqueues appointment reminder tasks.
type ReminderScheduler interface {
	ScheduleAppointmentReminders(appt *models.Appointment) error
	Close() error
}

// AsynqReminderScheduler delivers reminders through the asynq queue the
// cron worker consumes.
type AsynqReminderScheduler struct {
	client *asynq.Client
}

// NewAsynqReminderScheduler builds a scheduler connected to the reminder
// queue Redis DB.
func NewAsynqReminderScheduler() *AsynqReminderScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	})
	return &AsynqReminderScheduler{client: client}
}

// ScheduleAppointmentReminders enqueues one reminder per party, firing one
// hour before the scheduled start. Appointments closer than that get no
// reminder; the booking itself was just confirmed to both sides.
func (s *AsynqReminderScheduler) ScheduleAppointmentReminders(appt *models.Appointment) error {
	fireAt := appt.ScheduledStart.Add(-1 * time.Hour)
	if fireAt.Before(time.Now()) {
		return nil
	}

	when := appt.ScheduledStart.Format(time.RFC3339)
	payloads := []models.ReminderPayload{
		{
			AppointmentID: appt.ID,
			Target:        "patient",
			TargetID:      appt.PatientID,
			Title:         "Upcoming appointment",
			Body:          fmt.Sprintf("Your appointment starts at %s", when),
			FireDate:      fireAt.Format(time.RFC3339),
		},
		{
			AppointmentID: appt.ID,
			Target:        "doctor",
			TargetID:      appt.DoctorID,
			Title:         "Upcoming appointment",
			Body:          fmt.Sprintf("Your next appointment starts at %s", when),
			FireDate:      fireAt.Format(time.RFC3339),
		},
	}

	for _, p := range payloads {
		raw, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("marshal reminder payload: %w", err)
		}
		task := asynq.NewTask(TypeReminderSend, raw)
		if _, err := s.client.Enqueue(task, asynq.ProcessAt(fireAt)); err != nil {
			return fmt.Errorf("enqueue reminder for %s %s: %w", p.Target, p.TargetID, err)
		}
	}
	return nil
}

func (s *AsynqReminderScheduler) Close() error {
	return s.client.Close()
}
