package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"medibook/models"
)

// ErrSchedulingConflict is returned when the transactional create finds an
// overlapping active appointment at commit time.
var ErrSchedulingConflict = errors.New("appointment overlaps an existing active appointment")

// AppointmentRepository is the data access surface for appointment records.
type AppointmentRepository interface {
	GetByID(id string) (*models.Appointment, error)
	// FindOverlapping returns appointments for a doctor whose [start, end)
	// interval overlaps the given one, skipping the listed statuses.
	FindOverlapping(doctorID string, start, end time.Time, excludeStatuses []string) ([]models.Appointment, error)
	// CreateWithConflictCheck inserts the appointment inside a session that
	// re-runs the overlap query first. The conflict check the booking flow
	// performs beforehand reads a snapshot; this is the serialization point
	// that actually rejects a racing double-booking.
	CreateWithConflictCheck(ctx context.Context, appt *models.Appointment, excludeStatuses []string) error
	// UpdateStatus persists a status transition plus optional notes and
	// actual start/end stamps.
	UpdateStatus(id string, update models.Appointment) error
	// List returns a page of appointments matching the query plus the total
	// match count.
	List(q models.AppointmentQuery) ([]models.Appointment, int64, error)
}
