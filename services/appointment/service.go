package appointment

import (
	"context"
	"time"

	appointmentRepo "medibook/database/repository/appointment"
	clinicRepo "medibook/database/repository/clinic"
	doctorRepo "medibook/database/repository/doctor"
	scheduleRepo "medibook/database/repository/schedule"
	"medibook/models"
	"medibook/services/notification"
	"medibook/services/scheduling"
	"medibook/services/tasks"
)

// Actor identifies the authenticated user driving an operation.
type Actor struct {
	UserID string
	Role   string
}

// AppointmentService manages the booking lifecycle.
type AppointmentService interface {
	// Create books an appointment for the acting patient. The conflict
	// pre-check and the persisted insert are not atomic by themselves; the
	// repository closes the race inside a transaction (see
	// AppointmentRepository.CreateWithConflictCheck).
	Create(ctx context.Context, actor Actor, req models.CreateAppointmentRequest) (*models.Appointment, error)
	GetByID(actor Actor, id string) (*models.Appointment, error)
	List(actor Actor, q models.AppointmentQuery) ([]models.Appointment, models.Pagination, error)
	UpdateStatus(ctx context.Context, actor Actor, id, status, notes string) (*models.Appointment, error)
}

// DefaultAppointmentService implements AppointmentService.
type DefaultAppointmentService struct {
	Repo         appointmentRepo.AppointmentRepository
	DoctorRepo   doctorRepo.DoctorRepository
	ClinicRepo   clinicRepo.ClinicRepository
	ScheduleRepo scheduleRepo.ScheduleRepository
	Engine       scheduling.SchedulingEngine
	Notification notification.NotificationService
	Reminders    tasks.ReminderScheduler
}

// bookingExclusions are the statuses that do not block a new booking: freed
// time (cancelled, no-show) plus completed appointments, which only occupy
// the past.
var bookingExclusions = []string{
	models.AppointmentStatusCancelled,
	models.AppointmentStatusNoShow,
	models.AppointmentStatusCompleted,
}

func (s *DefaultAppointmentService) GetByID(actor Actor, id string) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *DefaultAppointmentService) List(actor Actor, q models.AppointmentQuery) ([]models.Appointment, models.Pagination, error) {
	switch actor.Role {
	case models.RolePatient:
		q.PatientID = actor.UserID
		q.DoctorID = ""
	case models.RoleDoctor:
		doctor, err := s.DoctorRepo.GetByUserID(actor.UserID)
		if err != nil {
			return nil, models.Pagination{}, err
		}
		q.DoctorID = doctor.ID
		q.PatientID = ""
	case models.RoleAdmin:
		// unrestricted
	default:
		return nil, models.Pagination{}, ErrForbidden
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}

	appts, total, err := s.Repo.List(q)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	pages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	return appts, models.Pagination{
		Page:       q.Page,
		Limit:      q.Limit,
		TotalItems: total,
		TotalPages: pages,
	}, nil
}

// authorize enforces record-level access: patients and doctors see only
// their own appointments, admins see everything.
func (s *DefaultAppointmentService) authorize(actor Actor, appt *models.Appointment) error {
	switch actor.Role {
	case models.RoleAdmin:
		return nil
	case models.RolePatient:
		if appt.PatientID == actor.UserID {
			return nil
		}
	case models.RoleDoctor:
		doctor, err := s.DoctorRepo.GetByUserID(actor.UserID)
		if err == nil && doctor.ID == appt.DoctorID {
			return nil
		}
	}
	return ErrForbidden
}

// appointmentFee picks the fee for the booking type. In-clinic bookings use
// the fee the doctor set for that clinic when one exists; tele and home
// visits, and clinics without a pairing fee, fall back to the profile fees.
func (s *DefaultAppointmentService) appointmentFee(doctor *models.Doctor, apptType, clinicID string) float64 {
	if apptType == models.AppointmentTypeHomeVisit {
		return doctor.HomeVisitFee
	}
	if apptType == models.AppointmentTypeInClinic && clinicID != "" {
		pairing, err := s.ScheduleRepo.GetDoctorClinic(doctor.ID, clinicID)
		if err == nil && pairing != nil && pairing.ConsultationFee > 0 {
			return pairing.ConsultationFee
		}
	}
	return doctor.ConsultationFee
}

// touch stamps creation times.
func touch(appt *models.Appointment) {
	now := time.Now()
	appt.CreatedAt = now
	appt.UpdatedAt = now
}
