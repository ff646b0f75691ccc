package scheduling

import (
	"fmt"
	"sort"
	"time"

	appointmentRepo "medibook/database/repository/appointment"
	clinicRepo "medibook/database/repository/clinic"
	doctorRepo "medibook/database/repository/doctor"
	scheduleRepo "medibook/database/repository/schedule"
	"medibook/models"
	"medibook/utils"

	"go.uber.org/zap"
)

// SchedulingEngine computes doctor availability and conflict verdicts.
type SchedulingEngine interface {
	// GetDoctorAvailability expands a doctor's weekly schedules over the
	// inclusive date range into open slots, grouped by clinic and date.
	// An empty clinicID means all of the doctor's clinics.
	GetDoctorAvailability(doctorID string, rangeStart, rangeEnd time.Time, clinicID string) ([]models.ClinicDayAvailability, error)
	// CheckSchedulingConflicts tests a candidate interval against the
	// doctor's active appointments. includeCompleted controls whether
	// completed appointments still occupy time for this check.
	CheckSchedulingConflicts(doctorID string, start, end time.Time, includeCompleted bool) (models.ConflictCheckResult, error)
	// SetClinicSchedule replaces a doctor's weekly blocks at one clinic.
	SetClinicSchedule(doctorID string, req models.SetClinicScheduleRequest) (*models.DoctorClinic, error)
	// RemoveClinicSchedule deactivates the doctor's pairing with a clinic.
	RemoveClinicSchedule(doctorID, clinicID string) error
}

// DefaultSchedulingEngine is the repository-backed implementation. The slot
// math itself lives in the pure functions of this package; the engine only
// assembles their inputs and shapes their outputs.
type DefaultSchedulingEngine struct {
	ScheduleRepo    scheduleRepo.ScheduleRepository
	AppointmentRepo appointmentRepo.AppointmentRepository
	ClinicRepo      clinicRepo.ClinicRepository
	DoctorRepo      doctorRepo.DoctorRepository
}

// Statuses that never occupy time.
var inactiveStatuses = []string{models.AppointmentStatusCancelled, models.AppointmentStatusNoShow}

func (se *DefaultSchedulingEngine) GetDoctorAvailability(doctorID string, rangeStart, rangeEnd time.Time, clinicID string) ([]models.ClinicDayAvailability, error) {
	logger := utils.GetLogger()

	if rangeStart.After(rangeEnd) {
		return nil, newPreconditionError("dateRange", "start date is after end date")
	}
	if _, err := se.DoctorRepo.GetByID(doctorID); err != nil {
		return nil, fmt.Errorf("availability query rejected: %w", err)
	}

	pairings, err := se.ScheduleRepo.GetDoctorClinics(doctorID, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to load doctor schedules: %w", err)
	}
	if len(pairings) == 0 {
		return []models.ClinicDayAvailability{}, nil
	}

	// Appointments overlapping the queried window, so one spanning midnight
	// into the first day still subtracts its slots. Completed appointments
	// still block their historical slots here; only cancelled and no-show
	// ones free the time.
	loc := rangeStart.Location()
	windowStart := time.Date(rangeStart.Year(), rangeStart.Month(), rangeStart.Day(), 0, 0, 0, 0, loc)
	windowEnd := time.Date(rangeEnd.Year(), rangeEnd.Month(), rangeEnd.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	appts, err := se.AppointmentRepo.FindOverlapping(doctorID, windowStart, windowEnd, inactiveStatuses)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}
	busy := ActiveAppointments(appts, true)

	clinicIDs := make([]string, 0, len(pairings))
	for _, p := range pairings {
		clinicIDs = append(clinicIDs, p.ClinicID)
	}
	clinics, err := se.ClinicRepo.GetByIDs(clinicIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load clinics: %w", err)
	}

	// Expand and filter per pairing, keyed by (clinic order, date).
	type dayKey struct {
		clinicIdx int
		date      string
	}
	grouped := make(map[dayKey][]models.SlotWindow)
	var keys []dayKey

	for idx, p := range pairings {
		slots, issues, err := GenerateSlots(p.ClinicID, p.Schedules, rangeStart, rangeEnd)
		if err != nil {
			return nil, err
		}
		for _, issue := range issues {
			logger.Warn("skipping malformed schedule block",
				zap.String("doctorID", doctorID),
				zap.String("clinicID", p.ClinicID),
				zap.String("blockID", issue.BlockID),
				zap.String("reason", issue.Reason))
		}

		for _, s := range FilterAvailable(slots, busy) {
			k := dayKey{clinicIdx: idx, date: s.Date}
			if _, ok := grouped[k]; !ok {
				keys = append(keys, k)
			}
			grouped[k] = append(grouped[k], models.SlotWindow{Start: s.Start, End: s.End})
		}
	}

	// Date ascending, then clinic in input order.
	sort.SliceStable(keys, func(i, j int) bool {
		if keys[i].date != keys[j].date {
			return keys[i].date < keys[j].date
		}
		return keys[i].clinicIdx < keys[j].clinicIdx
	})

	result := make([]models.ClinicDayAvailability, 0, len(keys))
	for _, k := range keys {
		p := pairings[k.clinicIdx]
		result = append(result, models.ClinicDayAvailability{
			ClinicID:   p.ClinicID,
			ClinicName: clinics[p.ClinicID].Name,
			Date:       k.date,
			Slots:      grouped[k],
		})
	}
	return result, nil
}

func (se *DefaultSchedulingEngine) CheckSchedulingConflicts(doctorID string, start, end time.Time, includeCompleted bool) (models.ConflictCheckResult, error) {
	if !start.Before(end) {
		return models.ConflictCheckResult{}, newPreconditionError("candidateInterval", "start time must be before end time")
	}

	exclude := inactiveStatuses
	if !includeCompleted {
		exclude = append([]string{models.AppointmentStatusCompleted}, inactiveStatuses...)
	}
	appts, err := se.AppointmentRepo.FindOverlapping(doctorID, start, end, exclude)
	if err != nil {
		return models.ConflictCheckResult{}, fmt.Errorf("failed to load overlapping appointments: %w", err)
	}

	// The repo query already applied the interval predicate; running the
	// pure check again keeps the verdict consistent with FilterAvailable.
	return CheckConflicts(start, end, ActiveAppointments(appts, includeCompleted))
}
