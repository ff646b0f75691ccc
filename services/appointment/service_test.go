package appointment

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	appointmentRepo "medibook/database/repository/appointment"
	"medibook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var apptStart = time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

type stubApptRepo struct {
	appts      map[string]*models.Appointment
	createErr  error
	created    *models.Appointment
	lastUpdate models.Appointment
}

func newStubApptRepo() *stubApptRepo {
	return &stubApptRepo{appts: map[string]*models.Appointment{}}
}

func (r *stubApptRepo) GetByID(id string) (*models.Appointment, error) {
	a, ok := r.appts[id]
	if !ok {
		return nil, fmt.Errorf("appointment with id %s not found", id)
	}
	cp := *a
	return &cp, nil
}

func (r *stubApptRepo) FindOverlapping(doctorID string, start, end time.Time, excludeStatuses []string) ([]models.Appointment, error) {
	return nil, nil
}

func (r *stubApptRepo) CreateWithConflictCheck(ctx context.Context, appt *models.Appointment, excludeStatuses []string) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = appt
	r.appts[appt.ID] = appt
	return nil
}

func (r *stubApptRepo) UpdateStatus(id string, update models.Appointment) error {
	r.lastUpdate = update
	return nil
}

func (r *stubApptRepo) List(q models.AppointmentQuery) ([]models.Appointment, int64, error) {
	var out []models.Appointment
	for _, a := range r.appts {
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

type stubScheduleRepo struct {
	pairing *models.DoctorClinic
}

func (r *stubScheduleRepo) GetDoctorClinics(doctorID, clinicID string) ([]models.DoctorClinic, error) {
	return nil, nil
}

func (r *stubScheduleRepo) GetDoctorClinic(doctorID, clinicID string) (*models.DoctorClinic, error) {
	if r.pairing != nil && r.pairing.ClinicID == clinicID {
		return r.pairing, nil
	}
	return nil, nil
}

func (r *stubScheduleRepo) UpsertDoctorClinic(dc *models.DoctorClinic) error { return nil }

func (r *stubScheduleRepo) DeactivateDoctorClinic(doctorID, clinicID string) error { return nil }

type stubDoctorRepo struct{}

func (stubDoctorRepo) Create(*models.Doctor) error { return nil }

func (stubDoctorRepo) Update(*models.Doctor) error { return nil }

func (stubDoctorRepo) SetRatingStats(doctorID string, average float64, total int) error { return nil }

func (stubDoctorRepo) GetByID(id string) (*models.Doctor, error) {
	if id != "doc-1" {
		return nil, fmt.Errorf("doctor with id %s not found", id)
	}
	return &models.Doctor{ID: "doc-1", UserID: "doc-user", ConsultationFee: 1000, HomeVisitFee: 2500}, nil
}

func (stubDoctorRepo) GetByUserID(userID string) (*models.Doctor, error) {
	if userID != "doc-user" {
		return nil, fmt.Errorf("doctor profile for user %s not found", userID)
	}
	return &models.Doctor{ID: "doc-1", UserID: "doc-user"}, nil
}

type stubClinicRepo struct{}

func (stubClinicRepo) Create(*models.Clinic) error { return nil }

func (stubClinicRepo) GetByID(id string) (*models.Clinic, error) {
	if id != "clinic-1" {
		return nil, fmt.Errorf("clinic with id %s not found", id)
	}
	return &models.Clinic{ID: "clinic-1", Name: "City Clinic"}, nil
}

func (stubClinicRepo) GetByIDs(ids []string) (map[string]models.Clinic, error) {
	return map[string]models.Clinic{"clinic-1": {ID: "clinic-1", Name: "City Clinic"}}, nil
}

type stubEngine struct {
	verdict models.ConflictCheckResult
}

func (e *stubEngine) GetDoctorAvailability(doctorID string, rangeStart, rangeEnd time.Time, clinicID string) ([]models.ClinicDayAvailability, error) {
	return nil, nil
}

func (e *stubEngine) CheckSchedulingConflicts(doctorID string, start, end time.Time, includeCompleted bool) (models.ConflictCheckResult, error) {
	return e.verdict, nil
}

func (e *stubEngine) SetClinicSchedule(doctorID string, req models.SetClinicScheduleRequest) (*models.DoctorClinic, error) {
	return nil, nil
}

func (e *stubEngine) RemoveClinicSchedule(doctorID, clinicID string) error { return nil }

type recordingNotifier struct {
	patientCalls int
	doctorCalls  int
}

func (n *recordingNotifier) NotifyPatient(ctx context.Context, patientID, title, body string, data map[string]string) error {
	n.patientCalls++
	return nil
}

func (n *recordingNotifier) NotifyDoctor(ctx context.Context, doctorID, title, body string, data map[string]string) error {
	n.doctorCalls++
	return nil
}

type recordingReminders struct {
	scheduled []*models.Appointment
}

func (r *recordingReminders) ScheduleAppointmentReminders(appt *models.Appointment) error {
	r.scheduled = append(r.scheduled, appt)
	return nil
}

func (r *recordingReminders) Close() error { return nil }

func newTestService(repo *stubApptRepo, engine *stubEngine) (*DefaultAppointmentService, *recordingNotifier, *recordingReminders) {
	notifier := &recordingNotifier{}
	reminders := &recordingReminders{}
	return &DefaultAppointmentService{
		Repo:         repo,
		DoctorRepo:   stubDoctorRepo{},
		ClinicRepo:   stubClinicRepo{},
		ScheduleRepo: &stubScheduleRepo{},
		Engine:       engine,
		Notification: notifier,
		Reminders:    reminders,
	}, notifier, reminders
}

func validRequest() models.CreateAppointmentRequest {
	return models.CreateAppointmentRequest{
		DoctorID: "doc-1",
		ClinicID: "clinic-1",
		Type:     models.AppointmentTypeInClinic,
		Start:    apptStart,
		End:      apptStart.Add(30 * time.Minute),
		Reason:   "checkup",
	}
}

func TestCreateBooksPendingAppointment(t *testing.T) {
	repo := newStubApptRepo()
	svc, notifier, reminders := newTestService(repo, &stubEngine{})

	appt, err := svc.Create(context.Background(), Actor{UserID: "patient-1", Role: models.RolePatient}, validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, appt.ID)
	assert.Equal(t, "patient-1", appt.PatientID)
	assert.Equal(t, models.AppointmentStatusPending, appt.Status)
	assert.Equal(t, 1000.0, appt.Fee)
	assert.Equal(t, "clinic-1", appt.ClinicID)
	require.NotNil(t, repo.created)

	assert.Equal(t, 1, notifier.doctorCalls)
	require.Len(t, reminders.scheduled, 1)
	assert.Equal(t, appt.ID, reminders.scheduled[0].ID)
}

func TestCreateOnlyPatientsBook(t *testing.T) {
	svc, _, _ := newTestService(newStubApptRepo(), &stubEngine{})

	_, err := svc.Create(context.Background(), Actor{UserID: "doc-user", Role: models.RoleDoctor}, validRequest())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateValidation(t *testing.T) {
	svc, _, _ := newTestService(newStubApptRepo(), &stubEngine{})
	actor := Actor{UserID: "patient-1", Role: models.RolePatient}

	cases := []struct {
		name   string
		mutate func(*models.CreateAppointmentRequest)
	}{
		{"unknown type", func(r *models.CreateAppointmentRequest) { r.Type = "walk_in" }},
		{"inverted interval", func(r *models.CreateAppointmentRequest) { r.Start, r.End = r.End, r.Start }},
		{"zero-length interval", func(r *models.CreateAppointmentRequest) { r.End = r.Start }},
		{"in-clinic without clinic", func(r *models.CreateAppointmentRequest) { r.ClinicID = "" }},
		{"home visit without address", func(r *models.CreateAppointmentRequest) {
			r.Type = models.AppointmentTypeHomeVisit
			r.VisitAddress = ""
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			_, err := svc.Create(context.Background(), actor, req)
			require.Error(t, err)
			var invalid *ValidationError
			assert.ErrorAs(t, err, &invalid)
		})
	}
}

func TestCreateInClinicUsesPairingFee(t *testing.T) {
	repo := newStubApptRepo()
	svc, _, _ := newTestService(repo, &stubEngine{})
	svc.ScheduleRepo = &stubScheduleRepo{pairing: &models.DoctorClinic{
		DoctorID:        "doc-1",
		ClinicID:        "clinic-1",
		ConsultationFee: 1200,
	}}

	appt, err := svc.Create(context.Background(), Actor{UserID: "patient-1", Role: models.RolePatient}, validRequest())
	require.NoError(t, err)
	assert.Equal(t, 1200.0, appt.Fee)
}

func TestCreateInClinicZeroPairingFeeFallsBack(t *testing.T) {
	svc, _, _ := newTestService(newStubApptRepo(), &stubEngine{})
	svc.ScheduleRepo = &stubScheduleRepo{pairing: &models.DoctorClinic{
		DoctorID: "doc-1",
		ClinicID: "clinic-1",
	}}

	appt, err := svc.Create(context.Background(), Actor{UserID: "patient-1", Role: models.RolePatient}, validRequest())
	require.NoError(t, err)
	assert.Equal(t, 1000.0, appt.Fee)
}

func TestCreateHomeVisitUsesHomeVisitFee(t *testing.T) {
	svc, _, _ := newTestService(newStubApptRepo(), &stubEngine{})

	req := validRequest()
	req.Type = models.AppointmentTypeHomeVisit
	req.ClinicID = ""
	req.VisitAddress = "12 Garden Lane"

	appt, err := svc.Create(context.Background(), Actor{UserID: "patient-1", Role: models.RolePatient}, req)
	require.NoError(t, err)
	assert.Equal(t, 2500.0, appt.Fee)
	assert.Empty(t, appt.ClinicID)
}

func TestCreateAdvisoryConflictCarriesDetails(t *testing.T) {
	busy := models.BusyInterval{ID: "appt-9", Start: apptStart, End: apptStart.Add(30 * time.Minute)}
	svc, _, _ := newTestService(newStubApptRepo(), &stubEngine{
		verdict: models.ConflictCheckResult{HasConflicts: true, Conflicts: []models.BusyInterval{busy}},
	})

	_, err := svc.Create(context.Background(), Actor{UserID: "patient-1", Role: models.RolePatient}, validRequest())
	require.Error(t, err)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Len(t, conflict.Conflicts, 1)
	assert.Equal(t, "appt-9", conflict.Conflicts[0].ID)
}

func TestCreateLosingInsertRaceIsConflict(t *testing.T) {
	repo := newStubApptRepo()
	repo.createErr = appointmentRepo.ErrSchedulingConflict
	svc, notifier, _ := newTestService(repo, &stubEngine{})

	_, err := svc.Create(context.Background(), Actor{UserID: "patient-1", Role: models.RolePatient}, validRequest())
	require.Error(t, err)
	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Zero(t, notifier.doctorCalls)
}

func TestCreateOtherRepoErrorsPassThrough(t *testing.T) {
	repo := newStubApptRepo()
	repo.createErr = errors.New("connection reset")
	svc, _, _ := newTestService(repo, &stubEngine{})

	_, err := svc.Create(context.Background(), Actor{UserID: "patient-1", Role: models.RolePatient}, validRequest())
	require.Error(t, err)
	var conflict *ConflictError
	assert.False(t, errors.As(err, &conflict))
}

func seededService(t *testing.T) (*DefaultAppointmentService, *stubApptRepo, *recordingNotifier) {
	t.Helper()
	repo := newStubApptRepo()
	repo.appts["appt-1"] = &models.Appointment{
		ID:             "appt-1",
		PatientID:      "patient-1",
		DoctorID:       "doc-1",
		Status:         models.AppointmentStatusConfirmed,
		ScheduledStart: apptStart,
		ScheduledEnd:   apptStart.Add(30 * time.Minute),
	}
	svc, notifier, _ := newTestService(repo, &stubEngine{})
	return svc, repo, notifier
}

func TestGetByIDScopedToOwners(t *testing.T) {
	svc, _, _ := seededService(t)

	_, err := svc.GetByID(Actor{UserID: "patient-1", Role: models.RolePatient}, "appt-1")
	assert.NoError(t, err)

	_, err = svc.GetByID(Actor{UserID: "doc-user", Role: models.RoleDoctor}, "appt-1")
	assert.NoError(t, err)

	_, err = svc.GetByID(Actor{UserID: "admin-1", Role: models.RoleAdmin}, "appt-1")
	assert.NoError(t, err)

	_, err = svc.GetByID(Actor{UserID: "patient-2", Role: models.RolePatient}, "appt-1")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateStatusPatientMayOnlyCancel(t *testing.T) {
	svc, _, _ := seededService(t)
	actor := Actor{UserID: "patient-1", Role: models.RolePatient}

	_, err := svc.UpdateStatus(context.Background(), actor, "appt-1", models.AppointmentStatusConfirmed, "")
	assert.ErrorIs(t, err, ErrForbidden)

	appt, err := svc.UpdateStatus(context.Background(), actor, "appt-1", models.AppointmentStatusCancelled, "can't make it")
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusCancelled, appt.Status)
	assert.Equal(t, "can't make it", appt.Notes)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, _, _ := seededService(t)

	_, err := svc.UpdateStatus(context.Background(),
		Actor{UserID: "doc-user", Role: models.RoleDoctor}, "appt-1", "tentative", "")
	require.Error(t, err)
	var invalid *ValidationError
	assert.ErrorAs(t, err, &invalid)
}

func TestUpdateStatusStampsActualTimes(t *testing.T) {
	svc, repo, _ := seededService(t)
	actor := Actor{UserID: "doc-user", Role: models.RoleDoctor}

	appt, err := svc.UpdateStatus(context.Background(), actor, "appt-1", models.AppointmentStatusInProgress, "")
	require.NoError(t, err)
	assert.False(t, appt.ActualStart.IsZero())
	assert.False(t, repo.lastUpdate.ActualStart.IsZero())
	assert.True(t, appt.ActualEnd.IsZero())

	appt, err = svc.UpdateStatus(context.Background(), actor, "appt-1", models.AppointmentStatusCompleted, "all good")
	require.NoError(t, err)
	assert.False(t, appt.ActualEnd.IsZero())
}

func TestUpdateStatusNotifiesOtherParty(t *testing.T) {
	svc, _, notifier := seededService(t)

	_, err := svc.UpdateStatus(context.Background(),
		Actor{UserID: "doc-user", Role: models.RoleDoctor}, "appt-1", models.AppointmentStatusConfirmed, "")
	require.NoError(t, err)
	assert.Equal(t, 1, notifier.patientCalls)
	assert.Zero(t, notifier.doctorCalls)

	_, err = svc.UpdateStatus(context.Background(),
		Actor{UserID: "patient-1", Role: models.RolePatient}, "appt-1", models.AppointmentStatusCancelled, "")
	require.NoError(t, err)
	assert.Equal(t, 1, notifier.doctorCalls)
}

func TestListScopesQueryByRole(t *testing.T) {
	repo := newStubApptRepo()
	svc, _, _ := newTestService(repo, &stubEngine{})

	_, page, err := svc.List(Actor{UserID: "patient-1", Role: models.RolePatient}, models.AppointmentQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)

	_, _, err = svc.List(Actor{UserID: "stranger", Role: "receptionist"}, models.AppointmentQuery{})
	assert.ErrorIs(t, err, ErrForbidden)
}
