package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"medibook/middleware"
	"medibook/models"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPrescriptionRepo struct {
	created   *models.Prescription
	byID      map[string]*models.Prescription
	byPatient []models.Prescription
}

func (r *stubPrescriptionRepo) Create(p *models.Prescription) error {
	r.created = p
	return nil
}

func (r *stubPrescriptionRepo) GetByID(id string) (*models.Prescription, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("prescription with id %s not found", id)
	}
	return p, nil
}

func (r *stubPrescriptionRepo) ListByPatient(patientID string) ([]models.Prescription, error) {
	return r.byPatient, nil
}

func newPrescriptionRouter(repo *stubPrescriptionRepo, appts *stubApptLookup, userID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPrescriptionHandler(repo, appts, &stubDoctorRepo{}, utils.GetLogger())

	auth := func(handler gin.HandlerFunc) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Set(middleware.CtxUserID, userID)
			c.Set(middleware.CtxRole, role)
			handler(c)
		}
	}
	r := gin.New()
	r.POST("/api/prescriptions", auth(h.Create))
	r.GET("/api/prescriptions/id/:id", auth(h.GetByID))
	r.GET("/api/prescriptions/patient/:patientId", auth(h.ListForPatient))
	return r
}

func doctorAppt() *models.Appointment {
	return &models.Appointment{
		ID:        "appt-1",
		PatientID: "patient-1",
		DoctorID:  "doc-1",
		Status:    models.AppointmentStatusCompleted,
	}
}

func TestCreatePrescriptionResolvesPatientFromAppointment(t *testing.T) {
	repo := &stubPrescriptionRepo{}
	r := newPrescriptionRouter(repo, &stubApptLookup{appts: map[string]*models.Appointment{"appt-1": doctorAppt()}},
		"doc-user", models.RoleDoctor)

	payload := `{
		"appointmentId": "appt-1",
		"diagnosis": "seasonal allergy",
		"medications": [{"name": "Cetirizine", "dosage": "10mg", "frequency": "once daily", "duration": 7, "durationUnit": "days"}]
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/prescriptions", bytes.NewReader([]byte(payload)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, repo.created)
	assert.Equal(t, "patient-1", repo.created.PatientID)
	assert.Equal(t, "doc-1", repo.created.DoctorID)
	assert.NotEmpty(t, repo.created.ID)
	require.Len(t, repo.created.Medications, 1)
	assert.Equal(t, "Cetirizine", repo.created.Medications[0].Name)
}

func TestCreatePrescriptionOtherDoctorsAppointmentIs404(t *testing.T) {
	appt := doctorAppt()
	appt.DoctorID = "doc-9"
	repo := &stubPrescriptionRepo{}
	r := newPrescriptionRouter(repo, &stubApptLookup{appts: map[string]*models.Appointment{"appt-1": appt}},
		"doc-user", models.RoleDoctor)

	payload := `{"appointmentId":"appt-1","medications":[{"name":"X","dosage":"1","frequency":"daily"}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/prescriptions", bytes.NewReader([]byte(payload)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Nil(t, repo.created)
}

func TestCreatePrescriptionRequiresMedications(t *testing.T) {
	r := newPrescriptionRouter(&stubPrescriptionRepo{}, &stubApptLookup{appts: map[string]*models.Appointment{"appt-1": doctorAppt()}},
		"doc-user", models.RoleDoctor)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/prescriptions",
		bytes.NewReader([]byte(`{"appointmentId":"appt-1","medications":[]}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPrescriptionScopedToParticipants(t *testing.T) {
	p := &models.Prescription{ID: "rx-1", PatientID: "patient-1", DoctorID: "doc-1"}
	repo := &stubPrescriptionRepo{byID: map[string]*models.Prescription{"rx-1": p}}

	cases := []struct {
		name   string
		userID string
		role   string
		want   int
	}{
		{"owning patient", "patient-1", models.RolePatient, http.StatusOK},
		{"issuing doctor", "doc-user", models.RoleDoctor, http.StatusOK},
		{"admin", "admin-1", models.RoleAdmin, http.StatusOK},
		{"other patient", "patient-2", models.RolePatient, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newPrescriptionRouter(repo, &stubApptLookup{}, tc.userID, tc.role)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/prescriptions/id/rx-1", nil)
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestListPatientPrescriptions(t *testing.T) {
	repo := &stubPrescriptionRepo{byPatient: []models.Prescription{
		{ID: "rx-1", PatientID: "patient-1", DoctorID: "doc-1"},
		{ID: "rx-2", PatientID: "patient-1", DoctorID: "doc-9"},
	}}

	// A patient may only list their own records.
	r := newPrescriptionRouter(repo, &stubApptLookup{}, "patient-2", models.RolePatient)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/prescriptions/patient/patient-1", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// A doctor sees only the prescriptions they issued.
	r = newPrescriptionRouter(repo, &stubApptLookup{}, "doc-user", models.RoleDoctor)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/prescriptions/patient/patient-1", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data []models.Prescription `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "rx-1", body.Data[0].ID)
}
