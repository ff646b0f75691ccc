package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medibook/middleware"
	"medibook/models"
	"medibook/services/appointment"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAppointmentService struct {
	appt      *models.Appointment
	appts     []models.Appointment
	err       error
	lastActor appointment.Actor
	lastQuery models.AppointmentQuery
}

func (s *stubAppointmentService) Create(ctx context.Context, actor appointment.Actor, req models.CreateAppointmentRequest) (*models.Appointment, error) {
	s.lastActor = actor
	return s.appt, s.err
}

func (s *stubAppointmentService) GetByID(actor appointment.Actor, id string) (*models.Appointment, error) {
	s.lastActor = actor
	return s.appt, s.err
}

func (s *stubAppointmentService) List(actor appointment.Actor, q models.AppointmentQuery) ([]models.Appointment, models.Pagination, error) {
	s.lastActor = actor
	s.lastQuery = q
	return s.appts, models.Pagination{Page: q.Page, Limit: q.Limit, TotalItems: int64(len(s.appts))}, s.err
}

func (s *stubAppointmentService) UpdateStatus(ctx context.Context, actor appointment.Actor, id, status, notes string) (*models.Appointment, error) {
	s.lastActor = actor
	return s.appt, s.err
}

func newAppointmentRouter(svc *stubAppointmentService, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAppointmentHandler(svc, utils.GetLogger())

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.CtxUserID, "patient-1")
		c.Set(middleware.CtxRole, role)
	})
	r.POST("/api/appointments", h.Create)
	r.GET("/api/appointments", h.List)
	r.GET("/api/appointments/:id", h.GetByID)
	r.PUT("/api/appointments/:id/status", h.UpdateStatus)
	return r
}

func bookingPayload(t *testing.T) []byte {
	t.Helper()
	start := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	raw, err := json.Marshal(models.CreateAppointmentRequest{
		DoctorID: "doc-1",
		ClinicID: "clinic-1",
		Type:     models.AppointmentTypeInClinic,
		Start:    start,
		End:      start.Add(30 * time.Minute),
	})
	require.NoError(t, err)
	return raw
}

func TestCreateAppointmentReturns201(t *testing.T) {
	svc := &stubAppointmentService{appt: &models.Appointment{ID: "appt-1", Status: models.AppointmentStatusPending}}
	r := newAppointmentRouter(svc, models.RolePatient)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(bookingPayload(t)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, appointment.Actor{UserID: "patient-1", Role: models.RolePatient}, svc.lastActor)

	var body struct {
		Data models.Appointment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "appt-1", body.Data.ID)
}

func TestCreateAppointmentConflictIs409WithDetails(t *testing.T) {
	start := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	svc := &stubAppointmentService{err: &appointment.ConflictError{
		Conflicts: []models.BusyInterval{{ID: "appt-9", Start: start, End: start.Add(30 * time.Minute)}},
	}}
	r := newAppointmentRouter(svc, models.RolePatient)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(bookingPayload(t)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)

	var body struct {
		Conflicts []models.BusyInterval `json:"conflicts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Conflicts, 1)
	assert.Equal(t, "appt-9", body.Conflicts[0].ID)
}

func TestCreateAppointmentErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &appointment.ValidationError{Message: "bad interval"}, http.StatusBadRequest},
		{"forbidden", appointment.ErrForbidden, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newAppointmentRouter(&stubAppointmentService{err: tc.err}, models.RolePatient)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(bookingPayload(t)))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestCreateAppointmentRejectsUnparseablePayload(t *testing.T) {
	r := newAppointmentRouter(&stubAppointmentService{}, models.RolePatient)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader([]byte(`{"doctorId":`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListAppointmentsParsesFilters(t *testing.T) {
	svc := &stubAppointmentService{}
	r := newAppointmentRouter(svc, models.RolePatient)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/appointments?status=confirmed&from=2026-01-01&to=2026-01-31&page=2&limit=5", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "confirmed", svc.lastQuery.Status)
	assert.Equal(t, 2, svc.lastQuery.Page)
	assert.Equal(t, 5, svc.lastQuery.Limit)
	assert.Equal(t, 1, svc.lastQuery.From.Day())
	// "to" is inclusive: the query upper bound moves to the next midnight.
	assert.Equal(t, 1, svc.lastQuery.To.Day())
	assert.Equal(t, time.February, svc.lastQuery.To.Month())
}

func TestListAppointmentsBadPagingFallsBack(t *testing.T) {
	svc := &stubAppointmentService{}
	r := newAppointmentRouter(svc, models.RolePatient)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/appointments?page=zero&limit=-3", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.lastQuery.Page)
	assert.Equal(t, 10, svc.lastQuery.Limit)
}

func TestGetAppointmentForbiddenIs403(t *testing.T) {
	r := newAppointmentRouter(&stubAppointmentService{err: appointment.ErrForbidden}, models.RolePatient)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/appointments/appt-1", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateStatusRequiresStatusField(t *testing.T) {
	r := newAppointmentRouter(&stubAppointmentService{}, models.RoleDoctor)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/appointments/appt-1/status",
		bytes.NewReader([]byte(`{"notes":"no status"}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStatusReturnsUpdatedAppointment(t *testing.T) {
	svc := &stubAppointmentService{appt: &models.Appointment{ID: "appt-1", Status: models.AppointmentStatusConfirmed}}
	r := newAppointmentRouter(svc, models.RoleDoctor)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/appointments/appt-1/status",
		bytes.NewReader([]byte(`{"status":"confirmed"}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data models.Appointment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, models.AppointmentStatusConfirmed, body.Data.Status)
}
