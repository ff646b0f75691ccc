package handlers

import (
	"net/http"
	"time"

	appointmentRepo "medibook/database/repository/appointment"
	doctorRepo "medibook/database/repository/doctor"
	prescriptionRepo "medibook/database/repository/prescription"
	"medibook/middleware"
	"medibook/models"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PrescriptionHandler exposes prescription issuing and lookup. Doctors issue
// against their own appointments; patients read their own records.
type PrescriptionHandler struct {
	Repo         prescriptionRepo.PrescriptionRepository
	Appointments appointmentRepo.AppointmentRepository
	Doctors      doctorRepo.DoctorRepository
	Logger       *zap.Logger
}

// NewPrescriptionHandler constructs a PrescriptionHandler.
func NewPrescriptionHandler(repo prescriptionRepo.PrescriptionRepository, appts appointmentRepo.AppointmentRepository, doctors doctorRepo.DoctorRepository, logger *zap.Logger) *PrescriptionHandler {
	return &PrescriptionHandler{Repo: repo, Appointments: appts, Doctors: doctors, Logger: logger}
}

// Create handles POST /api/prescriptions.
func (h *PrescriptionHandler) Create(c *gin.Context) {
	var req models.CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid prescription payload", err.Error())
		return
	}

	doctor, err := h.Doctors.GetByUserID(c.GetString(middleware.CtxUserID))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Doctor profile not found", err.Error())
		return
	}
	appt, err := h.Appointments.GetByID(req.AppointmentID)
	if err != nil {
		status := http.StatusInternalServerError
		if isNotFound(err) {
			status = http.StatusNotFound
		}
		utils.JSONError(c, status, "Appointment not found", err.Error())
		return
	}
	if appt.DoctorID != doctor.ID {
		utils.JSONError(c, http.StatusNotFound, "Appointment does not belong to this doctor", "")
		return
	}

	now := time.Now()
	p := &models.Prescription{
		ID:            uuid.New().String(),
		AppointmentID: appt.ID,
		DoctorID:      doctor.ID,
		PatientID:     appt.PatientID,
		Diagnosis:     req.Diagnosis,
		Instructions:  req.Instructions,
		Notes:         req.Notes,
		ValidUntil:    req.ValidUntil,
		Medications:   req.Medications,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := h.Repo.Create(p); err != nil {
		h.Logger.Error("failed to create prescription", zap.String("appointmentID", appt.ID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create prescription", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": p})
}

// GetByID handles GET /api/prescriptions/id/:id.
func (h *PrescriptionHandler) GetByID(c *gin.Context) {
	p, err := h.Repo.GetByID(c.Param("id"))
	if err != nil {
		status := http.StatusInternalServerError
		if isNotFound(err) {
			status = http.StatusNotFound
		}
		utils.JSONError(c, status, "Failed to fetch prescription", err.Error())
		return
	}
	if !h.mayRead(c, p) {
		utils.JSONError(c, http.StatusForbidden, "Not allowed", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": p})
}

// ListForPatient handles GET /api/prescriptions/patient/:patientId. Patients
// may only list their own; doctors see the subset they issued.
func (h *PrescriptionHandler) ListForPatient(c *gin.Context) {
	patientID := c.Param("patientId")
	role := c.GetString(middleware.CtxRole)

	if role == models.RolePatient && patientID != c.GetString(middleware.CtxUserID) {
		utils.JSONError(c, http.StatusForbidden, "Not allowed", "")
		return
	}

	prescriptions, err := h.Repo.ListByPatient(patientID)
	if err != nil {
		h.Logger.Error("failed to list prescriptions", zap.String("patientID", patientID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list prescriptions", err.Error())
		return
	}

	if role == models.RoleDoctor {
		doctor, err := h.Doctors.GetByUserID(c.GetString(middleware.CtxUserID))
		if err != nil {
			utils.JSONError(c, http.StatusNotFound, "Doctor profile not found", err.Error())
			return
		}
		issued := prescriptions[:0]
		for _, p := range prescriptions {
			if p.DoctorID == doctor.ID {
				issued = append(issued, p)
			}
		}
		prescriptions = issued
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": prescriptions})
}

func (h *PrescriptionHandler) mayRead(c *gin.Context, p *models.Prescription) bool {
	userID := c.GetString(middleware.CtxUserID)
	switch c.GetString(middleware.CtxRole) {
	case models.RoleAdmin:
		return true
	case models.RolePatient:
		return p.PatientID == userID
	case models.RoleDoctor:
		doctor, err := h.Doctors.GetByUserID(userID)
		return err == nil && doctor.ID == p.DoctorID
	}
	return false
}
