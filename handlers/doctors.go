package handlers

import (
	"net/http"

	doctorRepo "medibook/database/repository/doctor"
	"medibook/middleware"
	"medibook/models"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DoctorHandler exposes doctor profiles. Registration creates an empty
// profile; the doctor completes it here, which is also where consultation
// and home visit fees become settable.
type DoctorHandler struct {
	Repo   doctorRepo.DoctorRepository
	Logger *zap.Logger
}

// NewDoctorHandler constructs a DoctorHandler.
func NewDoctorHandler(repo doctorRepo.DoctorRepository, logger *zap.Logger) *DoctorHandler {
	return &DoctorHandler{Repo: repo, Logger: logger}
}

// GetByID handles GET /api/doctors/:id.
func (h *DoctorHandler) GetByID(c *gin.Context) {
	doctor, err := h.Repo.GetByID(c.Param("id"))
	if err != nil {
		status := http.StatusInternalServerError
		if isNotFound(err) {
			status = http.StatusNotFound
		}
		utils.JSONError(c, status, "Failed to fetch doctor", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": doctor})
}

// UpdateProfile handles PUT /api/doctors/me. Only the fields present in the
// payload change.
func (h *DoctorHandler) UpdateProfile(c *gin.Context) {
	var req models.UpdateDoctorProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid profile payload", err.Error())
		return
	}

	doctor, err := h.Repo.GetByUserID(c.GetString(middleware.CtxUserID))
	if err != nil {
		status := http.StatusInternalServerError
		if isNotFound(err) {
			status = http.StatusNotFound
		}
		utils.JSONError(c, status, "Doctor profile not found", err.Error())
		return
	}

	if req.LicenseNumber != nil {
		doctor.LicenseNumber = *req.LicenseNumber
	}
	if req.Specializations != nil {
		doctor.Specializations = *req.Specializations
	}
	if req.YearsOfExperience != nil {
		doctor.YearsOfExperience = *req.YearsOfExperience
	}
	if req.Bio != nil {
		doctor.Bio = *req.Bio
	}
	if req.ConsultationFee != nil {
		doctor.ConsultationFee = *req.ConsultationFee
	}
	if req.HomeVisitFee != nil {
		doctor.HomeVisitFee = *req.HomeVisitFee
	}
	if req.OffersTeleConsultation != nil {
		doctor.OffersTeleConsultation = *req.OffersTeleConsultation
	}
	if req.OffersHomeVisit != nil {
		doctor.OffersHomeVisit = *req.OffersHomeVisit
	}

	if err := h.Repo.Update(doctor); err != nil {
		h.Logger.Error("failed to update doctor profile", zap.String("doctorID", doctor.ID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update profile", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": doctor})
}
