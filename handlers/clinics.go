package handlers

import (
	"net/http"
	"time"

	clinicRepo "medibook/database/repository/clinic"
	"medibook/models"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ClinicHandler exposes clinic records. Clinics are reference data; creation
// is an admin operation, lookup is open to any authenticated user.
type ClinicHandler struct {
	Repo clinicRepo.ClinicRepository
}

// NewClinicHandler constructs a ClinicHandler.
func NewClinicHandler(repo clinicRepo.ClinicRepository) *ClinicHandler {
	return &ClinicHandler{Repo: repo}
}

// Create handles POST /api/clinics.
func (h *ClinicHandler) Create(c *gin.Context) {
	var clinic models.Clinic
	if err := c.ShouldBindJSON(&clinic); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid clinic payload", err.Error())
		return
	}
	if clinic.Name == "" {
		utils.JSONError(c, http.StatusBadRequest, "Clinic name is required", "")
		return
	}

	clinic.ID = uuid.New().String()
	now := time.Now()
	clinic.CreatedAt = now
	clinic.UpdatedAt = now

	if err := h.Repo.Create(&clinic); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create clinic", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": clinic})
}

// GetByID handles GET /api/clinics/:id.
func (h *ClinicHandler) GetByID(c *gin.Context) {
	clinic, err := h.Repo.GetByID(c.Param("id"))
	if err != nil {
		status := http.StatusInternalServerError
		if isNotFound(err) {
			status = http.StatusNotFound
		}
		utils.JSONError(c, status, "Failed to fetch clinic", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": clinic})
}
