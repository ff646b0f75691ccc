package handlers

import (
	"net/http"
	"time"

	appointmentRepo "medibook/database/repository/appointment"
	doctorRepo "medibook/database/repository/doctor"
	ratingRepo "medibook/database/repository/rating"
	"medibook/middleware"
	"medibook/models"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RatingHandler exposes appointment reviews. A patient rates a completed
// appointment once; each rating refreshes the doctor's denormalized average.
type RatingHandler struct {
	Repo         ratingRepo.RatingRepository
	Appointments appointmentRepo.AppointmentRepository
	Doctors      doctorRepo.DoctorRepository
	Logger       *zap.Logger
}

// NewRatingHandler constructs a RatingHandler.
func NewRatingHandler(repo ratingRepo.RatingRepository, appts appointmentRepo.AppointmentRepository, doctors doctorRepo.DoctorRepository, logger *zap.Logger) *RatingHandler {
	return &RatingHandler{Repo: repo, Appointments: appts, Doctors: doctors, Logger: logger}
}

// Create handles POST /api/ratings.
func (h *RatingHandler) Create(c *gin.Context) {
	var req models.CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid rating payload", err.Error())
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
	if appt.PatientID != c.GetString(middleware.CtxUserID) {
		utils.JSONError(c, http.StatusNotFound, "Appointment does not belong to this patient", "")
		return
	}
	if appt.Status != models.AppointmentStatusCompleted {
		utils.JSONError(c, http.StatusBadRequest, "Cannot rate an appointment that is not completed", "")
		return
	}
	existing, err := h.Repo.GetByAppointmentID(req.AppointmentID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to check existing rating", err.Error())
		return
	}
	if existing != nil {
		utils.JSONError(c, http.StatusBadRequest, "Rating already exists for this appointment", "")
		return
	}

	now := time.Now()
	rating := &models.Rating{
		ID:            uuid.New().String(),
		AppointmentID: appt.ID,
		DoctorID:      appt.DoctorID,
		PatientID:     appt.PatientID,
		ClinicID:      appt.ClinicID,
		Score:         req.Score,
		Review:        req.Review,
		IsAnonymous:   req.IsAnonymous,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := h.Repo.Create(rating); err != nil {
		h.Logger.Error("failed to create rating", zap.String("appointmentID", appt.ID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to submit rating", err.Error())
		return
	}

	// The rating is durable at this point; a failed aggregate refresh only
	// leaves the denormalized average stale until the next rating.
	if err := h.refreshDoctorStats(appt.DoctorID); err != nil {
		h.Logger.Warn("failed to refresh doctor rating stats", zap.String("doctorID", appt.DoctorID), zap.Error(err))
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": rating})
}

// ListForDoctor handles GET /api/ratings/doctors/:doctorId. Anonymous
// ratings are returned without the patient reference.
func (h *RatingHandler) ListForDoctor(c *gin.Context) {
	doctorID := c.Param("doctorId")
	ratings, err := h.Repo.ListByDoctor(doctorID)
	if err != nil {
		h.Logger.Error("failed to list ratings", zap.String("doctorID", doctorID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list ratings", err.Error())
		return
	}
	for i := range ratings {
		if ratings[i].IsAnonymous {
			ratings[i].PatientID = ""
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": ratings})
}

func (h *RatingHandler) refreshDoctorStats(doctorID string) error {
	average, total, err := h.Repo.DoctorRatingStats(doctorID)
	if err != nil {
		return err
	}
	return h.Doctors.SetRatingStats(doctorID, average, int(total))
}
