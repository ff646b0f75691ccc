package handlers

import (
	"net/http"

	"medibook/middleware"
	"medibook/models"
	"medibook/utils"

	"github.com/gin-gonic/gin"
)

// SetClinicSchedule handles POST /api/schedules/doctors/clinic. The caller
// must be an authenticated doctor; the doctor profile is resolved from the
// token subject.
func (h *ScheduleHandler) SetClinicSchedule(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)
	doc, err := h.DoctorRepo.GetByUserID(userID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Doctor profile not found", err.Error())
		return
	}

	var req models.SetClinicScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid schedule payload", err.Error())
		return
	}

	dc, err := h.Engine.SetClinicSchedule(doc.ID, req)
	if err != nil {
		utils.JSONError(c, statusForSchedulingError(err), "Failed to set clinic schedule", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": dc})
}

// RemoveClinicSchedule handles DELETE /api/schedules/doctors/clinic/:clinicId.
func (h *ScheduleHandler) RemoveClinicSchedule(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)
	doc, err := h.DoctorRepo.GetByUserID(userID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Doctor profile not found", err.Error())
		return
	}

	if err := h.Engine.RemoveClinicSchedule(doc.ID, c.Param("clinicId")); err != nil {
		utils.JSONError(c, statusForSchedulingError(err), "Failed to remove clinic schedule", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Clinic schedule removed"})
}

// CheckConflicts handles POST /api/schedules/check-conflicts. It reports
// whether a candidate interval collides with the doctor's active
// appointments without reserving anything.
func (h *ScheduleHandler) CheckConflicts(c *gin.Context) {
	var req models.ConflictCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid conflict check payload", err.Error())
		return
	}

	result, err := h.Engine.CheckSchedulingConflicts(req.DoctorID, req.Start, req.End, req.IncludeCompleted)
	if err != nil {
		utils.JSONError(c, statusForSchedulingError(err), "Failed to check conflicts", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}
