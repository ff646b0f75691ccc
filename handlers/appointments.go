package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"medibook/middleware"
	"medibook/models"
	"medibook/services/appointment"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler exposes the booking lifecycle over HTTP.
type AppointmentHandler struct {
	Svc    appointment.AppointmentService
	Logger *zap.Logger
}

// NewAppointmentHandler constructs an AppointmentHandler.
func NewAppointmentHandler(svc appointment.AppointmentService, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{Svc: svc, Logger: logger}
}

func actorFromContext(c *gin.Context) appointment.Actor {
	return appointment.Actor{
		UserID: c.GetString(middleware.CtxUserID),
		Role:   c.GetString(middleware.CtxRole),
	}
}

// Create handles POST /api/appointments.
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req models.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid appointment payload", err.Error())
		return
	}

	appt, err := h.Svc.Create(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": appt})
}

// GetByID handles GET /api/appointments/:id.
func (h *AppointmentHandler) GetByID(c *gin.Context) {
	appt, err := h.Svc.GetByID(actorFromContext(c), c.Param("id"))
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": appt})
}

// List handles GET /api/appointments with paging and status/date filters.
func (h *AppointmentHandler) List(c *gin.Context) {
	q := models.AppointmentQuery{
		Status: c.Query("status"),
		Page:   atoiDefault(c.Query("page"), 1),
		Limit:  atoiDefault(c.Query("limit"), 10),
	}
	if from := c.Query("from"); from != "" {
		t, err := time.ParseInLocation(dateLayout, from, time.Local)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid from date", err.Error())
			return
		}
		q.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.ParseInLocation(dateLayout, to, time.Local)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid to date", err.Error())
			return
		}
		q.To = t.AddDate(0, 0, 1)
	}

	appts, page, err := h.Svc.List(actorFromContext(c), q)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": appts, "pagination": page})
}

// UpdateStatus handles PUT /api/appointments/:id/status.
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
		Notes  string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid status payload", err.Error())
		return
	}

	appt, err := h.Svc.UpdateStatus(c.Request.Context(), actorFromContext(c), c.Param("id"), req.Status, req.Notes)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": appt})
}

// respondBookingError translates service errors into HTTP responses.
func (h *AppointmentHandler) respondBookingError(c *gin.Context, err error) {
	var conflict *appointment.ConflictError
	var invalid *appointment.ValidationError
	switch {
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{
			"success":   false,
			"error":     "Requested time is no longer available",
			"conflicts": conflict.Conflicts,
		})
	case errors.As(err, &invalid):
		utils.JSONError(c, http.StatusBadRequest, invalid.Message, "")
	case errors.Is(err, appointment.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, "Not allowed", "")
	case isNotFound(err):
		utils.JSONError(c, http.StatusNotFound, "Appointment not found", err.Error())
	default:
		h.Logger.Error("appointment operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Something went wrong", err.Error())
	}
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}
