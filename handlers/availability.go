package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"medibook/config"
	doctorRepo "medibook/database/repository/doctor"
	"medibook/services/scheduling"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ScheduleHandler serves availability queries, conflict checks and schedule
// setup.
type ScheduleHandler struct {
	Engine     scheduling.SchedulingEngine
	DoctorRepo doctorRepo.DoctorRepository
	Cache      *redis.Client
	Logger     *zap.Logger
}

// NewScheduleHandler constructs a ScheduleHandler.
func NewScheduleHandler(engine scheduling.SchedulingEngine, doctors doctorRepo.DoctorRepository, cache *redis.Client, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{Engine: engine, DoctorRepo: doctors, Cache: cache, Logger: logger}
}

const dateLayout = "2006-01-02"

// GetDoctorAvailability handles
// GET /api/schedules/doctors/:doctorId/availability?startDate&endDate&clinicId.
func (h *ScheduleHandler) GetDoctorAvailability(c *gin.Context) {
	doctorID := c.Param("doctorId")
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	clinicID := c.Query("clinicId")

	if startDate == "" || endDate == "" {
		utils.JSONError(c, http.StatusBadRequest, "Start date and end date are required", "")
		return
	}
	rangeStart, err := time.ParseInLocation(dateLayout, startDate, time.Local)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid startDate", err.Error())
		return
	}
	rangeEnd, err := time.ParseInLocation(dateLayout, endDate, time.Local)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid endDate", err.Error())
		return
	}

	cacheKey := fmt.Sprintf("availability:%s:%s:%s:%s", doctorID, startDate, endDate, clinicID)
	ctx := c.Request.Context()
	if h.Cache != nil {
		if cached, err := h.Cache.Get(ctx, cacheKey).Result(); err == nil {
			c.Data(http.StatusOK, "application/json", []byte(cached))
			return
		}
	}

	availability, err := h.Engine.GetDoctorAvailability(doctorID, rangeStart, rangeEnd, clinicID)
	if err != nil {
		status := statusForSchedulingError(err)
		utils.JSONError(c, status, "Failed to compute availability", err.Error())
		return
	}

	body, err := json.Marshal(gin.H{"success": true, "data": availability})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to encode availability", err.Error())
		return
	}
	if h.Cache != nil {
		ttl := time.Duration(config.AppConfig.AvailabilityTTLSec) * time.Second
		if ttl <= 0 {
			ttl = time.Minute
		}
		if err := h.Cache.Set(ctx, cacheKey, body, ttl).Err(); err != nil {
			h.Logger.Warn("failed to cache availability response", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	c.Data(http.StatusOK, "application/json", body)
}

// statusForSchedulingError maps engine errors onto HTTP statuses.
func statusForSchedulingError(err error) int {
	var precond *scheduling.PreconditionError
	switch {
	case errors.As(err, &precond):
		return http.StatusBadRequest
	case isNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "not found")
}
