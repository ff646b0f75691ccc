package routes

import (
	"net/http"
	"time"

	"medibook/handlers"
	"medibook/middleware"
	"medibook/models"
	"medibook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.Register)
		api.POST("/login", hb.Auth.Login)

		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/me", hb.Auth.Me)
		api.POST("/logout", hb.Auth.Logout)
	}
}

// RegisterScheduleRoutes registers availability and schedule endpoints.
// Availability and conflict checks are open to any authenticated user;
// schedule setup is doctor-only.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/schedules")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/doctors/:doctorId/availability", hb.Schedules.GetDoctorAvailability)
		api.POST("/check-conflicts", hb.Schedules.CheckConflicts)

		doctorOnly := api.Group("")
		doctorOnly.Use(middleware.JWTAuthMiddleware(models.RoleDoctor))
		doctorOnly.POST("/doctors/clinic", hb.Schedules.SetClinicSchedule)
		doctorOnly.DELETE("/doctors/clinic/:clinicId", hb.Schedules.RemoveClinicSchedule)
	}
}

// RegisterAppointmentRoutes registers the booking lifecycle endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.Appointments.Create)
		api.GET("", hb.Appointments.List)
		api.GET("/:id", hb.Appointments.GetByID)
		api.PUT("/:id/status", hb.Appointments.UpdateStatus)
	}
}

// RegisterClinicRoutes registers clinic reference-data endpoints.
func RegisterClinicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/clinics")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/:id", hb.Clinics.GetByID)

		adminOnly := api.Group("")
		adminOnly.Use(middleware.JWTAuthMiddleware(models.RoleAdmin))
		adminOnly.POST("", hb.Clinics.Create)
	}
}

// RegisterDoctorRoutes registers doctor profile endpoints. Lookup is open to
// any authenticated user; profile edits are limited to the doctor's own
// record.
func RegisterDoctorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/doctors")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/:id", hb.Doctors.GetByID)

		doctorOnly := api.Group("")
		doctorOnly.Use(middleware.JWTAuthMiddleware(models.RoleDoctor))
		doctorOnly.PUT("/me", hb.Doctors.UpdateProfile)
	}
}

// RegisterPrescriptionRoutes registers prescription endpoints.
func RegisterPrescriptionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/prescriptions")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/id/:id", hb.Prescriptions.GetByID)
		api.GET("/patient/:patientId", hb.Prescriptions.ListForPatient)

		doctorOnly := api.Group("")
		doctorOnly.Use(middleware.JWTAuthMiddleware(models.RoleDoctor))
		doctorOnly.POST("", hb.Prescriptions.Create)
	}
}

// RegisterRatingRoutes registers appointment review endpoints.
func RegisterRatingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/ratings")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/doctors/:doctorId", hb.Ratings.ListForDoctor)

		patientOnly := api.Group("")
		patientOnly.Use(middleware.JWTAuthMiddleware(models.RolePatient))
		patientOnly.POST("", hb.Ratings.Create)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterScheduleRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterClinicRoutes(r, hb)
	RegisterDoctorRoutes(r, hb)
	RegisterPrescriptionRoutes(r, hb)
	RegisterRatingRoutes(r, hb)
	RegisterHealthRoute(r)
}
