package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medibook/config"
	"medibook/cron"
	"medibook/database"
	appointmentRepoPkg "medibook/database/repository/appointment"
	clinicRepoPkg "medibook/database/repository/clinic"
	doctorRepoPkg "medibook/database/repository/doctor"
	prescriptionRepoPkg "medibook/database/repository/prescription"
	ratingRepoPkg "medibook/database/repository/rating"
	scheduleRepoPkg "medibook/database/repository/schedule"
	userRepoPkg "medibook/database/repository/user"
	"medibook/handlers"
	"medibook/middleware"
	"medibook/routes"
	"medibook/services/appointment"
	"medibook/services/notification"
	"medibook/services/scheduling"
	"medibook/services/tasks"
	"medibook/services/user"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	doctorRepo := doctorRepoPkg.NewMongoDoctorRepo()
	clinicRepo := clinicRepoPkg.NewMongoClinicRepo()
	scheduleRepo := scheduleRepoPkg.NewMongoScheduleRepo()
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	prescriptionRepo := prescriptionRepoPkg.NewMongoPrescriptionRepo()
	ratingRepo := ratingRepoPkg.NewMongoRatingRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo:       userRepo,
		DoctorRepo: doctorRepo,
	}

	schedulingEngine := &scheduling.DefaultSchedulingEngine{
		ScheduleRepo:    scheduleRepo,
		AppointmentRepo: appointmentRepo,
		ClinicRepo:      clinicRepo,
		DoctorRepo:      doctorRepo,
	}

	notificationService := &notification.LogNotificationService{}
	reminderScheduler := tasks.NewAsynqReminderScheduler()
	defer reminderScheduler.Close()

	appointmentService := &appointment.DefaultAppointmentService{
		Repo:         appointmentRepo,
		DoctorRepo:   doctorRepo,
		ClinicRepo:   clinicRepo,
		ScheduleRepo: scheduleRepo,
		Engine:       schedulingEngine,
		Notification: notificationService,
		Reminders:    reminderScheduler,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Auth:          handlers.NewAuthHandler(userService, logger),
		Schedules:     handlers.NewScheduleHandler(schedulingEngine, doctorRepo, utils.GetCacheClient(), logger),
		Appointments:  handlers.NewAppointmentHandler(appointmentService, logger),
		Clinics:       handlers.NewClinicHandler(clinicRepo),
		Doctors:       handlers.NewDoctorHandler(doctorRepo, logger),
		Prescriptions: handlers.NewPrescriptionHandler(prescriptionRepo, appointmentRepo, doctorRepo, logger),
		Ratings:       handlers.NewRatingHandler(ratingRepo, appointmentRepo, doctorRepo, logger),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Background reminder worker and health monitor.
	cron.InitReminderWorker(notificationService)
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
